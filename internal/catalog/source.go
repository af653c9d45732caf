package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Source produces the reference data for the hotel a connection belongs to.
type Source interface {
	Fetch(ctx context.Context, host string) (*Catalog, error)
}

const (
	furnidataPath    = "/gamedata/furnidata_json/1"
	defaultUserAgent = "Mozilla/5.0 (compatible; go-avgcheck)"
	defaultTimeout   = 30 * time.Second
)

// HTTPSource downloads furnidata from the hotel's public site.
type HTTPSource struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

func NewHTTPSource(opts ...HTTPSourceOpt) *HTTPSource {
	s := &HTTPSource{
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *HTTPSource) Fetch(ctx context.Context, host string) (*Catalog, error) {
	url, err := s.url(host)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	// Ignoring close error - body is read-only, error is not actionable
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	c, err := Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}
	return c, nil
}

func (s *HTTPSource) url(host string) (string, error) {
	if s.baseURL != "" {
		return s.baseURL + furnidataPath, nil
	}

	hotel, err := HotelFromHost(host)
	if err != nil {
		return "", err
	}
	return "https://" + hotel.Domain + furnidataPath, nil
}

// FileSource reads furnidata from a local file, whatever the host.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Fetch(_ context.Context, _ string) (*Catalog, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	// Ignoring close error - file is read-only, error is not actionable
	defer func() { _ = file.Close() }()

	c, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return c, nil
}
