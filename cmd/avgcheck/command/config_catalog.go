package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-avgcheck/internal/catalog"
	"github.com/pixil98/go-errors"
)

type CatalogSourceType int

const (
	CatalogSourceHTTP CatalogSourceType = iota
	CatalogSourceFile
)

func (st *CatalogSourceType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "http":
		*st = CatalogSourceHTTP
	case "file":
		*st = CatalogSourceFile
	default:
		return fmt.Errorf("unknown catalog source: %s", text)
	}
	return nil
}

type CatalogConfig struct {
	Source    CatalogSourceType `json:"source"`
	Path      string            `json:"path,omitempty"`
	BaseURL   string            `json:"base_url,omitempty"`
	Timeout   string            `json:"timeout,omitempty"`
	UserAgent string            `json:"user_agent,omitempty"`
}

func (c *CatalogConfig) validate() error {
	el := errors.NewErrorList()

	switch c.Source {
	case CatalogSourceHTTP:
	case CatalogSourceFile:
		if c.Path == "" {
			el.Add(fmt.Errorf("path is required for the file catalog source"))
		}
	default:
		el.Add(fmt.Errorf("unknown catalog source: %d", c.Source))
	}

	if c.Timeout != "" {
		_, err := time.ParseDuration(c.Timeout)
		if err != nil {
			el.Add(fmt.Errorf("parsing timeout: %w", err))
		}
	}

	return el.Err()
}

func (c *CatalogConfig) buildSource() (catalog.Source, error) {
	switch c.Source {
	case CatalogSourceFile:
		return catalog.NewFileSource(c.Path), nil
	case CatalogSourceHTTP:
		var opts []catalog.HTTPSourceOpt
		if c.BaseURL != "" {
			opts = append(opts, catalog.WithBaseURL(c.BaseURL))
		}
		if c.UserAgent != "" {
			opts = append(opts, catalog.WithUserAgent(c.UserAgent))
		}
		if c.Timeout != "" {
			d, err := time.ParseDuration(c.Timeout)
			if err != nil {
				return nil, fmt.Errorf("parsing timeout: %w", err)
			}
			opts = append(opts, catalog.WithTimeout(d))
		}
		return catalog.NewHTTPSource(opts...), nil
	default:
		return nil, fmt.Errorf("unknown catalog source: %v", c.Source)
	}
}
