package catalog

import (
	"strings"
	"time"
)

type HTTPSourceOpt func(*HTTPSource)

// WithBaseURL fetches from a fixed site instead of the one derived from the host
func WithBaseURL(url string) HTTPSourceOpt {
	return func(s *HTTPSource) {
		s.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithTimeout sets the request timeout
func WithTimeout(d time.Duration) HTTPSourceOpt {
	return func(s *HTTPSource) {
		s.client.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with requests
func WithUserAgent(ua string) HTTPSourceOpt {
	return func(s *HTTPSource) {
		s.userAgent = ua
	}
}
