package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-avgcheck/internal/correlate"
	"github.com/pixil98/go-avgcheck/internal/session"
	"github.com/pixil98/go-errors"
)

type CorrelationStyle int

const (
	CorrelationAwait CorrelationStyle = iota
	CorrelationObserver
)

func (cs *CorrelationStyle) UnmarshalText(text []byte) error {
	switch string(text) {
	case "await":
		*cs = CorrelationAwait
	case "observer":
		*cs = CorrelationObserver
	default:
		return fmt.Errorf("unknown correlation style: %s", text)
	}
	return nil
}

type CorrelationConfig struct {
	Style   CorrelationStyle `json:"style"`
	Timeout string           `json:"timeout,omitempty"`
}

func (c *CorrelationConfig) validate() error {
	el := errors.NewErrorList()

	if c.Style != CorrelationAwait && c.Style != CorrelationObserver {
		el.Add(fmt.Errorf("unknown correlation style: %d", c.Style))
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			el.Add(fmt.Errorf("parsing timeout: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("timeout must be positive"))
		}
	}

	return el.Err()
}

func (c *CorrelationConfig) timeout() (time.Duration, error) {
	if c.Timeout == "" {
		return correlate.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("parsing timeout: %w", err)
	}
	return d, nil
}

func (c *CorrelationConfig) buildCorrelator(b correlate.Bus, state *session.State) (correlate.Correlator, error) {
	timeout, err := c.timeout()
	if err != nil {
		return nil, err
	}

	switch c.Style {
	case CorrelationAwait:
		return correlate.NewAwaitCorrelator(b, timeout), nil
	case CorrelationObserver:
		return correlate.NewObserverCorrelator(b, state, timeout), nil
	default:
		return nil, fmt.Errorf("unknown correlation style: %v", c.Style)
	}
}
