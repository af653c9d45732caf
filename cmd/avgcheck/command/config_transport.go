package command

import (
	"context"
	"fmt"
	"time"

	"github.com/pixil98/go-avgcheck/internal/bus"
	"github.com/pixil98/go-avgcheck/internal/messaging"
	"github.com/pixil98/go-errors"
)

type TransportType int

const (
	TransportTypeNats TransportType = iota
	TransportTypeWebsocket
)

func (tt *TransportType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "nats":
		*tt = TransportTypeNats
	case "websocket":
		*tt = TransportTypeWebsocket
	default:
		return fmt.Errorf("unknown transport type: %s", text)
	}
	return nil
}

type TransportConfig struct {
	Type           TransportType `json:"type"`
	SubjectPrefix  string        `json:"subject_prefix,omitempty"`
	URL            string        `json:"url,omitempty"`
	ReconnectDelay string        `json:"reconnect_delay,omitempty"`
}

func (c *TransportConfig) validate() error {
	el := errors.NewErrorList()

	switch c.Type {
	case TransportTypeNats:
	case TransportTypeWebsocket:
		if c.URL == "" {
			el.Add(fmt.Errorf("url is required for the websocket transport"))
		}
	default:
		el.Add(fmt.Errorf("unknown transport type: %d", c.Type))
	}

	if c.ReconnectDelay != "" {
		_, err := time.ParseDuration(c.ReconnectDelay)
		if err != nil {
			el.Add(fmt.Errorf("parsing reconnect_delay: %w", err))
		}
	}

	return el.Err()
}

// Transport is a bus that also has to run as a worker.
type Transport interface {
	bus.Bus
	Start(ctx context.Context) error
}

func (c *TransportConfig) buildTransport(dialer messaging.Dialer) (Transport, error) {
	switch c.Type {
	case TransportTypeNats:
		return messaging.NewNatsBus(dialer, messaging.WithSubjectPrefix(c.SubjectPrefix)), nil
	case TransportTypeWebsocket:
		var opts []messaging.WebsocketBusOpt
		if c.ReconnectDelay != "" {
			d, err := time.ParseDuration(c.ReconnectDelay)
			if err != nil {
				return nil, fmt.Errorf("parsing reconnect_delay: %w", err)
			}
			opts = append(opts, messaging.WithReconnectDelay(d))
		}
		return messaging.NewWebsocketBus(c.URL, opts...), nil
	default:
		return nil, fmt.Errorf("unknown transport type: %v", c.Type)
	}
}
