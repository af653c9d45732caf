package command

import (
	"fmt"

	"github.com/pixil98/go-avgcheck/internal/catalog"
	"github.com/pixil98/go-avgcheck/internal/messaging"
	"github.com/pixil98/go-avgcheck/internal/session"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	workers := service.WorkerList{}

	// The bus either talks to our own embedded server or an external one
	var dialer messaging.Dialer = messaging.NatsURL(cfg.Nats.URL)
	if cfg.Transport.Type == TransportTypeNats && cfg.Nats.embedded() {
		server, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		workers["nats"] = server
		dialer = server
	}

	transport, err := cfg.Transport.buildTransport(dialer)
	if err != nil {
		return nil, fmt.Errorf("creating transport: %w", err)
	}
	workers["transport"] = transport

	source, err := cfg.Catalog.buildSource()
	if err != nil {
		return nil, fmt.Errorf("creating catalog source: %w", err)
	}

	state := session.NewState(cfg.Extension.StartEnabled)

	correlator, err := cfg.Correlation.buildCorrelator(transport, state)
	if err != nil {
		return nil, fmt.Errorf("creating correlator: %w", err)
	}

	ext, err := cfg.Extension.buildExtension(transport, state, catalog.NewLoader(source), correlator)
	if err != nil {
		return nil, fmt.Errorf("creating extension: %w", err)
	}
	workers["extension"] = ext

	return workers, nil
}
