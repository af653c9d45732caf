package command

import (
	"github.com/pixil98/go-errors"
)

type Config struct {
	Nats        NatsConfig        `json:"nats"`
	Transport   TransportConfig   `json:"transport"`
	Catalog     CatalogConfig     `json:"catalog"`
	Correlation CorrelationConfig `json:"correlation"`
	Extension   ExtensionConfig   `json:"extension"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	el.Add(c.Nats.validate())
	el.Add(c.Transport.validate())
	el.Add(c.Catalog.validate())
	el.Add(c.Correlation.validate())
	el.Add(c.Extension.validate())

	return el.Err()
}
