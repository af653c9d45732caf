package command

import (
	"fmt"

	"github.com/pixil98/go-avgcheck/internal/bus"
	"github.com/pixil98/go-avgcheck/internal/catalog"
	"github.com/pixil98/go-avgcheck/internal/correlate"
	"github.com/pixil98/go-avgcheck/internal/extension"
	"github.com/pixil98/go-avgcheck/internal/notify"
	"github.com/pixil98/go-avgcheck/internal/session"
	"github.com/pixil98/go-errors"
)

type TemplatesConfig struct {
	Toggle string `json:"toggle,omitempty"`
	Price  string `json:"price,omitempty"`
}

type ExtensionConfig struct {
	Command              string          `json:"command,omitempty"`
	StartEnabled         bool            `json:"start_enabled"`
	ActorId              int32           `json:"actor_id,omitempty"`
	AlwaysSuppressClicks bool            `json:"always_suppress_clicks"`
	GateProjection       bool            `json:"gate_projection"`
	MaxMessageLength     uint            `json:"max_message_length,omitempty"`
	Templates            TemplatesConfig `json:"templates"`
}

func (c *ExtensionConfig) validate() error {
	el := errors.NewErrorList()

	if _, err := notify.NewFormatter(c.Templates.Toggle, c.Templates.Price); err != nil {
		el.Add(fmt.Errorf("templates: %w", err))
	}

	return el.Err()
}

func (c *ExtensionConfig) buildNotifier(sender bus.Sender) *notify.Notifier {
	var opts []notify.NotifierOpt
	if c.ActorId != 0 {
		opts = append(opts, notify.WithActorId(c.ActorId))
	}
	if c.MaxMessageLength != 0 {
		opts = append(opts, notify.WithMaxLength(c.MaxMessageLength))
	}
	return notify.NewNotifier(sender, opts...)
}

func (c *ExtensionConfig) buildExtension(b bus.Bus, state *session.State, loader *catalog.Loader, correlator correlate.Correlator) (*extension.Extension, error) {
	format, err := notify.NewFormatter(c.Templates.Toggle, c.Templates.Price)
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return extension.NewExtension(b, state, loader, correlator, c.buildNotifier(b), format,
		extension.WithCommand(c.Command),
		extension.WithAlwaysSuppressClicks(c.AlwaysSuppressClicks),
		extension.WithGateProjection(c.GateProjection),
	), nil
}
