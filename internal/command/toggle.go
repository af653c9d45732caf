package command

import (
	"context"
	"log/slog"

	"github.com/pixil98/go-avgcheck/internal/bus"
)

// Mode is the switch the command flips.
type Mode interface {
	Toggle() bool
}

// Notifier shows text to the user.
type Notifier interface {
	Notify(ctx context.Context, text string)
}

// ToggleFormatter renders the text announcing the new mode.
type ToggleFormatter interface {
	Toggle(enabled bool) (string, error)
}

// Result describes what a chat line did to the mode.
type Result struct {
	Toggled bool
	Enabled bool
}

// Toggler turns the feature on and off from outbound chat.
type Toggler struct {
	parser   *Parser
	mode     Mode
	notifier Notifier
	format   ToggleFormatter
}

func NewToggler(parser *Parser, mode Mode, notifier Notifier, format ToggleFormatter) *Toggler {
	return &Toggler{
		parser:   parser,
		mode:     mode,
		notifier: notifier,
		format:   format,
	}
}

// OnOutboundChat handles a chat, shout or whisper on its way to the server.
// A command line is kept from the server and flips the mode; anything else
// passes through untouched.
func (t *Toggler) OnOutboundChat(ctx context.Context, msg *bus.Message) Result {
	text, err := msg.Packet().ReadString()
	if err != nil {
		slog.DebugContext(ctx, "reading chat text", "message", msg.Name, "error", err)
		return Result{}
	}

	if !t.parser.Match(text) {
		return Result{}
	}

	msg.Block()
	enabled := t.mode.Toggle()

	out, err := t.format.Toggle(enabled)
	if err != nil {
		slog.WarnContext(ctx, "formatting toggle notification", "error", err)
	} else {
		t.notifier.Notify(ctx, out)
	}

	slog.InfoContext(ctx, "average checker toggled", "enabled", enabled)
	return Result{Toggled: true, Enabled: enabled}
}

// Handler adapts OnOutboundChat to a bus handler.
func (t *Toggler) Handler() bus.Handler {
	return func(ctx context.Context, msg *bus.Message) {
		t.OnOutboundChat(ctx, msg)
	}
}
