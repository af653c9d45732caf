// Package bustest provides an in-memory bus for tests that need to deliver
// intercepted messages and observe what the code under test injects.
package bustest

import (
	"context"
	"sync"
	"time"

	"github.com/pixil98/go-avgcheck/internal/bus"
	"github.com/pixil98/go-avgcheck/internal/protocol"
)

type Bus struct {
	*bus.Router

	// SendErr is returned from every Send when set.
	SendErr error
	// OnSend runs after a message is recorded, for example to answer a request.
	OnSend func(msg *bus.Message)

	mu    sync.Mutex
	sent  []*bus.Message
	queue chan *bus.Message
}

func New() *Bus {
	return &Bus{
		Router: bus.NewRouter(),
		queue:  make(chan *bus.Message, 64),
	}
}

func (b *Bus) Send(_ context.Context, msg *bus.Message) error {
	b.mu.Lock()
	b.sent = append(b.sent, msg)
	hook := b.OnSend
	b.mu.Unlock()

	select {
	case b.queue <- msg:
	default:
	}

	if hook != nil {
		hook(msg)
	}
	return b.SendErr
}

// Deliver hands msg to the registered handlers and returns it so the caller
// can inspect whether it was blocked.
func (b *Bus) Deliver(ctx context.Context, dir protocol.Direction, name string, p *protocol.Packet) *bus.Message {
	msg := bus.NewMessage(dir, name, p)
	b.Dispatch(ctx, msg)
	return msg
}

// Sent returns every message injected so far.
func (b *Bus) Sent() []*bus.Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*bus.Message, len(b.sent))
	copy(out, b.sent)
	return out
}

// SentNamed returns the injected messages matching dir and name.
func (b *Bus) SentNamed(dir protocol.Direction, name string) []*bus.Message {
	var out []*bus.Message
	for _, m := range b.Sent() {
		if m.Direction == dir && m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// Next waits up to timeout for the next injected message.
func (b *Bus) Next(timeout time.Duration) (*bus.Message, bool) {
	select {
	case msg := <-b.queue:
		return msg, true
	case <-time.After(timeout):
		return nil, false
	}
}
