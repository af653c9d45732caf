package correlate

import (
	"context"
	"fmt"
	"time"

	"github.com/pixil98/go-avgcheck/internal/bus"
	"github.com/pixil98/go-avgcheck/internal/protocol"
	"github.com/pixil98/go-avgcheck/internal/session"
)

// AwaitCorrelator sends the request and suspends on a one-shot wait for the
// matching response.
type AwaitCorrelator struct {
	bus     Bus
	timeout time.Duration
}

func NewAwaitCorrelator(b Bus, timeout time.Duration) *AwaitCorrelator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &AwaitCorrelator{bus: b, timeout: timeout}
}

func (c *AwaitCorrelator) Correlate(ctx context.Context, l *session.Lookup) (Result, error) {
	ctx, cancel := context.WithTimeoutCause(ctx, c.timeout, ErrTimeout)
	defer cancel()

	item := l.Item
	exp, err := bus.Expect(c.bus, protocol.ToClient, protocol.MsgItemStats, func(msg *bus.Message) bool {
		if _, ok := matches(msg, item); !ok {
			return false
		}
		msg.Block()
		return true
	})
	if err != nil {
		return Result{}, fmt.Errorf("registering response wait: %w", err)
	}
	defer exp.Close()

	if err := c.bus.Send(ctx, requestMessage(item)); err != nil {
		return Result{}, fmt.Errorf("sending lookup request: %w", err)
	}

	msg, err := exp.Wait(ctx)
	if err != nil {
		return Result{}, doneErr(ctx)
	}

	stats, _ := matches(msg, item)
	return toResult(stats)
}
