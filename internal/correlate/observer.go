package correlate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-avgcheck/internal/bus"
	"github.com/pixil98/go-avgcheck/internal/protocol"
	"github.com/pixil98/go-avgcheck/internal/session"
)

// PendingLookups exposes the session's pending slot.
type PendingLookups interface {
	Pending() *session.Lookup
}

// ObserverCorrelator resolves lookups from a permanently registered response
// observer. Every response is kept from the client; one is only used when it
// matches the item of the lookup holding the pending slot.
type ObserverCorrelator struct {
	bus     Bus
	pending PendingLookups
	timeout time.Duration

	mu       sync.Mutex
	observed bool
	waiting  map[uuid.UUID]chan protocol.ItemStats
}

func NewObserverCorrelator(b Bus, pending PendingLookups, timeout time.Duration) *ObserverCorrelator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ObserverCorrelator{
		bus:     b,
		pending: pending,
		timeout: timeout,
		waiting: make(map[uuid.UUID]chan protocol.ItemStats),
	}
}

// Observe registers the response observer.
func (c *ObserverCorrelator) Observe() (func(), error) {
	unsub, err := c.bus.Intercept(protocol.ToClient, protocol.MsgItemStats, c.onResponse)
	if err != nil {
		return nil, fmt.Errorf("observing %s: %w", protocol.MsgItemStats, err)
	}

	c.mu.Lock()
	c.observed = true
	c.mu.Unlock()

	return func() {
		unsub()
		c.mu.Lock()
		c.observed = false
		c.mu.Unlock()
	}, nil
}

func (c *ObserverCorrelator) onResponse(ctx context.Context, msg *bus.Message) {
	msg.Block()

	l := c.pending.Pending()
	if l == nil {
		slog.DebugContext(ctx, "ignoring item stats with no pending lookup")
		return
	}

	stats, ok := matches(msg, l.Item)
	if !ok {
		slog.DebugContext(ctx, "ignoring item stats for another item", "pending", l.Item.TypeID)
		return
	}

	c.mu.Lock()
	ch, ok := c.waiting[l.Token]
	delete(c.waiting, l.Token)
	c.mu.Unlock()

	if !ok {
		slog.DebugContext(ctx, "ignoring item stats for a lookup not waiting", "token", l.Token)
		return
	}
	ch <- stats
}

func (c *ObserverCorrelator) Correlate(ctx context.Context, l *session.Lookup) (Result, error) {
	ctx, cancel := context.WithTimeoutCause(ctx, c.timeout, ErrTimeout)
	defer cancel()

	ch := make(chan protocol.ItemStats, 1)

	c.mu.Lock()
	if !c.observed {
		c.mu.Unlock()
		return Result{}, fmt.Errorf("response observer not registered")
	}
	c.waiting[l.Token] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.waiting, l.Token)
		c.mu.Unlock()
	}()

	if err := c.bus.Send(ctx, requestMessage(l.Item)); err != nil {
		return Result{}, fmt.Errorf("sending lookup request: %w", err)
	}

	select {
	case stats := <-ch:
		return toResult(stats)
	case <-ctx.Done():
		return Result{}, doneErr(ctx)
	}
}
