package bus

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/pixil98/go-avgcheck/internal/protocol"
)

// Expectation is a one-shot wait for the next matching message. It is
// registered before the request that provokes the message is sent, so the
// response can't slip past.
type Expectation struct {
	ch          chan *Message
	fired       atomic.Bool
	unsubscribe func()
	closeOnce   sync.Once
}

// Expect starts listening for a message named name travelling in direction
// dir. match decides whether a candidate is the awaited one and may block it;
// a nil match accepts the first message.
func Expect(in Interceptor, dir protocol.Direction, name string, match func(*Message) bool) (*Expectation, error) {
	e := &Expectation{
		ch: make(chan *Message, 1),
	}

	unsub, err := in.Intercept(dir, name, func(_ context.Context, msg *Message) {
		if e.fired.Load() {
			return
		}
		if match != nil && !match(msg) {
			return
		}
		if e.fired.CompareAndSwap(false, true) {
			e.ch <- msg
		}
	})
	if err != nil {
		return nil, err
	}
	e.unsubscribe = unsub

	return e, nil
}

// Wait blocks until the expected message arrives or ctx ends. The
// expectation is released either way and can't be waited on twice.
func (e *Expectation) Wait(ctx context.Context) (*Message, error) {
	defer e.Close()

	select {
	case msg := <-e.ch:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close releases the expectation without waiting.
func (e *Expectation) Close() {
	e.closeOnce.Do(func() {
		e.fired.Store(true)
		e.unsubscribe()
	})
}
