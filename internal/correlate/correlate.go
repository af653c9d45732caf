// Package correlate turns a clicked room item into exactly one marketplace
// lookup and resolves it against the response that later arrives on the
// shared inbound stream.
//
// Two strategies are provided. AwaitCorrelator registers a one-shot wait for
// the response before sending each request. ObserverCorrelator keeps a
// standing response observer and hands each response to the pending lookup.
// Both only ever resolve the lookup that currently holds the session's pending
// slot, and both give up after a timeout.
package correlate

import (
	"context"
	"errors"
	"time"

	"github.com/pixil98/go-avgcheck/internal/bus"
	"github.com/pixil98/go-avgcheck/internal/protocol"
	"github.com/pixil98/go-avgcheck/internal/room"
	"github.com/pixil98/go-avgcheck/internal/session"
)

const DefaultTimeout = 1000 * time.Millisecond

var (
	ErrTimeout = errors.New("lookup timed out")
	// ErrNoData means the marketplace has no average for the item, typically
	// because it has never been traded.
	ErrNoData = errors.New("no marketplace data")
)

// Result is a resolved lookup.
type Result struct {
	Average int32
	Offers  int32
}

// Correlator resolves a lookup to its marketplace result.
type Correlator interface {
	Correlate(ctx context.Context, l *session.Lookup) (Result, error)
}

// Observer is implemented by correlators that need a standing registration on
// the bus while the extension runs.
type Observer interface {
	Observe() (unsubscribe func(), err error)
}

// Bus is what the correlators need from the interception runtime.
type Bus interface {
	bus.Interceptor
	bus.Sender
}

func requestMessage(item room.Item) *bus.Message {
	p := (&protocol.Packet{}).
		AppendInt(int32(item.Kind)).
		AppendInt(item.TypeID)
	return bus.NewMessage(protocol.ToServer, protocol.MsgGetItemStats, p)
}

// matches reports whether msg is a statistics response for item.
func matches(msg *bus.Message, item room.Item) (protocol.ItemStats, bool) {
	stats, err := protocol.ParseItemStats(msg.Packet())
	if err != nil {
		return protocol.ItemStats{}, false
	}
	return stats, stats.Matches(int32(item.Kind), item.TypeID)
}

func toResult(stats protocol.ItemStats) (Result, error) {
	if stats.Average <= 0 {
		return Result{}, ErrNoData
	}
	return Result{Average: stats.Average, Offers: stats.Offers}, nil
}

// doneErr maps the end of a lookup context to the reason it ended.
func doneErr(ctx context.Context) error {
	cause := context.Cause(ctx)
	if errors.Is(cause, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return cause
}
