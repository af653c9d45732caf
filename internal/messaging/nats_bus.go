package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/pixil98/go-avgcheck/internal/bus"
)

const DefaultSubjectPrefix = "avgcheck"

// Dialer opens the NATS connection a bus runs on.
type Dialer interface {
	Dial(ctx context.Context) (*nats.Conn, error)
}

// NatsBus is the interception bus carried over NATS. Intercepted messages
// arrive as requests on <prefix>.intercept.<direction>.<name> and are answered
// with a Verdict; connection events arrive on <prefix>.connect; injected
// messages are published on <prefix>.inject.<direction>.
type NatsBus struct {
	*bus.Router

	dialer  Dialer
	prefix  string
	bufSize int

	mu    sync.RWMutex
	conn  *nats.Conn
	ready chan struct{}
}

func NewNatsBus(dialer Dialer, opts ...NatsBusOpt) *NatsBus {
	b := &NatsBus{
		Router:  bus.NewRouter(),
		dialer:  dialer,
		prefix:  DefaultSubjectPrefix,
		bufSize: 256,
		ready:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Ready is closed once the bus is subscribed.
func (b *NatsBus) Ready() <-chan struct{} {
	return b.ready
}

func (b *NatsBus) Start(ctx context.Context) error {
	conn, err := b.dialer.Dial(ctx)
	if err != nil {
		return fmt.Errorf("dialing nats: %w", err)
	}
	defer conn.Close()

	// Both subscriptions feed one channel so messages are dispatched one at a
	// time in arrival order.
	msgs := make(chan *nats.Msg, b.bufSize)
	for _, subject := range []string{b.interceptSubject() + ".>", b.connectSubject()} {
		sub, err := conn.ChanSubscribe(subject, msgs)
		if err != nil {
			return fmt.Errorf("subscribing to %s: %w", subject, err)
		}
		defer sub.Unsubscribe()
	}
	if err := conn.Flush(); err != nil {
		return fmt.Errorf("flushing subscriptions: %w", err)
	}

	b.mu.Lock()
	b.conn = conn
	b.mu.Unlock()
	close(b.ready)

	slog.InfoContext(ctx, "nats bus subscribed", "prefix", b.prefix)

	defer func() {
		b.mu.Lock()
		b.conn = nil
		b.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case m := <-msgs:
			b.handle(ctx, m)
		}
	}
}

// Send publishes msg for injection.
func (b *NatsBus) Send(_ context.Context, msg *bus.Message) error {
	b.mu.RLock()
	conn := b.conn
	b.mu.RUnlock()
	if conn == nil {
		return ErrNotConnected
	}

	data, err := json.Marshal(envelopeOf(msg))
	if err != nil {
		return fmt.Errorf("encoding %s: %w", msg.Name, err)
	}
	return conn.Publish(b.injectSubject(msg), data)
}

func (b *NatsBus) handle(ctx context.Context, m *nats.Msg) {
	if m.Subject == b.connectSubject() {
		var evt ConnectEvent
		if err := json.Unmarshal(m.Data, &evt); err != nil {
			slog.WarnContext(ctx, "decoding connect event", "error", err)
			return
		}
		b.DispatchConnect(ctx, evt.Host)
		return
	}

	var env Envelope
	if err := json.Unmarshal(m.Data, &env); err != nil {
		slog.WarnContext(ctx, "decoding intercepted message", "subject", m.Subject, "error", err)
		b.respond(ctx, m, Verdict{})
		return
	}

	msg := env.message()
	if !b.Dispatch(ctx, msg) {
		slog.DebugContext(ctx, "no handler for intercepted message", "direction", msg.Direction, "name", msg.Name)
	}
	b.respond(ctx, m, verdictOf(msg))
}

func (b *NatsBus) respond(ctx context.Context, m *nats.Msg, v Verdict) {
	if m.Reply == "" {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		slog.WarnContext(ctx, "encoding verdict", "error", err)
		return
	}
	if err := m.Respond(data); err != nil {
		slog.WarnContext(ctx, "sending verdict", "subject", m.Subject, "error", err)
	}
}

func (b *NatsBus) interceptSubject() string {
	return b.prefix + ".intercept"
}

func (b *NatsBus) connectSubject() string {
	return b.prefix + ".connect"
}

func (b *NatsBus) injectSubject(msg *bus.Message) string {
	return fmt.Sprintf("%s.inject.%s", b.prefix, msg.Direction)
}
