package bus

import (
	"context"
	"testing"

	"github.com/pixil98/go-avgcheck/internal/protocol"
	"github.com/pixil98/go-testutil"
)

func TestRouter_Intercept(t *testing.T) {
	noop := func(context.Context, *Message) {}

	tests := map[string]struct {
		dir    protocol.Direction
		name   string
		h      Handler
		expErr string
	}{
		"valid": {
			dir:  protocol.ToServer,
			name: protocol.MsgChat,
			h:    noop,
		},
		"empty name": {
			dir:    protocol.ToServer,
			h:      noop,
			expErr: "message name cannot be empty",
		},
		"nil handler": {
			dir:    protocol.ToClient,
			name:   protocol.MsgFloorItems,
			expErr: "handler cannot be nil",
		},
		"invalid direction": {
			dir:    protocol.Direction(0),
			name:   protocol.MsgFloorItems,
			h:      noop,
			expErr: "invalid direction",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := NewRouter()
			unsub, err := r.Intercept(tt.dir, tt.name, tt.h)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if unsub == nil {
				t.Fatal("expected unsubscribe func")
			}
		})
	}
}

func TestRouter_Dispatch(t *testing.T) {
	r := NewRouter()
	var calls []string

	_, _ = r.Intercept(protocol.ToServer, protocol.MsgChat, func(_ context.Context, m *Message) {
		calls = append(calls, "first")
	})
	unsub, _ := r.Intercept(protocol.ToServer, protocol.MsgChat, func(_ context.Context, m *Message) {
		calls = append(calls, "second")
		m.Block()
	})
	_, _ = r.Intercept(protocol.ToClient, protocol.MsgChat, func(_ context.Context, m *Message) {
		calls = append(calls, "wrong direction")
	})

	msg := &Message{Direction: protocol.ToServer, Name: protocol.MsgChat}
	handled := r.Dispatch(context.Background(), msg)

	testutil.AssertEqual(t, "handled", handled, true)
	testutil.AssertEqual(t, "calls", calls, []string{"first", "second"})
	testutil.AssertEqual(t, "blocked", msg.Blocked, true)

	unsub()
	calls = nil
	msg = &Message{Direction: protocol.ToServer, Name: protocol.MsgChat}
	r.Dispatch(context.Background(), msg)

	testutil.AssertEqual(t, "calls after unsubscribe", calls, []string{"first"})
	testutil.AssertEqual(t, "blocked after unsubscribe", msg.Blocked, false)

	handled = r.Dispatch(context.Background(), &Message{Direction: protocol.ToServer, Name: "Unknown"})
	testutil.AssertEqual(t, "unknown handled", handled, false)
}

func TestRouter_UnsubscribeDuringDispatch(t *testing.T) {
	r := NewRouter()
	count := 0

	var unsub func()
	unsub, _ = r.Intercept(protocol.ToClient, protocol.MsgItemStats, func(context.Context, *Message) {
		count++
		unsub()
	})

	r.Dispatch(context.Background(), &Message{Direction: protocol.ToClient, Name: protocol.MsgItemStats})
	r.Dispatch(context.Background(), &Message{Direction: protocol.ToClient, Name: protocol.MsgItemStats})

	testutil.AssertEqual(t, "count", count, 1)
	testutil.AssertEqual(t, "routes", len(r.Routes()), 0)
}

func TestRouter_DispatchConnect(t *testing.T) {
	r := NewRouter()
	var hosts []string

	unsub, err := r.OnConnect(func(_ context.Context, host string) {
		hosts = append(hosts, host)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r.DispatchConnect(context.Background(), "game-us.habbo.com")
	unsub()
	r.DispatchConnect(context.Background(), "game-nl.habbo.com")

	testutil.AssertEqual(t, "hosts", hosts, []string{"game-us.habbo.com"})

	_, err = r.OnConnect(nil)
	testutil.AssertErrorContains(t, err, "handler cannot be nil")
}
