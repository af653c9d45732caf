package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pixil98/go-avgcheck/internal/bus/bustest"
	"github.com/pixil98/go-avgcheck/internal/protocol"
	"github.com/pixil98/go-testutil"
)

type shout struct {
	actor   int32
	text    string
	trailer []int32
}

func readShout(t *testing.T, p *protocol.Packet) shout {
	t.Helper()

	var s shout
	var err error
	if s.actor, err = p.ReadInt(); err != nil {
		t.Fatalf("reading actor: %v", err)
	}
	if s.text, err = p.ReadString(); err != nil {
		t.Fatalf("reading text: %v", err)
	}
	for range 4 {
		v, err := p.ReadInt()
		if err != nil {
			t.Fatalf("reading trailer: %v", err)
		}
		s.trailer = append(s.trailer, v)
	}
	testutil.AssertEqual(t, "remaining", p.Remaining(), 0)
	return s
}

func TestNotifier_Notify(t *testing.T) {
	tests := map[string]struct {
		opts     []NotifierOpt
		text     string
		expActor int32
		expText  string
	}{
		"defaults": {
			text:     "Chair marketplace average is 17 coins!",
			expActor: 1234,
			expText:  "Chair marketplace average is 17 coins!",
		},
		"custom actor": {
			opts:     []NotifierOpt{WithActorId(-5)},
			text:     "hi",
			expActor: -5,
			expText:  "hi",
		},
		"long text is cut": {
			opts:     []NotifierOpt{WithMaxLength(10)},
			text:     "abcdefghijklmnop",
			expActor: 1234,
			expText:  "abcdefg...",
		},
		"limit disabled": {
			opts:     []NotifierOpt{WithMaxLength(0)},
			text:     strings.Repeat("x", 300),
			expActor: 1234,
			expText:  strings.Repeat("x", 300),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b := bustest.New()
			n := NewNotifier(b, tt.opts...)

			n.Notify(context.Background(), tt.text)

			sent := b.Sent()
			testutil.AssertEqual(t, "sent count", len(sent), 1)
			testutil.AssertEqual(t, "direction", sent[0].Direction, protocol.ToClient)
			testutil.AssertEqual(t, "name", sent[0].Name, protocol.MsgClientShout)

			s := readShout(t, sent[0].Packet())
			testutil.AssertEqual(t, "actor", s.actor, tt.expActor)
			testutil.AssertEqual(t, "text", s.text, tt.expText)
			testutil.AssertEqual(t, "trailer", s.trailer, []int32{0, 0, 0, -1})
		})
	}
}

func TestNotifier_SendErrorIsSwallowed(t *testing.T) {
	b := bustest.New()
	b.SendErr = errors.New("connection closed")

	NewNotifier(b).Notify(context.Background(), "hello")

	testutil.AssertEqual(t, "attempts", len(b.Sent()), 1)
}
