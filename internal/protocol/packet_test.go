package protocol

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestPacket_RoundTrip(t *testing.T) {
	p := &Packet{}
	p.AppendInt(1234).AppendString("hello").AppendInt(-1)

	r := NewPacket(p.Bytes())

	i, err := r.ReadInt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "first int", i, int32(1234))

	s, err := r.ReadString()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "string", s, "hello")

	i, err = r.ReadInt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "last int", i, int32(-1))
	testutil.AssertEqual(t, "remaining", r.Remaining(), 0)
}

func TestPacket_Layout(t *testing.T) {
	p := (&Packet{}).AppendInt(1).AppendString("ab")
	testutil.AssertEqual(t, "bytes", p.Bytes(), []byte{0, 0, 0, 1, 0, 2, 'a', 'b'})
}

func TestPacket_ShortReads(t *testing.T) {
	tests := map[string]struct {
		payload []byte
		read    func(p *Packet) error
	}{
		"int with three bytes": {
			payload: []byte{0, 0, 1},
			read: func(p *Packet) error {
				_, err := p.ReadInt()
				return err
			},
		},
		"string without length": {
			payload: []byte{0},
			read: func(p *Packet) error {
				_, err := p.ReadString()
				return err
			},
		},
		"string shorter than length": {
			payload: []byte{0, 5, 'a', 'b'},
			read: func(p *Packet) error {
				_, err := p.ReadString()
				return err
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.read(NewPacket(tt.payload))
			if !errors.Is(err, ErrShortPacket) {
				t.Errorf("expected ErrShortPacket, got %v", err)
			}
		})
	}
}

func TestDirection_Text(t *testing.T) {
	tests := map[string]struct {
		text   string
		exp    Direction
		expErr string
	}{
		"to client": {text: "toclient", exp: ToClient},
		"to server": {text: "toserver", exp: ToServer},
		"unknown":   {text: "sideways", expErr: "unknown direction: sideways"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var d Direction
			err := d.UnmarshalText([]byte(tt.text))
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "direction", d, tt.exp)

			out, err := d.MarshalText()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "text", string(out), tt.text)
		})
	}
}
