package messaging

import (
	"errors"

	"github.com/pixil98/go-avgcheck/internal/bus"
	"github.com/pixil98/go-avgcheck/internal/protocol"
)

var ErrNotConnected = errors.New("transport not connected")

// Envelope carries one intercepted or injected message. Payload is base64 in
// JSON.
type Envelope struct {
	Direction protocol.Direction `json:"direction"`
	Name      string             `json:"name"`
	Payload   []byte             `json:"payload"`
}

// Verdict answers an intercepted message.
type Verdict struct {
	Blocked bool   `json:"blocked"`
	Payload []byte `json:"payload,omitempty"`
}

// ConnectEvent announces a new game connection.
type ConnectEvent struct {
	Host string `json:"host"`
}

func envelopeOf(msg *bus.Message) Envelope {
	return Envelope{
		Direction: msg.Direction,
		Name:      msg.Name,
		Payload:   msg.Payload,
	}
}

func (e Envelope) message() *bus.Message {
	return &bus.Message{
		Direction: e.Direction,
		Name:      e.Name,
		Payload:   e.Payload,
	}
}

func verdictOf(msg *bus.Message) Verdict {
	return Verdict{
		Blocked: msg.Blocked,
		Payload: msg.Payload,
	}
}
