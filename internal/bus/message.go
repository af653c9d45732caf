package bus

import (
	"context"

	"github.com/pixil98/go-avgcheck/internal/protocol"
)

// Message is a single message crossing the interception point, either
// delivered to an observer or injected by the extension.
type Message struct {
	Direction protocol.Direction
	Name      string
	Payload   []byte

	// Blocked marks the message as suppressed: the transport will not forward
	// it to its original destination.
	Blocked bool
}

// NewMessage builds an outbound message from a packet.
func NewMessage(dir protocol.Direction, name string, p *protocol.Packet) *Message {
	return &Message{
		Direction: dir,
		Name:      name,
		Payload:   p.Bytes(),
	}
}

// Packet returns a fresh reader over the payload, so every observer reads
// from the start.
func (m *Message) Packet() *protocol.Packet {
	return protocol.NewPacket(m.Payload)
}

// Block suppresses the message.
func (m *Message) Block() {
	m.Blocked = true
}

// Handler observes a message. Handlers run one at a time in delivery order
// and must not block; long work belongs in its own goroutine.
type Handler func(ctx context.Context, msg *Message)

// ConnectHandler observes the start of a new game connection.
type ConnectHandler func(ctx context.Context, host string)

// Interceptor registers message observers.
type Interceptor interface {
	Intercept(dir protocol.Direction, name string, h Handler) (unsubscribe func(), err error)
}

// Sender injects messages toward the client or the server.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// Bus is the interception runtime as seen by the extension.
type Bus interface {
	Interceptor
	Sender
	OnConnect(h ConnectHandler) (unsubscribe func(), err error)
}
