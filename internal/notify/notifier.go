package notify

import (
	"context"
	"log/slog"

	"github.com/muesli/reflow/truncate"
	"github.com/pixil98/go-avgcheck/internal/bus"
	"github.com/pixil98/go-avgcheck/internal/protocol"
)

const (
	DefaultActorId   = 1234
	DefaultMaxLength = 100
)

// Notifier shows text to the user as a shout from a fixed actor in the room.
type Notifier struct {
	sender  bus.Sender
	actorId int32
	maxLen  uint
}

func NewNotifier(sender bus.Sender, opts ...NotifierOpt) *Notifier {
	n := &Notifier{
		sender:  sender,
		actorId: DefaultActorId,
		maxLen:  DefaultMaxLength,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Notify sends text toward the client. Delivery is best effort: a failed send
// is logged and otherwise ignored.
func (n *Notifier) Notify(ctx context.Context, text string) {
	msg := bus.NewMessage(protocol.ToClient, protocol.MsgClientShout, n.packet(text))
	if err := n.sender.Send(ctx, msg); err != nil {
		slog.WarnContext(ctx, "sending notification", "error", err)
	}
}

// packet lays out the shout: actor, text, gesture, bubble style, link count
// and tracking id.
func (n *Notifier) packet(text string) *protocol.Packet {
	if n.maxLen > 0 {
		text = truncate.StringWithTail(text, n.maxLen, "...")
	}

	return (&protocol.Packet{}).
		AppendInt(n.actorId).
		AppendString(text).
		AppendInt(0).
		AppendInt(0).
		AppendInt(0).
		AppendInt(-1)
}
