package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-avgcheck/internal/bus"
	"github.com/pixil98/go-avgcheck/internal/protocol"
)

const (
	frameIntercept = "intercept"
	frameVerdict   = "verdict"
	frameConnect   = "connect"
	frameInject    = "inject"

	writeWait  = 10 * time.Second
	maxMsgSize = 1 << 20 // 1MB
)

// frame is the WebSocket wire form. An intercept and its verdict share an id.
type frame struct {
	Type      string             `json:"type"`
	ID        string             `json:"id,omitempty"`
	Direction protocol.Direction `json:"direction,omitempty"`
	Name      string             `json:"name,omitempty"`
	Payload   []byte             `json:"payload,omitempty"`
	Blocked   bool               `json:"blocked,omitempty"`
	Host      string             `json:"host,omitempty"`
}

// WebsocketBus is the interception bus carried over a WebSocket connection to
// the interception host. The connection is redialled when it drops.
type WebsocketBus struct {
	*bus.Router

	url            string
	reconnectDelay time.Duration

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewWebsocketBus(url string, opts ...WebsocketBusOpt) *WebsocketBus {
	b := &WebsocketBus{
		Router:         bus.NewRouter(),
		url:            url,
		reconnectDelay: 2 * time.Second,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

func (b *WebsocketBus) Start(ctx context.Context) error {
	for {
		err := b.run(ctx)
		if ctx.Err() != nil {
			return nil
		}
		slog.WarnContext(ctx, "websocket bus disconnected", "url", b.url, "error", err)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(b.reconnectDelay):
		}
	}
}

func (b *WebsocketBus) run(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, b.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", b.url, err)
	}
	conn.SetReadLimit(maxMsgSize)

	b.mu.Lock()
	b.conn = conn
	b.mu.Unlock()

	slog.InfoContext(ctx, "websocket bus connected", "url", b.url)

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer func() {
		stop()
		b.mu.Lock()
		b.conn = nil
		b.mu.Unlock()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			slog.WarnContext(ctx, "decoding websocket frame", "error", err)
			continue
		}
		b.handle(ctx, f)
	}
}

func (b *WebsocketBus) handle(ctx context.Context, f frame) {
	switch f.Type {
	case frameConnect:
		b.DispatchConnect(ctx, f.Host)
	case frameIntercept:
		msg := &bus.Message{Direction: f.Direction, Name: f.Name, Payload: f.Payload}
		if !b.Dispatch(ctx, msg) {
			slog.DebugContext(ctx, "no handler for intercepted message", "direction", msg.Direction, "name", msg.Name)
		}
		v := verdictOf(msg)
		err := b.write(frame{Type: frameVerdict, ID: f.ID, Blocked: v.Blocked, Payload: v.Payload})
		if err != nil {
			slog.WarnContext(ctx, "sending verdict", "id", f.ID, "error", err)
		}
	default:
		slog.DebugContext(ctx, "ignoring websocket frame", "type", f.Type)
	}
}

// Send asks the interception host to inject msg.
func (b *WebsocketBus) Send(_ context.Context, msg *bus.Message) error {
	return b.write(frame{
		Type:      frameInject,
		Direction: msg.Direction,
		Name:      msg.Name,
		Payload:   msg.Payload,
	})
}

func (b *WebsocketBus) write(f frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding %s frame: %w", f.Type, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil {
		return ErrNotConnected
	}
	b.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return b.conn.WriteMessage(websocket.TextMessage, data)
}
