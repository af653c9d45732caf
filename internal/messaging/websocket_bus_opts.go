package messaging

import "time"

type WebsocketBusOpt func(*WebsocketBus)

// WithReconnectDelay sets how long to wait before redialling a dropped connection.
func WithReconnectDelay(d time.Duration) WebsocketBusOpt {
	return func(b *WebsocketBus) {
		b.reconnectDelay = d
	}
}
