package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// NatsServer runs an embedded NATS server the interception host can publish
// intercepted traffic to.
type NatsServer struct {
	ns    *server.Server
	ready chan struct{}

	startupTimeout time.Duration
	host           string
	port           int
}

func NewNatsServer(opts ...NatsServerOpt) (*NatsServer, error) {
	s := &NatsServer{
		ready:          make(chan struct{}),
		startupTimeout: 10 * time.Second,
		host:           "127.0.0.1",
		port:           nats.DefaultPort,
	}

	for _, opt := range opts {
		opt(s)
	}

	ns, err := server.NewServer(&server.Options{
		Host:   s.host,
		Port:   s.port,
		NoSigs: true, // Let the application handle signals
	})
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	s.ns = ns

	return s, nil
}

func (n *NatsServer) Start(ctx context.Context) error {
	n.ns.Start()

	if !n.ns.ReadyForConnections(n.startupTimeout) {
		n.ns.Shutdown()
		return fmt.Errorf("nats server not ready for connections")
	}
	close(n.ready)

	slog.InfoContext(ctx, "nats server listening", "addr", n.ns.Addr())

	<-ctx.Done()
	n.ns.Shutdown()
	n.ns.WaitForShutdown()

	return nil
}

// Dial waits for the server to accept connections and opens a client
// connection to it.
func (n *NatsServer) Dial(ctx context.Context) (*nats.Conn, error) {
	select {
	case <-n.ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	conn, err := nats.Connect(n.ns.ClientURL(), nats.Name("avgcheck"))
	if err != nil {
		return nil, fmt.Errorf("creating nats client connection: %w", err)
	}
	return conn, nil
}

// NatsURL dials an external NATS server.
type NatsURL string

func (u NatsURL) Dial(_ context.Context) (*nats.Conn, error) {
	conn, err := nats.Connect(string(u), nats.Name("avgcheck"))
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", string(u), err)
	}
	return conn, nil
}
