package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Loader holds the snapshot for the current connection.
type Loader struct {
	src     Source
	current atomic.Pointer[Catalog]

	mu  sync.Mutex
	gen uint64
}

func NewLoader(src Source) *Loader {
	return &Loader{src: src}
}

// Invalidate drops the current snapshot and supersedes any load in flight.
// Until the next Load for the returned generation completes, Current reports
// no catalog.
func (l *Loader) Invalidate() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.gen++
	l.current.Store(nil)
	return l.gen
}

// Load fetches the snapshot for host and installs it if gen is still the
// latest generation handed out by Invalidate.
func (l *Loader) Load(ctx context.Context, gen uint64, host string) error {
	c, err := l.src.Fetch(ctx, host)
	if err != nil {
		return fmt.Errorf("loading catalog for %q: %w", host, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.gen != gen {
		slog.DebugContext(ctx, "discarding superseded catalog", "host", host)
		return nil
	}
	l.current.Store(c)

	slog.InfoContext(ctx, "catalog loaded", "host", host, "floor", c.Len(KindFloor), "wall", c.Len(KindWall))
	return nil
}

// Current returns the loaded snapshot, or nil if none is ready.
func (l *Loader) Current() *Catalog {
	return l.current.Load()
}
