// Package extension wires the average checker onto an interception bus: it
// keeps the room projection current, toggles the mode from chat, and turns
// item clicks into marketplace lookups.
package extension

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pixil98/go-avgcheck/internal/bus"
	"github.com/pixil98/go-avgcheck/internal/catalog"
	"github.com/pixil98/go-avgcheck/internal/command"
	"github.com/pixil98/go-avgcheck/internal/correlate"
	"github.com/pixil98/go-avgcheck/internal/notify"
	"github.com/pixil98/go-avgcheck/internal/protocol"
	"github.com/pixil98/go-avgcheck/internal/room"
	"github.com/pixil98/go-avgcheck/internal/session"
)

// CatalogLoader fetches the reference data for a connection and hands out the
// snapshot in use.
type CatalogLoader interface {
	room.CatalogProvider
	Invalidate() uint64
	Load(ctx context.Context, gen uint64, host string) error
}

// Notifier shows text to the user.
type Notifier interface {
	Notify(ctx context.Context, text string)
}

// Formatter renders the user-visible texts.
type Formatter interface {
	Toggle(enabled bool) (string, error)
	Price(data notify.PriceData) (string, error)
}

type route struct {
	dir  protocol.Direction
	name string
	h    bus.Handler
}

type Extension struct {
	bus        bus.Bus
	state      *session.State
	catalogs   CatalogLoader
	correlator correlate.Correlator
	notifier   Notifier
	format     Formatter
	projection *room.Projection

	token                string
	alwaysSuppressClicks bool
	gateProjection       bool

	wg sync.WaitGroup
}

func NewExtension(b bus.Bus, state *session.State, catalogs CatalogLoader, correlator correlate.Correlator, notifier Notifier, format Formatter, opts ...ExtensionOpt) *Extension {
	e := &Extension{
		bus:        b,
		state:      state,
		catalogs:   catalogs,
		correlator: correlator,
		notifier:   notifier,
		format:     format,
		projection: room.NewProjection(catalogs),
		token:      command.DefaultToken,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Projection exposes the room view built from inventory broadcasts.
func (e *Extension) Projection() *room.Projection {
	return e.projection
}

// Start registers the extension's handlers and keeps them in place until ctx
// ends.
func (e *Extension) Start(ctx context.Context) error {
	unsubs, err := e.register(ctx)
	if err != nil {
		for _, unsub := range unsubs {
			unsub()
		}
		return err
	}

	slog.InfoContext(ctx, "average checker ready", "enabled", e.state.Enabled())

	<-ctx.Done()

	for _, unsub := range unsubs {
		unsub()
	}
	e.state.Reset()
	e.wg.Wait()

	return nil
}

func (e *Extension) register(ctx context.Context) ([]func(), error) {
	var unsubs []func()

	unsub, err := e.bus.OnConnect(func(_ context.Context, host string) {
		e.onConnect(ctx, host)
	})
	if err != nil {
		return unsubs, fmt.Errorf("registering connect handler: %w", err)
	}
	unsubs = append(unsubs, unsub)

	toggler := command.NewToggler(command.NewParser(e.token), e.state, e.notifier, e.format)

	routes := []route{
		{protocol.ToClient, protocol.MsgFloorItems, e.onInventory(catalog.KindFloor)},
		{protocol.ToClient, protocol.MsgWallItems, e.onInventory(catalog.KindWall)},
		{protocol.ToServer, protocol.MsgUseFloorItem, e.onClick(ctx, catalog.KindFloor)},
		{protocol.ToServer, protocol.MsgUseWallItem, e.onClick(ctx, catalog.KindWall)},
	}
	for _, name := range protocol.ChatMessages {
		routes = append(routes, route{protocol.ToServer, name, toggler.Handler()})
	}

	for _, r := range routes {
		unsub, err := e.bus.Intercept(r.dir, r.name, r.h)
		if err != nil {
			return unsubs, fmt.Errorf("intercepting %s %s: %w", r.dir, r.name, err)
		}
		unsubs = append(unsubs, unsub)
	}

	if o, ok := e.correlator.(correlate.Observer); ok {
		unsub, err := o.Observe()
		if err != nil {
			return unsubs, err
		}
		unsubs = append(unsubs, unsub)
	}

	return unsubs, nil
}

// onConnect starts over for a new connection. The previous catalog is dropped
// before returning so later broadcasts can't be named from it; the new one is
// fetched off the dispatch goroutine.
func (e *Extension) onConnect(ctx context.Context, host string) {
	e.state.Reset()
	e.projection.Reset()
	gen := e.catalogs.Invalidate()

	slog.InfoContext(ctx, "connection established", "host", host)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		if err := e.catalogs.Load(ctx, gen, host); err != nil {
			slog.WarnContext(ctx, "loading catalog", "host", host, "error", err)
		}
	}()
}

func (e *Extension) onInventory(kind catalog.Kind) bus.Handler {
	return func(ctx context.Context, msg *bus.Message) {
		if e.gateProjection && !e.state.Enabled() {
			return
		}

		raw, err := protocol.ParseInventory(msg.Packet())
		if err != nil {
			slog.DebugContext(ctx, "parsing inventory", "kind", kind, "error", err)
			return
		}

		n, err := e.projection.Rebuild(ctx, kind, raw)
		if err != nil {
			slog.DebugContext(ctx, "projecting inventory", "kind", kind, "error", err)
			return
		}
		slog.DebugContext(ctx, "room items projected", "kind", kind, "received", len(raw), "known", n)
	}
}

// onClick handles an item use on its way to the server. Lookups are bound to
// runCtx rather than the message so they outlive the dispatch.
func (e *Extension) onClick(runCtx context.Context, kind catalog.Kind) bus.Handler {
	return func(ctx context.Context, msg *bus.Message) {
		if !e.state.Enabled() {
			if e.alwaysSuppressClicks {
				msg.Block()
			}
			return
		}
		msg.Block()

		id, err := msg.Packet().ReadInt()
		if err != nil {
			slog.DebugContext(ctx, "reading clicked item id", "kind", kind, "error", err)
			return
		}

		item, err := e.projection.Find(kind, id)
		if err != nil {
			slog.DebugContext(ctx, "click on unknown item", "error", err)
			return
		}

		l := e.state.Begin(runCtx, item)
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			e.lookup(l)
		}()
	}
}

func (e *Extension) lookup(l *session.Lookup) {
	ctx := l.Context()

	res, err := e.correlator.Correlate(ctx, l)
	e.state.Finish(l)
	if err != nil {
		slog.DebugContext(ctx, "lookup ended without a price", "item", l.Item.Name, "token", l.Token, "error", err)
		return
	}

	text, err := e.format.Price(notify.PriceData{
		Name:    l.Item.Name,
		Kind:    l.Item.Kind.String(),
		Average: res.Average,
		Offers:  res.Offers,
	})
	if err != nil {
		slog.WarnContext(ctx, "formatting price notification", "error", err)
		return
	}

	e.notifier.Notify(context.WithoutCancel(ctx), text)
}
