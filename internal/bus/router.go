package bus

import (
	"context"
	"fmt"
	"sync"

	"github.com/pixil98/go-avgcheck/internal/protocol"
)

type routeKey struct {
	dir  protocol.Direction
	name string
}

type route struct {
	id uint64
	h  Handler
}

type connectRoute struct {
	id uint64
	h  ConnectHandler
}

// Router is the dispatch table shared by the transports. It keeps handlers in
// registration order and delivers each message to every handler registered
// for its direction and name.
type Router struct {
	mu       sync.RWMutex
	nextId   uint64
	routes   map[routeKey][]route
	connects []connectRoute
}

func NewRouter() *Router {
	return &Router{
		routes: make(map[routeKey][]route),
	}
}

// Intercept registers h for messages named name travelling in direction dir.
func (r *Router) Intercept(dir protocol.Direction, name string, h Handler) (func(), error) {
	if name == "" {
		return nil, fmt.Errorf("message name cannot be empty")
	}
	if h == nil {
		return nil, fmt.Errorf("handler cannot be nil")
	}
	if dir != protocol.ToClient && dir != protocol.ToServer {
		return nil, fmt.Errorf("invalid direction %s", dir)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextId++
	id := r.nextId
	key := routeKey{dir: dir, name: name}
	r.routes[key] = append(r.routes[key], route{id: id, h: h})

	return func() { r.remove(key, id) }, nil
}

func (r *Router) remove(key routeKey, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	routes := r.routes[key]
	for i, rt := range routes {
		if rt.id == id {
			r.routes[key] = append(routes[:i:i], routes[i+1:]...)
			break
		}
	}
	if len(r.routes[key]) == 0 {
		delete(r.routes, key)
	}
}

// OnConnect registers h for connection-established events.
func (r *Router) OnConnect(h ConnectHandler) (func(), error) {
	if h == nil {
		return nil, fmt.Errorf("handler cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextId++
	id := r.nextId
	r.connects = append(r.connects, connectRoute{id: id, h: h})

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, c := range r.connects {
			if c.id == id {
				r.connects = append(r.connects[:i:i], r.connects[i+1:]...)
				return
			}
		}
	}, nil
}

// Dispatch delivers msg to its handlers. It reports whether any handler was
// registered for the message.
func (r *Router) Dispatch(ctx context.Context, msg *Message) bool {
	r.mu.RLock()
	routes := r.routes[routeKey{dir: msg.Direction, name: msg.Name}]
	// Handlers may unsubscribe while running, so work on a copy.
	handlers := make([]Handler, len(routes))
	for i, rt := range routes {
		handlers[i] = rt.h
	}
	r.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, msg)
	}
	return len(handlers) > 0
}

// DispatchConnect delivers a connection-established event.
func (r *Router) DispatchConnect(ctx context.Context, host string) {
	r.mu.RLock()
	handlers := make([]ConnectHandler, len(r.connects))
	for i, c := range r.connects {
		handlers[i] = c.h
	}
	r.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, host)
	}
}

// Routes lists the (direction, name) pairs that currently have a handler.
func (r *Router) Routes() map[protocol.Direction][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[protocol.Direction][]string)
	for k := range r.routes {
		out[k.dir] = append(out[k.dir], k.name)
	}
	return out
}
