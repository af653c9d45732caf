package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/pixil98/go-avgcheck/internal/room"
)

var (
	// ErrSuperseded is the cancellation cause of a lookup replaced by a newer click.
	ErrSuperseded = errors.New("lookup superseded")
	// ErrSessionReset is the cancellation cause of a lookup dropped on reconnect.
	ErrSessionReset = errors.New("session reset")
)

// Lookup is the single outstanding price lookup for a clicked item.
type Lookup struct {
	Token uuid.UUID
	Item  room.Item

	ctx    context.Context
	cancel context.CancelCauseFunc
}

// Context ends when the lookup is finished, superseded or reset.
func (l *Lookup) Context() context.Context {
	return l.ctx
}

// State is the per-connection session: the mode toggle and the pending lookup
// slot. All access goes through its methods.
type State struct {
	mu      sync.Mutex
	enabled bool
	pending *Lookup
}

func NewState(enabled bool) *State {
	return &State{enabled: enabled}
}

func (s *State) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enabled
}

// Toggle flips the mode and returns the new value.
func (s *State) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enabled = !s.enabled
	return s.enabled
}

// Begin makes a lookup for item the pending one. Any previous lookup is
// cancelled with ErrSuperseded.
func (s *State) Begin(parent context.Context, item room.Item) *Lookup {
	ctx, cancel := context.WithCancelCause(parent)
	l := &Lookup{
		Token:  uuid.New(),
		Item:   item,
		ctx:    ctx,
		cancel: cancel,
	}

	s.mu.Lock()
	prev := s.pending
	s.pending = l
	s.mu.Unlock()

	if prev != nil {
		prev.cancel(ErrSuperseded)
	}

	return l
}

// Pending returns the outstanding lookup, or nil.
func (s *State) Pending() *Lookup {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pending
}

// Finish ends l and clears the slot if l still holds it. It reports whether l
// was the pending lookup.
func (s *State) Finish(l *Lookup) bool {
	s.mu.Lock()
	current := s.pending == l
	if current {
		s.pending = nil
	}
	s.mu.Unlock()

	l.cancel(context.Canceled)
	return current
}

// Reset drops the pending lookup. The mode is kept.
func (s *State) Reset() {
	s.mu.Lock()
	prev := s.pending
	s.pending = nil
	s.mu.Unlock()

	if prev != nil {
		prev.cancel(ErrSessionReset)
	}
}
