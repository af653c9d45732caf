package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pixil98/go-avgcheck/internal/catalog"
	"github.com/pixil98/go-avgcheck/internal/protocol"
)

var (
	ErrCatalogNotReady = errors.New("catalog not ready")
	ErrUnknownItem     = errors.New("unknown room item")
)

// Item is an interactive object in the current room.
type Item struct {
	ID     int32
	TypeID int32
	Kind   catalog.Kind
	Name   string
}

// CatalogProvider hands out the reference data snapshot currently in use.
type CatalogProvider interface {
	Current() *catalog.Catalog
}

type itemSet struct {
	items []Item
	byId  map[int32]int
}

// Projection is the derived view of the room's floor and wall items. Each kind
// is replaced wholesale by the latest broadcast for it.
type Projection struct {
	catalogs CatalogProvider

	mu   sync.RWMutex
	sets map[catalog.Kind]*itemSet
}

func NewProjection(catalogs CatalogProvider) *Projection {
	return &Projection{
		catalogs: catalogs,
		sets:     make(map[catalog.Kind]*itemSet),
	}
}

// Rebuild replaces the items of kind with the named form of raw. Entries the
// catalog doesn't know are left out. Without a catalog the projection is left
// untouched and ErrCatalogNotReady is returned. It returns the number of items
// kept.
func (p *Projection) Rebuild(ctx context.Context, kind catalog.Kind, raw []protocol.RawItem) (int, error) {
	cat := p.catalogs.Current()
	if cat == nil {
		return 0, fmt.Errorf("rebuilding %s items: %w", kind, ErrCatalogNotReady)
	}

	set := &itemSet{
		items: make([]Item, 0, len(raw)),
		byId:  make(map[int32]int, len(raw)),
	}
	missing := 0
	for _, r := range raw {
		entry, err := cat.Lookup(kind, r.TypeID)
		if err != nil {
			missing++
			continue
		}

		item := Item{ID: r.ID, TypeID: r.TypeID, Kind: kind, Name: entry.Name}
		if i, dup := set.byId[r.ID]; dup {
			set.items[i] = item
			continue
		}
		set.byId[r.ID] = len(set.items)
		set.items = append(set.items, item)
	}

	p.mu.Lock()
	p.sets[kind] = set
	p.mu.Unlock()

	if missing > 0 {
		slog.DebugContext(ctx, "room items missing from catalog", "kind", kind, "missing", missing)
	}

	return len(set.items), nil
}

// Find returns the item of kind with the given id.
func (p *Projection) Find(kind catalog.Kind, id int32) (Item, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	set, ok := p.sets[kind]
	if ok {
		if i, found := set.byId[id]; found {
			return set.items[i], nil
		}
	}
	return Item{}, fmt.Errorf("%s item %d: %w", kind, id, ErrUnknownItem)
}

// Items returns a copy of the items of kind in broadcast order.
func (p *Projection) Items(kind catalog.Kind) []Item {
	p.mu.RLock()
	defer p.mu.RUnlock()

	set, ok := p.sets[kind]
	if !ok {
		return []Item{}
	}

	out := make([]Item, len(set.items))
	copy(out, set.items)
	return out
}

// Reset forgets every item, as when the connection changes.
func (p *Projection) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sets = make(map[catalog.Kind]*itemSet)
}
