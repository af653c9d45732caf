package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the catalog has no entry for a (kind, type) pair.
var ErrNotFound = errors.New("catalog entry not found")

// Kind separates floor-standing items from wall-mounted ones. The numeric
// value is the marketplace category for the kind.
type Kind int32

const (
	KindFloor Kind = 1
	KindWall  Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindFloor:
		return "floor"
	case KindWall:
		return "wall"
	default:
		return fmt.Sprintf("kind(%d)", int32(k))
	}
}

// Entry is the reference data for one item type.
type Entry struct {
	TypeID    int32
	ClassName string
	Name      string
}

type entryKey struct {
	kind   Kind
	typeID int32
}

// Catalog is an immutable snapshot of the reference data for one hotel.
type Catalog struct {
	entries map[entryKey]Entry
	counts  map[Kind]int
}

// New builds a snapshot from the floor and wall entries. Later duplicates of a
// type id replace earlier ones.
func New(floor, wall []Entry) *Catalog {
	c := &Catalog{
		entries: make(map[entryKey]Entry, len(floor)+len(wall)),
		counts:  make(map[Kind]int, 2),
	}
	c.add(KindFloor, floor)
	c.add(KindWall, wall)
	return c
}

func (c *Catalog) add(kind Kind, entries []Entry) {
	for _, e := range entries {
		key := entryKey{kind: kind, typeID: e.TypeID}
		if _, exists := c.entries[key]; !exists {
			c.counts[kind]++
		}
		c.entries[key] = e
	}
}

// Lookup returns the entry for typeID of the given kind.
func (c *Catalog) Lookup(kind Kind, typeID int32) (Entry, error) {
	e, ok := c.entries[entryKey{kind: kind, typeID: typeID}]
	if !ok {
		return Entry{}, fmt.Errorf("%s type %d: %w", kind, typeID, ErrNotFound)
	}
	return e, nil
}

// Len returns the number of entries of the given kind.
func (c *Catalog) Len(kind Kind) int {
	return c.counts[kind]
}
