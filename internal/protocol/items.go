package protocol

import "fmt"

// RawItem is one entry of an inventory broadcast before any name resolution.
type RawItem struct {
	ID     int32
	TypeID int32
}

// ParseInventory decodes an inventory broadcast: an entry count followed by
// (id, typeId) pairs.
func ParseInventory(p *Packet) ([]RawItem, error) {
	count, err := p.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("reading item count: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("negative item count %d", count)
	}
	// Each entry needs at least 8 bytes, so a bogus count can't force a huge allocation.
	if int(count) > p.Remaining()/8 {
		return nil, fmt.Errorf("item count %d exceeds payload: %w", count, ErrShortPacket)
	}

	items := make([]RawItem, 0, count)
	for i := range int(count) {
		id, err := p.ReadInt()
		if err != nil {
			return nil, fmt.Errorf("item %d id: %w", i, err)
		}
		typeID, err := p.ReadInt()
		if err != nil {
			return nil, fmt.Errorf("item %d type: %w", i, err)
		}
		items = append(items, RawItem{ID: id, TypeID: typeID})
	}

	return items, nil
}

// AppendInventory writes items in the layout ParseInventory reads.
func AppendInventory(p *Packet, items []RawItem) *Packet {
	p.AppendInt(int32(len(items)))
	for _, it := range items {
		p.AppendInt(it.ID).AppendInt(it.TypeID)
	}
	return p
}
