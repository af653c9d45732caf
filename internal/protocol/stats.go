package protocol

import "fmt"

// ItemStats is the decoded marketplace statistics response.
type ItemStats struct {
	Average int32
	Offers  int32

	// Category and TypeID echo the request when the server sends the full
	// response. Tagged is false when only the average was present.
	Category int32
	TypeID   int32
	Tagged   bool
}

// Matches reports whether the response belongs to a request for
// (category, typeID). Untagged responses match any request.
func (s ItemStats) Matches(category, typeID int32) bool {
	if !s.Tagged {
		return true
	}
	return s.Category == category && s.TypeID == typeID
}

// ParseItemStats reads the average and, when present, the trailing fields that
// identify which item the statistics are for. A truncated trailer is not an
// error, the response is just treated as untagged.
func ParseItemStats(p *Packet) (ItemStats, error) {
	avg, err := p.ReadInt()
	if err != nil {
		return ItemStats{}, fmt.Errorf("reading average: %w", err)
	}
	stats := ItemStats{Average: avg}

	offers, err := p.ReadInt()
	if err != nil {
		return stats, nil
	}
	historyLen, err := p.ReadInt()
	if err != nil || historyLen < 0 {
		return stats, nil
	}
	for range int(historyLen) * 3 {
		if _, err := p.ReadInt(); err != nil {
			return stats, nil
		}
	}
	category, err := p.ReadInt()
	if err != nil {
		return stats, nil
	}
	typeID, err := p.ReadInt()
	if err != nil {
		return stats, nil
	}

	stats.Offers = offers
	stats.Category = category
	stats.TypeID = typeID
	stats.Tagged = true
	return stats, nil
}
