package protocol

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestParseItemStats(t *testing.T) {
	tests := map[string]struct {
		payload []byte
		exp     ItemStats
		expErr  string
	}{
		"average only": {
			payload: (&Packet{}).AppendInt(17).Bytes(),
			exp:     ItemStats{Average: 17},
		},
		"full response with history": {
			payload: (&Packet{}).
				AppendInt(17).AppendInt(3).
				AppendInt(2).
				AppendInt(-1).AppendInt(15).AppendInt(4).
				AppendInt(-2).AppendInt(19).AppendInt(1).
				AppendInt(1).AppendInt(42).Bytes(),
			exp: ItemStats{Average: 17, Offers: 3, Category: 1, TypeID: 42, Tagged: true},
		},
		"truncated trailer is untagged": {
			payload: (&Packet{}).AppendInt(17).AppendInt(3).AppendInt(0).AppendInt(1).Bytes(),
			exp:     ItemStats{Average: 17},
		},
		"empty": {
			payload: nil,
			expErr:  "reading average",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseItemStats(NewPacket(tt.payload))
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "stats", got, tt.exp)
		})
	}
}

func TestItemStats_Matches(t *testing.T) {
	tests := map[string]struct {
		stats    ItemStats
		category int32
		typeID   int32
		exp      bool
	}{
		"untagged matches anything": {
			stats: ItemStats{Average: 5}, category: 2, typeID: 99, exp: true,
		},
		"tagged same item": {
			stats: ItemStats{Category: 1, TypeID: 42, Tagged: true}, category: 1, typeID: 42, exp: true,
		},
		"tagged other type": {
			stats: ItemStats{Category: 1, TypeID: 42, Tagged: true}, category: 1, typeID: 43, exp: false,
		},
		"tagged other category": {
			stats: ItemStats{Category: 2, TypeID: 42, Tagged: true}, category: 1, typeID: 42, exp: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "matches", tt.stats.Matches(tt.category, tt.typeID), tt.exp)
		})
	}
}
