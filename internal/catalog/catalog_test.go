package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

const testFurnidata = `{
	"roomitemtypes": {"furnitype": [
		{"id": 42, "classname": "chair_basic", "name": "Chair"},
		{"id": 43, "classname": "table_basic", "name": "Table"},
		{"id": 44, "classname": "nameless_thing", "name": ""}
	]},
	"wallitemtypes": {"furnitype": [
		{"id": 42, "classname": "poster", "name": "Poster"}
	]}
}`

func TestParse(t *testing.T) {
	c, err := Parse(strings.NewReader(testFurnidata))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "floor count", c.Len(KindFloor), 3)
	testutil.AssertEqual(t, "wall count", c.Len(KindWall), 1)

	tests := map[string]struct {
		kind    Kind
		typeID  int32
		expName string
		expErr  bool
	}{
		"floor item": {
			kind: KindFloor, typeID: 42, expName: "Chair",
		},
		"wall item with same type id": {
			kind: KindWall, typeID: 42, expName: "Poster",
		},
		"missing name falls back to classname": {
			kind: KindFloor, typeID: 44, expName: "nameless_thing",
		},
		"unknown floor type": {
			kind: KindFloor, typeID: 999, expErr: true,
		},
		"floor type missing from wall": {
			kind: KindWall, typeID: 43, expErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e, err := c.Lookup(tt.kind, tt.typeID)
			if tt.expErr {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("expected ErrNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "name", e.Name, tt.expName)
			testutil.AssertEqual(t, "type id", e.TypeID, tt.typeID)
		})
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse(strings.NewReader(`{invalid json`))
	testutil.AssertErrorContains(t, err, "decoding furnidata")
}

func TestNew_DuplicateTypeIds(t *testing.T) {
	c := New([]Entry{
		{TypeID: 1, Name: "Old"},
		{TypeID: 1, Name: "New"},
	}, nil)

	testutil.AssertEqual(t, "floor count", c.Len(KindFloor), 1)

	e, err := c.Lookup(KindFloor, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "name", e.Name, "New")
}

func TestKind_String(t *testing.T) {
	testutil.AssertEqual(t, "floor", KindFloor.String(), "floor")
	testutil.AssertEqual(t, "wall", KindWall.String(), "wall")
	testutil.AssertEqual(t, "unknown", Kind(7).String(), "kind(7)")
}
