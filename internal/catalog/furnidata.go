package catalog

import (
	"encoding/json"
	"fmt"
	"io"
)

type furnidata struct {
	RoomItemTypes furniTypes `json:"roomitemtypes"`
	WallItemTypes furniTypes `json:"wallitemtypes"`
}

type furniTypes struct {
	FurniType []furniType `json:"furnitype"`
}

type furniType struct {
	Id        int32  `json:"id"`
	ClassName string `json:"classname"`
	Name      string `json:"name"`
}

// Parse reads a furnidata JSON document into a snapshot.
func Parse(r io.Reader) (*Catalog, error) {
	var fd furnidata
	if err := json.NewDecoder(r).Decode(&fd); err != nil {
		return nil, fmt.Errorf("decoding furnidata: %w", err)
	}

	return New(fd.RoomItemTypes.entries(), fd.WallItemTypes.entries()), nil
}

func (ft furniTypes) entries() []Entry {
	entries := make([]Entry, 0, len(ft.FurniType))
	for _, f := range ft.FurniType {
		name := f.Name
		// Some entries ship without a display name.
		if name == "" {
			name = f.ClassName
		}
		entries = append(entries, Entry{TypeID: f.Id, ClassName: f.ClassName, Name: name})
	}
	return entries
}
