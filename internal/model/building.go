package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Building is a campus building known to the room catalog.
// Code is unique across the catalog (e.g. "DANA"). Buildings are never
// modified after loading.
type Building struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// DisplayName is the description for presentation. Descriptions exported in
// all capitals are title-cased; others are returned trimmed.
func (b Building) DisplayName() string {
	desc := strings.TrimSpace(b.Description)
	if desc != strings.ToUpper(desc) || desc == strings.ToLower(desc) {
		return desc
	}
	return cases.Title(language.English).String(strings.ToLower(desc))
}

// BuildingRecord is the shape of an entry in the buildings.json source file.
type BuildingRecord struct {
	Code        string `json:"Code"`
	Description string `json:"Description"`
}

// ToBuilding converts a source record into a Building.
func (r BuildingRecord) ToBuilding() Building {
	return Building{Code: r.Code, Description: r.Description}
}

// RoomInventory maps a building code to its sorted, distinct room identifiers.
type RoomInventory map[string][]string

// Clone returns a deep copy of the inventory.
func (inv RoomInventory) Clone() RoomInventory {
	out := make(RoomInventory, len(inv))
	for code, rooms := range inv {
		out[code] = append([]string{}, rooms...)
	}
	return out
}

// RoomCount returns the total number of rooms across all buildings.
func (inv RoomInventory) RoomCount() int {
	n := 0
	for _, rooms := range inv {
		n += len(rooms)
	}
	return n
}
