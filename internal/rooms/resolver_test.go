package rooms

import (
	"reflect"
	"testing"

	"github.com/stemsi/roomgrid-backend/internal/model"
)

var testBuildings = []model.Building{
	{Code: "DANA", Description: "Dana Hall"},
	{Code: "MAIN", Description: "Main Building"},
	{Code: "SCI", Description: "Science Center"},
	{Code: "ART", Description: "Art Studio"},
}

func courseAt(locations ...string) model.Course {
	c := model.Course{Subject: "CS", Number: "101"}
	for _, l := range locations {
		c.Meetings = append(c.Meetings, model.Meeting{Location: l})
	}
	return c
}

func TestResolve_EmptyCoursesCoversEveryBuilding(t *testing.T) {
	res := Resolve(nil, testBuildings)

	if len(res.Inventory) != len(testBuildings) {
		t.Fatalf("expected %d buildings, got %d", len(testBuildings), len(res.Inventory))
	}
	for _, b := range testBuildings {
		rooms, ok := res.Inventory[b.Code]
		if !ok {
			t.Errorf("building %s missing from inventory", b.Code)
			continue
		}
		if rooms == nil || len(rooms) != 0 {
			t.Errorf("building %s should map to an empty, non-nil list, got %#v", b.Code, rooms)
		}
	}
}

func TestResolve_PrimaryAndPrefixMatches(t *testing.T) {
	courses := []model.Course{
		courseAt("DANA 113", "MAIN113"),
		courseAt("dana   9", "  SCI 2 North  "),
		courseAt("DANA 113", "XYZ 1", "null", ""),
		courseAt("ART"),
	}

	res := Resolve(courses, testBuildings)

	want := model.RoomInventory{
		"DANA": {"9", "113"},
		"MAIN": {"113"},
		"SCI":  {"2 North"},
		"ART":  {},
	}
	if !reflect.DeepEqual(res.Inventory, want) {
		t.Errorf("inventory = %#v, want %#v", res.Inventory, want)
	}

	wantStats := Stats{Total: 9, Matched: 5, Prefixed: 1, Misses: 2, Unique: 4}
	if res.Stats != wantStats {
		t.Errorf("stats = %+v, want %+v", res.Stats, wantStats)
	}
}

func TestLocate(t *testing.T) {
	r := NewResolver(testBuildings)

	tests := []struct {
		location string
		code     string
		room     string
		prefixed bool
		ok       bool
	}{
		{"DANA 113", "DANA", "113", false, true},
		{"MAIN113", "MAIN", "113", true, true},
		{"main 2a", "MAIN", "2a", false, true},
		{"SCI 2  North", "SCI", "2 North", false, true},
		{"SCIENCE 4", "SCI", "ENCE 4", true, true},
		{"GYM 1", "", "", false, false},
		{"DANA", "", "", false, false},
		{"null", "", "", false, false},
		{"   ", "", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			code, room, prefixed, ok := r.Locate(tt.location)
			if code != tt.code || room != tt.room || prefixed != tt.prefixed || ok != tt.ok {
				t.Errorf("Locate(%q) = (%q, %q, %v, %v), want (%q, %q, %v, %v)",
					tt.location, code, room, prefixed, ok, tt.code, tt.room, tt.prefixed, tt.ok)
			}
		})
	}
}

func TestLocate_ShortestPrefixWins(t *testing.T) {
	r := NewResolver([]model.Building{
		{Code: "MAIN", Description: "Main"},
		{Code: "MA", Description: "Math Annex"},
	})

	code, room, _, ok := r.Locate("MAIN101")
	if !ok || code != "MA" || room != "IN101" {
		t.Errorf("Locate(MAIN101) = %q %q %v, want MA IN101", code, room, ok)
	}

	code, room, _, ok = r.Locate("MAIN 101")
	if !ok || code != "MAIN" || room != "101" {
		t.Errorf("exact first token must beat prefix fallback, got %q %q", code, room)
	}
}

func TestResolve_RoomsSortedNumerically(t *testing.T) {
	res := Resolve([]model.Course{courseAt("DANA 113", "DANA 9", "DANA 101A")}, testBuildings)
	want := []string{"9", "101A", "113"}
	if !reflect.DeepEqual(res.Inventory["DANA"], want) {
		t.Errorf("DANA rooms = %q, want %q", res.Inventory["DANA"], want)
	}
}
