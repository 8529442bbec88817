package rooms

import (
	"strings"
	"unicode/utf8"

	"github.com/stemsi/roomgrid-backend/internal/model"
)

// Stats are the diagnostic counters of one resolution run.
// Misses are locations that matched no known building; they are never errors.
type Stats struct {
	Total    int `json:"total"`
	Matched  int `json:"matched"`
	Prefixed int `json:"prefixed"`
	Misses   int `json:"misses"`
	Unique   int `json:"unique"`
}

// Resolution is the per-building room inventory derived from courses.
type Resolution struct {
	Inventory model.RoomInventory `json:"inventory"`
	Stats     Stats               `json:"stats"`
}

// Resolver matches free-text meeting locations against building codes.
type Resolver struct {
	buildings []model.Building
	byCode    map[string]string // upper-cased code -> canonical code
}

// NewResolver builds a resolver over buildings. Codes are matched
// case-insensitively; when two buildings share a code the first wins.
func NewResolver(buildings []model.Building) *Resolver {
	r := &Resolver{
		buildings: buildings,
		byCode:    make(map[string]string, len(buildings)),
	}
	for _, b := range buildings {
		key := strings.ToUpper(b.Code)
		if _, dup := r.byCode[key]; !dup {
			r.byCode[key] = b.Code
		}
	}
	return r
}

// NormalizeLocation collapses whitespace runs to single spaces and trims.
func NormalizeLocation(location string) string {
	return strings.Join(strings.Fields(location), " ")
}

// Locate splits a location into building code and room.
// prefixed reports that the building was found by the prefix fallback.
func (r *Resolver) Locate(location string) (code, room string, prefixed, ok bool) {
	loc := NormalizeLocation(location)
	if loc == "" || strings.EqualFold(loc, "null") {
		return "", "", false, false
	}

	if head, rest, found := strings.Cut(loc, " "); found {
		if canon, known := r.byCode[strings.ToUpper(head)]; known {
			return canon, rest, false, true
		}
	}

	// Shortest matching prefix wins. Codes that are prefixes of each other
	// can misclassify a location; the shorter code is always preferred.
	for n := 1; n <= len(loc); n++ {
		if n < len(loc) && !utf8.RuneStart(loc[n]) {
			continue
		}
		canon, known := r.byCode[strings.ToUpper(loc[:n])]
		if !known {
			continue
		}
		room = strings.TrimSpace(loc[n:])
		if room == "" {
			return "", "", false, false
		}
		return canon, room, true, true
	}
	return "", "", false, false
}

// Resolve extracts every distinct (building, room) pair referenced by the
// meetings of courses. Every building is present in the inventory, with an
// empty slice when no room was observed.
func (r *Resolver) Resolve(courses []model.Course) Resolution {
	inv := make(model.RoomInventory, len(r.buildings))
	seen := make(map[string]map[string]struct{}, len(r.buildings))
	for _, b := range r.buildings {
		if _, ok := inv[b.Code]; !ok {
			inv[b.Code] = []string{}
			seen[b.Code] = make(map[string]struct{})
		}
	}

	var st Stats
	for _, c := range courses {
		for _, m := range c.Meetings {
			st.Total++

			loc := NormalizeLocation(m.Location)
			if loc == "" || strings.EqualFold(loc, "null") {
				continue
			}
			code, room, prefixed, ok := r.Locate(loc)
			if !ok {
				st.Misses++
				continue
			}
			st.Matched++
			if prefixed {
				st.Prefixed++
			}

			if _, dup := seen[code][room]; dup {
				continue
			}
			seen[code][room] = struct{}{}
			inv[code] = append(inv[code], room)
			st.Unique++
		}
	}

	for code := range inv {
		SortRooms(inv[code])
	}
	return Resolution{Inventory: inv, Stats: st}
}

// Resolve is a convenience wrapper around NewResolver(buildings).Resolve.
func Resolve(courses []model.Course, buildings []model.Building) Resolution {
	return NewResolver(buildings).Resolve(courses)
}
