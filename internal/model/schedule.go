package model

import "fmt"

// Grid dimensions: Monday..Friday by one-hour slots starting 08:00..22:00.
const (
	GridDays  = 5
	GridSlots = 15
	FirstHour = 8
	LastHour  = FirstHour + GridSlots - 1
)

// Cell is one (day, hour) slot of the weekly grid.
// An empty Label means the slot is available.
type Cell struct {
	Label   string   `json:"label,omitempty"`
	Courses []string `json:"courses,omitempty"`
}

// Occupied reports whether any course claims the cell.
func (c Cell) Occupied() bool {
	return c.Label != ""
}

// ScheduleGrid is the fixed weekly occupancy matrix indexed [day][slot].
type ScheduleGrid [GridDays][GridSlots]Cell

// SlotLabel returns the display label of a slot index, e.g. "9:00".
func SlotLabel(slot int) string {
	return fmt.Sprintf("%d:00", slot+FirstHour)
}

// GridDay is one column of a ScheduleGrid in API form.
type GridDay struct {
	Day   string `json:"day"`
	Code  Day    `json:"code"`
	Cells []Cell `json:"cells"`
}

// Columns flattens the grid into display-ordered columns.
func (g *ScheduleGrid) Columns() []GridDay {
	out := make([]GridDay, 0, GridDays)
	for _, wd := range Weekdays {
		cells := make([]Cell, GridSlots)
		copy(cells, g[wd.Index][:])
		out = append(out, GridDay{Day: wd.Name, Code: wd.Code, Cells: cells})
	}
	return out
}
