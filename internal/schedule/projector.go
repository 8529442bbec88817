// Package schedule projects course meetings onto the fixed weekly grid.
package schedule

import (
	"strconv"
	"strings"

	"github.com/stemsi/roomgrid-backend/internal/model"
)

// SkipReason explains why a meeting in the target room was not drawn.
type SkipReason string

const (
	SkipNoTimes     SkipReason = "missing_times"
	SkipBadTime     SkipReason = "unreadable_time"
	SkipOutOfWindow SkipReason = "outside_window"
)

// SkippedMeeting records a meeting held in the room that the grid cannot show.
type SkippedMeeting struct {
	Course string     `json:"course"`
	Start  string     `json:"start"`
	End    string     `json:"end"`
	Reason SkipReason `json:"reason"`
}

// Projection is the occupancy of one room over the weekly grid.
type Projection struct {
	Grid     model.ScheduleGrid `json:"-"`
	Occupied int                `json:"occupied"`
	Courses  int                `json:"courses"`
	Skipped  []SkippedMeeting   `json:"skipped,omitempty"`
}

// Available reports that no slot of the week is occupied.
func (p *Projection) Available() bool {
	return p.Occupied == 0
}

// SlotIndex maps an "HH:MM" time to its grid row. The hour is read from
// the leading two characters as an integer, so "9:30" reads as hour 9.
// The result may fall outside 0..GridSlots-1.
func SlotIndex(hhmm string) (int, bool) {
	s := hhmm
	if len(s) > 2 {
		s = s[:2]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	hour, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return hour - model.FirstHour, true
}

// Project computes which cells of the week are occupied in room.
//
// A meeting belongs to the room when its trimmed location equals the trimmed
// room case-insensitively. Meetings without both times are skipped, as are
// meetings starting before 08:00 or ending after 22:59; those are never
// clipped. Each flagged day gets every slot from start through end. When
// courses overlap, the cell label is the last course written, and every
// contributing course is kept in Cell.Courses.
func Project(courses []model.Course, room string) Projection {
	var p Projection
	target := strings.TrimSpace(room)

	for _, c := range courses {
		if !c.MeetsIn(target) {
			continue
		}
		p.Courses++
		label := c.Label()

		for _, m := range c.Meetings {
			if !strings.EqualFold(strings.TrimSpace(m.Location), target) {
				continue
			}
			if !m.HasTimes() {
				p.skip(label, m, SkipNoTimes)
				continue
			}

			first, okStart := SlotIndex(m.Start)
			last, okEnd := SlotIndex(m.End)
			if !okStart || !okEnd {
				p.skip(label, m, SkipBadTime)
				continue
			}
			if first < 0 || last > model.GridSlots-1 {
				p.skip(label, m, SkipOutOfWindow)
				continue
			}

			for _, wd := range model.Weekdays {
				if !m.Days.Has(wd.Code) {
					continue
				}
				for slot := first; slot <= last; slot++ {
					p.mark(wd.Index, slot, label)
				}
			}
		}
	}
	return p
}

func (p *Projection) mark(day, slot int, label string) {
	cell := &p.Grid[day][slot]
	if !cell.Occupied() {
		p.Occupied++
	}
	cell.Label = label
	for _, existing := range cell.Courses {
		if existing == label {
			return
		}
	}
	cell.Courses = append(cell.Courses, label)
}

func (p *Projection) skip(label string, m model.Meeting, reason SkipReason) {
	p.Skipped = append(p.Skipped, SkippedMeeting{
		Course: label,
		Start:  m.Start,
		End:    m.End,
		Reason: reason,
	})
}

// TimeSlots returns the display labels of the grid rows, "8:00" through "22:00".
func TimeSlots() []string {
	out := make([]string, model.GridSlots)
	for i := range out {
		out[i] = model.SlotLabel(i)
	}
	return out
}
