package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/stemsi/roomgrid-backend/internal/model"
	"github.com/stemsi/roomgrid-backend/internal/rooms"
	"github.com/stemsi/roomgrid-backend/internal/schedule"
	"github.com/stemsi/roomgrid-backend/internal/service"
)

const (
	timeWidth = 7
	cellWidth = 12
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	busyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	freeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func renderInventory(buildings []model.Building, res *rooms.Resolution) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Rooms by building") + "\n")
	for _, bld := range buildings {
		list := res.Inventory[bld.Code]
		header := fmt.Sprintf("%-6s %s", bld.Code, bld.DisplayName())
		b.WriteString(header + mutedStyle.Render(fmt.Sprintf(" (%d)", len(list))) + "\n")
		if len(list) > 0 {
			b.WriteString("       " + strings.Join(list, ", ") + "\n")
		}
	}

	st := res.Stats
	b.WriteString(mutedStyle.Render(fmt.Sprintf(
		"%d locations, %d matched (%d by prefix), %d unmatched, %d unique rooms",
		st.Total, st.Matched, st.Prefixed, st.Misses, st.Unique)) + "\n")
	return b.String()
}

func renderGrid(rs *service.RoomSchedule) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(rs.Code+"  "+rs.Building.DisplayName()) + "\n")

	pad := func(s string, w int) string {
		s = truncate(s, w-1)
		return s + strings.Repeat(" ", w-lipgloss.Width(s))
	}

	b.WriteString(pad("", timeWidth))
	for _, wd := range model.Weekdays {
		b.WriteString(pad(wd.Name, cellWidth))
	}
	b.WriteString("\n")

	grid := rs.Projection.Grid
	for slot, label := range schedule.TimeSlots() {
		b.WriteString(mutedStyle.Render(pad(label, timeWidth)))
		for _, wd := range model.Weekdays {
			cell := grid[wd.Index][slot]
			if cell.Occupied() {
				text := cell.Label
				if len(cell.Courses) > 1 {
					text += "*"
				}
				b.WriteString(busyStyle.Render(pad(text, cellWidth)))
			} else {
				b.WriteString(freeStyle.Render(pad("-", cellWidth)))
			}
		}
		b.WriteString("\n")
	}

	for _, s := range rs.Projection.Skipped {
		b.WriteString(warnStyle.Render(fmt.Sprintf("not shown: %s %s-%s (%s)", s.Course, s.Start, s.End, s.Reason)) + "\n")
	}
	b.WriteString(rs.Status + "\n")
	return b.String()
}

func truncate(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > w {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
