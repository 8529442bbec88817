package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Day is a single-letter weekday code as used by the course export.
type Day string

const (
	Monday    Day = "M"
	Tuesday   Day = "T"
	Wednesday Day = "W"
	Thursday  Day = "R"
	Friday    Day = "F"
)

// Weekday describes one column of the weekly grid.
type Weekday struct {
	Code  Day
	Index int
	Name  string
}

// Weekdays lists the grid columns in display order.
var Weekdays = []Weekday{
	{Code: Monday, Index: 0, Name: "Monday"},
	{Code: Tuesday, Index: 1, Name: "Tuesday"},
	{Code: Wednesday, Index: 2, Name: "Wednesday"},
	{Code: Thursday, Index: 3, Name: "Thursday"},
	{Code: Friday, Index: 4, Name: "Friday"},
}

// Days holds the meeting-day flags of a Meeting.
type Days struct {
	M bool `json:"M"`
	T bool `json:"T"`
	W bool `json:"W"`
	R bool `json:"R"`
	F bool `json:"F"`
}

// Has reports whether the meeting takes place on day d.
func (d Days) Has(day Day) bool {
	switch day {
	case Monday:
		return d.M
	case Tuesday:
		return d.T
	case Wednesday:
		return d.W
	case Thursday:
		return d.R
	case Friday:
		return d.F
	}
	return false
}

// Set updates the flag for day. Unknown codes are ignored.
func (d *Days) Set(day Day, v bool) {
	switch day {
	case Monday:
		d.M = v
	case Tuesday:
		d.T = v
	case Wednesday:
		d.W = v
	case Thursday:
		d.R = v
	case Friday:
		d.F = v
	}
}

// Any reports whether at least one day is flagged.
func (d Days) Any() bool {
	return d.M || d.T || d.W || d.R || d.F
}

// Meeting is one recurring weekly meeting of a course.
// Start and End are "HH:MM" or empty when the export has no time.
type Meeting struct {
	Location string `json:"location"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Days     Days   `json:"days"`
}

// HasTimes reports whether both start and end are present.
func (m Meeting) HasTimes() bool {
	return m.Start != "" && m.End != ""
}

// Course is the canonical course model shared by every input format.
type Course struct {
	Subject  string    `json:"subject"`
	Number   string    `json:"number"`
	Title    string    `json:"title"`
	Meetings []Meeting `json:"meetings"`
}

// Label returns the grid display label, e.g. "CS 101".
func (c Course) Label() string {
	return c.Subject + " " + c.Number
}

// MeetsIn reports whether any meeting of the course is held in room.
// Comparison is case-insensitive on trimmed values.
func (c Course) MeetsIn(room string) bool {
	target := strings.TrimSpace(room)
	for _, m := range c.Meetings {
		if strings.EqualFold(strings.TrimSpace(m.Location), target) {
			return true
		}
	}
	return false
}

// Text is a nullable scalar from the JSON course API. Upstream emits the same
// field as a string, a number or null depending on the record, so strings,
// numbers and booleans all decode to their literal text and null stays empty.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, string(data) == "null":
		*t = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case data[0] == '{' || data[0] == '[':
		return fmt.Errorf("expected scalar, got %s", kindOf(data[0]))
	default:
		// number, true or false
		*t = Text(data)
		return nil
	}
}

// String returns the trimmed text.
func (t Text) String() string {
	return strings.TrimSpace(string(t))
}

func kindOf(b byte) string {
	if b == '{' {
		return "object"
	}
	return "array"
}

// RawMeeting is a meeting as returned by the JSON course API.
// Every field is nullable in the upstream data.
type RawMeeting struct {
	Location Text `json:"Location"`
	Start    Text `json:"Start"`
	End      Text `json:"End"`
	M        Text `json:"M"`
	T        Text `json:"T"`
	W        Text `json:"W"`
	R        Text `json:"R"`
	F        Text `json:"F"`
}

// Day returns the raw flag value for day.
func (m RawMeeting) Day(day Day) Text {
	switch day {
	case Monday:
		return m.M
	case Tuesday:
		return m.T
	case Wednesday:
		return m.W
	case Thursday:
		return m.R
	case Friday:
		return m.F
	}
	return ""
}

// RawCourseRecord is a course record as returned by the JSON course API.
type RawCourseRecord struct {
	Subj     Text         `json:"Subj"`
	Number   Text         `json:"Number"`
	Title    Text         `json:"Title"`
	Meetings []RawMeeting `json:"Meetings"`
}
