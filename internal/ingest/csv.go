package ingest

import (
	"strconv"
	"strings"

	"github.com/stemsi/roomgrid-backend/internal/model"
)

// sentinelRow is an optional first line written by the CSV export.
const sentinelRow = "result"

// Column names of the course CSV export.
const (
	ColSubject = "Subj"
	ColNumber  = "Number"
	ColTitle   = "Title"
)

// MeetingSlots is the number of meeting column groups in the export.
const MeetingSlots = 2

// meetingColumn returns the header name of a per-meeting column,
// e.g. meetingColumn(0, "Location") == "Meetings/0/Location".
func meetingColumn(slot int, field string) string {
	return "Meetings/" + strconv.Itoa(slot) + "/" + field
}

type meetingColumns struct {
	location int
	start    int
	end      int
	days     map[model.Day]int
}

type columnIndex struct {
	subject  int
	number   int
	title    int
	meetings [MeetingSlots]meetingColumns
}

func resolveColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}
	lookup := func(name string) int {
		if i, ok := pos[name]; ok {
			return i
		}
		return -1
	}

	idx := columnIndex{
		subject: lookup(ColSubject),
		number:  lookup(ColNumber),
		title:   lookup(ColTitle),
	}
	for slot := 0; slot < MeetingSlots; slot++ {
		mc := meetingColumns{
			location: lookup(meetingColumn(slot, "Location")),
			start:    lookup(meetingColumn(slot, "Start")),
			end:      lookup(meetingColumn(slot, "End")),
			days:     make(map[model.Day]int, len(model.Weekdays)),
		}
		for _, wd := range model.Weekdays {
			mc.days[wd.Code] = lookup(meetingColumn(slot, string(wd.Code)))
		}
		idx.meetings[slot] = mc
	}

	var missing []string
	if idx.meetings[0].location < 0 {
		missing = append(missing, meetingColumn(0, "Location"))
	}
	if idx.subject < 0 {
		missing = append(missing, ColSubject)
	}
	if idx.number < 0 {
		missing = append(missing, ColNumber)
	}
	if len(missing) > 0 {
		return idx, &SchemaError{Missing: missing}
	}
	return idx, nil
}

// minFields is the number of fields a row needs to reach every required column.
func (idx columnIndex) minFields() int {
	return max(idx.meetings[0].location, idx.subject, idx.number) + 1
}

// field returns values[i], or "" when the column is absent or the row is short.
func field(values []string, i int) string {
	if i < 0 || i >= len(values) {
		return ""
	}
	return values[i]
}

// CSVOptions tunes NormalizeCSVWith.
type CSVOptions struct {
	Delimiter rune
	// OnRowError is called for every skipped row with its 0-based line number.
	OnRowError func(line int, fields int)
}

// NormalizeCSV converts a course CSV export into canonical courses.
func NormalizeCSV(text string) (*Result, error) {
	return NormalizeCSVWith(text, CSVOptions{})
}

// NormalizeCSVWith converts delimited course text into canonical courses.
//
// Blank lines are ignored. A leading "result" line is skipped and the next
// line is the header. Missing required columns yield a *SchemaError and no
// courses. Rows too short to reach the required columns are counted in
// Stats.Failed and skipped. Courses with no located meeting are dropped.
func NormalizeCSVWith(text string, opts CSVOptions) (*Result, error) {
	delim := opts.Delimiter
	if delim == 0 {
		delim = DefaultDelimiter
	}

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}

	start := 0
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == sentinelRow {
		start = 1
	}
	if start >= len(lines) {
		return &Result{}, ErrEmptyInput
	}

	idx, err := resolveColumns(ParseLineDelim(lines[start], delim))
	if err != nil {
		return &Result{}, err
	}

	res := &Result{Courses: []model.Course{}}
	need := idx.minFields()

	for i := start + 1; i < len(lines); i++ {
		res.Stats.Rows++

		values := ParseLineDelim(strings.TrimSpace(lines[i]), delim)
		if len(values) < need {
			res.Stats.Failed++
			if opts.OnRowError != nil {
				opts.OnRowError(i, len(values))
			}
			continue
		}

		course := model.Course{
			Subject: field(values, idx.subject),
			Number:  field(values, idx.number),
			Title:   field(values, idx.title),
		}
		for slot := 0; slot < MeetingSlots; slot++ {
			if m, ok := csvMeeting(values, idx.meetings[slot]); ok {
				course.Meetings = append(course.Meetings, m)
			}
		}

		if len(course.Meetings) == 0 {
			res.Stats.NoLocation++
			continue
		}
		res.Courses = append(res.Courses, course)
		res.Stats.Parsed++
	}

	return res, nil
}

func csvMeeting(values []string, mc meetingColumns) (model.Meeting, bool) {
	location := strings.TrimSpace(strings.ReplaceAll(field(values, mc.location), `"`, ""))
	if location == "" {
		return model.Meeting{}, false
	}

	m := model.Meeting{
		Location: location,
		Start:    field(values, mc.start),
		End:      field(values, mc.end),
	}
	for _, wd := range model.Weekdays {
		m.Days.Set(wd.Code, field(values, mc.days[wd.Code]) == "Y")
	}
	return m, true
}
