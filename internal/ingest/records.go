package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/stemsi/roomgrid-backend/internal/model"
)

// DecodeRecords reads the JSON course API payload and splits it into raw
// records. Both a bare array of records and an object wrapping the array
// under "result" are accepted. Records are not decoded here so that one
// malformed record cannot fail the batch.
func DecodeRecords(r io.Reader) ([]json.RawMessage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	if data[0] == '{' {
		var wrapped struct {
			Result *[]json.RawMessage `json:"result"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		if wrapped.Result == nil {
			return nil, &SchemaError{Missing: []string{"result"}}
		}
		return *wrapped.Result, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

// JSONOptions tunes NormalizeJSONWith.
type JSONOptions struct {
	// OnRecordError is called for every record that could not be decoded,
	// with its 0-based index in the payload.
	OnRecordError func(index int, err error)
}

// NormalizeJSON decodes and normalizes a JSON course payload.
func NormalizeJSON(r io.Reader) (*Result, error) {
	return NormalizeJSONWith(r, JSONOptions{})
}

// NormalizeJSONWith decodes and normalizes a JSON course payload. Only a
// payload that is not a record array fails; bad records are counted in
// Stats.Failed and skipped.
func NormalizeJSONWith(r io.Reader, opts JSONOptions) (*Result, error) {
	raws, err := DecodeRecords(r)
	if err != nil {
		return &Result{}, err
	}

	res := &Result{Courses: []model.Course{}}
	for i, raw := range raws {
		res.Stats.Rows++

		var rec model.RawCourseRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			res.Stats.Failed++
			if opts.OnRecordError != nil {
				opts.OnRecordError(i, err)
			}
			continue
		}
		res.add(rec)
	}
	return res, nil
}

// add normalizes one record. Records without meetings are counted in
// Stats.NoMeetings; records whose meetings all lack a usable location are
// counted in Stats.NoLocation.
func (res *Result) add(rec model.RawCourseRecord) {
	if len(rec.Meetings) == 0 {
		res.Stats.NoMeetings++
		return
	}

	course := model.Course{
		Subject: rec.Subj.String(),
		Number:  rec.Number.String(),
		Title:   rec.Title.String(),
	}
	for _, raw := range rec.Meetings {
		location := raw.Location.String()
		if !usableLocation(location) {
			continue
		}
		m := model.Meeting{
			Location: location,
			Start:    raw.Start.String(),
			End:      raw.End.String(),
		}
		for _, wd := range model.Weekdays {
			m.Days.Set(wd.Code, raw.Day(wd.Code).String() == "Y")
		}
		course.Meetings = append(course.Meetings, m)
	}

	if len(course.Meetings) == 0 {
		res.Stats.NoLocation++
		return
	}
	res.Courses = append(res.Courses, course)
	res.Stats.Parsed++
}

func usableLocation(s string) bool {
	return s != "" && !strings.EqualFold(s, "null")
}
