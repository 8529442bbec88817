package ingest

import "github.com/stemsi/roomgrid-backend/internal/model"

// Stats are the diagnostic counters of one normalization run.
// Per-row problems are counted here instead of being returned as errors.
type Stats struct {
	Rows       int `json:"rows"`
	Parsed     int `json:"parsed"`
	Failed     int `json:"failed"`
	NoMeetings int `json:"no_meetings"`
	NoLocation int `json:"no_location"`
}

// Result is the canonical course set produced by a normalizer.
type Result struct {
	Courses []model.Course `json:"courses"`
	Stats   Stats          `json:"stats"`
}

// Empty reports whether normalization produced no courses.
func (r *Result) Empty() bool {
	return r == nil || len(r.Courses) == 0
}

// Locations returns the distinct raw meeting locations in first-seen order.
func (r *Result) Locations() []string {
	if r == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, c := range r.Courses {
		for _, m := range c.Meetings {
			if m.Location == "" {
				continue
			}
			if _, ok := seen[m.Location]; ok {
				continue
			}
			seen[m.Location] = struct{}{}
			out = append(out, m.Location)
		}
	}
	return out
}
