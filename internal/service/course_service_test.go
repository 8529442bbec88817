package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stemsi/roomgrid-backend/internal/ingest"
	"github.com/stemsi/roomgrid-backend/internal/model"
)

func TestCourseLoadCachesResult(t *testing.T) {
	f, err := newFixture(standardTerms(), standardDocs())
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	ctx := context.Background()
	term := &standardTerms()[0]

	res, err := f.courses.Load(ctx, term)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Courses) != 4 {
		t.Fatalf("courses = %d, want 4", len(res.Courses))
	}

	if _, err := f.courses.Load(ctx, term); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if n := f.fetcher.Calls(term.SourceURL); n != 1 {
		t.Errorf("fetch calls = %d, want 1", n)
	}

	if _, err := f.courses.Refresh(ctx, term); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if n := f.fetcher.Calls(term.SourceURL); n != 2 {
		t.Errorf("fetch calls after refresh = %d, want 2", n)
	}
}

func TestCourseLoadFallback(t *testing.T) {
	tests := []struct {
		name       string
		primary    string
		hasPrimary bool
		wantSource string
	}{
		{"schema error", "Foo,Bar\n1,2", true, SourceFallback},
		{"unavailable", "", false, SourceFallback},
		{"primary ok", fallCSV, true, SourcePrimary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := map[string]string{"https://x/sp.json": springJSON}
			if tt.hasPrimary {
				docs["https://x/p.csv"] = tt.primary
			}
			term := model.Term{
				Code: "T", SourceKind: model.SourceCSV, SourceURL: "https://x/p.csv",
				FallbackKind: model.SourceJSON, FallbackURL: "https://x/sp.json",
			}
			f, err := newFixture(fakeTerms{term}, docs)
			if err != nil {
				t.Fatalf("fixture: %v", err)
			}

			if _, err := f.courses.Load(context.Background(), &term); err != nil {
				t.Fatalf("Load: %v", err)
			}
			_, src, err := f.store.GetCourses(context.Background(), "T")
			if err != nil {
				t.Fatalf("cache: %v", err)
			}
			if src != tt.wantSource {
				t.Errorf("source = %q, want %q", src, tt.wantSource)
			}
		})
	}
}

func TestCourseLoadErrors(t *testing.T) {
	ctx := context.Background()

	schema := model.Term{Code: "S", SourceKind: model.SourceCSV, SourceURL: "https://x/bad.csv"}
	f, err := newFixture(fakeTerms{schema}, map[string]string{"https://x/bad.csv": "Foo\n1"})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	if _, err := f.courses.Load(ctx, &schema); !ingest.IsSchemaError(err) {
		t.Errorf("err = %v, want schema error", err)
	}

	missing := model.Term{Code: "M", SourceKind: model.SourceCSV, SourceURL: "https://x/none.csv"}
	if _, err := f.courses.Load(ctx, &missing); !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("err = %v, want ErrSourceUnavailable", err)
	}

	bare := model.Term{Code: "B"}
	if _, err := f.courses.Load(ctx, &bare); !errors.Is(err, ErrNoSource) {
		t.Errorf("err = %v, want ErrNoSource", err)
	}
}

func TestCourseLoadEmptyResultIsNotAnError(t *testing.T) {
	term := model.Term{Code: "E", SourceKind: model.SourceCSV, SourceURL: "https://x/e.csv"}
	f, err := newFixture(fakeTerms{term}, map[string]string{
		"https://x/e.csv": "Subj,Number,Meetings/0/Location\n",
	})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	res, err := f.courses.Load(context.Background(), &term)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !res.Empty() {
		t.Errorf("courses = %d, want none", len(res.Courses))
	}
}

func TestCourseEnqueueRefresh(t *testing.T) {
	f, err := newFixture(standardTerms(), standardDocs())
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	term := standardTerms()[0]
	if err := f.courses.EnqueueRefresh(context.Background(), &term); err != nil {
		t.Fatalf("EnqueueRefresh: %v", err)
	}
	if got := f.store.Pending(); len(got) != 1 || got[0] != "2025FA" {
		t.Errorf("pending = %v", got)
	}
}

func TestCourseSample(t *testing.T) {
	f, err := newFixture(standardTerms(), standardDocs())
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	courses := f.courses.Sample(f.catalog.Buildings())
	if len(courses) != 15 {
		t.Fatalf("sample courses = %d, want 15", len(courses))
	}
	first := courses[0]
	if first.Label() != "TEST 101" || first.Meetings[0].Location != "DANA 101" {
		t.Errorf("first sample = %+v", first)
	}
	if !first.Meetings[0].Days.Has(model.Friday) || first.Meetings[0].Days.Has(model.Tuesday) {
		t.Errorf("sample days = %+v, want MWF", first.Meetings[0].Days)
	}
}
