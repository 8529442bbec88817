package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/stemsi/roomgrid-backend/internal/cache"
	"github.com/stemsi/roomgrid-backend/internal/ingest"
	"github.com/stemsi/roomgrid-backend/internal/model"
	"github.com/stemsi/roomgrid-backend/internal/source"
)

// Source labels recorded next to cached course sets.
const (
	SourcePrimary  = "primary"
	SourceFallback = "fallback"
)

// CourseService loads and caches the normalized course set of a term.
type CourseService struct {
	fetcher SourceFetcher
	cache   CourseCache
	log     zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(fetcher SourceFetcher, cache CourseCache, log zerolog.Logger) *CourseService {
	return &CourseService{
		fetcher: fetcher,
		cache:   cache,
		log:     log.With().Str("component", "course_service").Logger(),
	}
}

// Load returns the term's courses from cache, or fetches and normalizes them.
// An empty course set is a valid result.
func (s *CourseService) Load(ctx context.Context, term *model.Term) (*ingest.Result, error) {
	res, src, err := s.cache.GetCourses(ctx, term.Code)
	if err == nil {
		s.log.Debug().Str("term", term.Code).Str("source", src).Msg("Courses served from cache")
		return res, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn().Err(err).Str("term", term.Code).Msg("Course cache read failed")
	}
	return s.Refresh(ctx, term)
}

// Refresh fetches the term's courses, bypassing and rewriting the cache.
func (s *CourseService) Refresh(ctx context.Context, term *model.Term) (*ingest.Result, error) {
	res, src, err := s.fetch(ctx, term)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetCourses(ctx, term.Code, res, src); err != nil {
		s.log.Warn().Err(err).Str("term", term.Code).Msg("Course cache write failed")
	}

	s.log.Info().
		Str("term", term.Code).
		Str("source", src).
		Int("courses", len(res.Courses)).
		Int("rows", res.Stats.Rows).
		Int("failed", res.Stats.Failed).
		Int("no_location", res.Stats.NoLocation).
		Msg("Courses loaded")
	return res, nil
}

// EnqueueRefresh asks the refresh worker to reload the term.
func (s *CourseService) EnqueueRefresh(ctx context.Context, term *model.Term) error {
	if err := s.cache.EnqueueRefresh(ctx, term.Code); err != nil {
		return fmt.Errorf("enqueue refresh: %w", err)
	}
	return nil
}

func (s *CourseService) fetch(ctx context.Context, term *model.Term) (*ingest.Result, string, error) {
	if term.SourceURL == "" && !term.HasFallback() {
		return nil, "", ErrNoSource
	}

	var primaryErr error
	if term.SourceURL != "" {
		res, err := s.fetchOne(ctx, term.SourceKind, term.SourceURL)
		if err == nil {
			return res, SourcePrimary, nil
		}
		primaryErr = err
		if !term.HasFallback() {
			return nil, "", classify(err)
		}
		s.log.Warn().Err(err).Str("term", term.Code).Msg("Primary course source failed, trying fallback")
	}

	kind := term.FallbackKind
	if kind == "" {
		kind = model.SourceJSON
	}
	res, err := s.fetchOne(ctx, kind, term.FallbackURL)
	if err != nil {
		if primaryErr != nil {
			return nil, "", fmt.Errorf("%w (primary: %v)", classify(err), primaryErr)
		}
		return nil, "", classify(err)
	}
	return res, SourceFallback, nil
}

func (s *CourseService) fetchOne(ctx context.Context, kind model.SourceKind, target string) (*ingest.Result, error) {
	data, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	switch kind {
	case model.SourceJSON:
		return ingest.NormalizeJSONWith(bytes.NewReader(data), ingest.JSONOptions{
			OnRecordError: func(index int, err error) {
				s.log.Debug().Err(err).Int("record", index).Str("url", target).Msg("Skipping malformed JSON record")
			},
		})
	case model.SourceCSV, "":
		return ingest.NormalizeCSVWith(string(data), ingest.CSVOptions{
			OnRowError: func(line, fields int) {
				s.log.Debug().Int("line", line).Int("fields", fields).Str("url", target).Msg("Skipping short CSV row")
			},
		})
	default:
		return nil, fmt.Errorf("unknown source kind %q", kind)
	}
}

// classify tags transport failures with ErrSourceUnavailable; parse errors
// pass through unchanged.
func classify(err error) error {
	if errors.Is(err, source.ErrUnavailable) {
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return err
}

// Sample builds demonstration courses: five rooms per building (101, 201,
// up to 501), each meeting Monday, Wednesday and Friday from 09:00 to 10:50.
func (s *CourseService) Sample(buildings []model.Building) []model.Course {
	courses := make([]model.Course, 0, len(buildings)*5)
	for _, b := range buildings {
		for i := 1; i <= 5; i++ {
			room := strconv.Itoa(i) + "01"
			courses = append(courses, model.Course{
				Subject: "TEST",
				Number:  room,
				Title:   "Test Course in " + b.Description,
				Meetings: []model.Meeting{{
					Location: b.Code + " " + room,
					Start:    "09:00",
					End:      "10:50",
					Days:     model.Days{M: true, W: true, F: true},
				}},
			})
		}
	}
	s.log.Info().Int("courses", len(courses)).Msg("Generated sample courses")
	return courses
}
