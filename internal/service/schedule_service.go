package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/roomgrid-backend/internal/model"
	"github.com/stemsi/roomgrid-backend/internal/schedule"
)

// RoomSchedule is the weekly occupancy of one room in one term.
type RoomSchedule struct {
	Term       string
	Building   model.Building
	Room       string
	Code       string
	Projection schedule.Projection
	Status     string
}

// ScheduleService answers room availability questions.
type ScheduleService struct {
	catalog *CatalogService
	courses *CourseService
	log     zerolog.Logger
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(catalog *CatalogService, courses *CourseService, log zerolog.Logger) *ScheduleService {
	return &ScheduleService{
		catalog: catalog,
		courses: courses,
		log:     log.With().Str("component", "schedule_service").Logger(),
	}
}

// RoomSchedule projects the term's courses onto the grid of building+room.
func (s *ScheduleService) RoomSchedule(ctx context.Context, req model.RoomScheduleRequest) (*RoomSchedule, error) {
	building, err := s.catalog.Building(req.Building)
	if err != nil {
		return nil, err
	}
	term, err := s.catalog.Term(ctx, req.Term)
	if err != nil {
		return nil, err
	}

	res, err := s.courses.Load(ctx, term)
	if err != nil {
		return nil, err
	}

	room := strings.TrimSpace(req.Room)
	code := building.Code + " " + room
	projection := schedule.Project(res.Courses, code)

	if len(projection.Skipped) > 0 {
		s.log.Debug().Str("room", code).Int("skipped", len(projection.Skipped)).Msg("Meetings outside the grid")
	}

	return &RoomSchedule{
		Term:       term.Code,
		Building:   building,
		Room:       room,
		Code:       code,
		Projection: projection,
		Status:     StatusMessage(code, projection),
	}, nil
}

// StatusMessage summarizes a projection for display. A room whose courses
// never reach the grid is reported as available.
func StatusMessage(code string, p schedule.Projection) string {
	if p.Available() {
		return fmt.Sprintf("No classes found in %s - it's available all day!", code)
	}
	return fmt.Sprintf("Found %d courses using this room (%d time slots occupied)", p.Courses, p.Occupied)
}
