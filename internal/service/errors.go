package service

import (
	"context"
	"errors"

	"github.com/stemsi/roomgrid-backend/internal/ingest"
	"github.com/stemsi/roomgrid-backend/internal/model"
)

// Domain Errors
var (
	ErrTermNotFound      = errors.New("term not found")
	ErrNoActiveTerm      = errors.New("no active term configured")
	ErrBuildingNotFound  = errors.New("building not found")
	ErrCatalogNotLoaded  = errors.New("building catalog not loaded")
	ErrNoSource          = errors.New("term has no course source")
	ErrSourceUnavailable = errors.New("course source unavailable")
)

// BuildingStore provides the building catalog.
type BuildingStore interface {
	List(ctx context.Context) ([]model.Building, error)
}

// TermStore provides the term catalog.
type TermStore interface {
	List(ctx context.Context) ([]model.Term, error)
	GetByCode(ctx context.Context, code string) (*model.Term, error)
}

// SourceFetcher retrieves raw course exports.
type SourceFetcher interface {
	Fetch(ctx context.Context, target string) ([]byte, error)
}

// CourseCache keeps normalized course sets and merged inventories between requests.
type CourseCache interface {
	GetCourses(ctx context.Context, termCode string) (*ingest.Result, string, error)
	SetCourses(ctx context.Context, termCode string, res *ingest.Result, source string) error
	GetInventory(ctx context.Context, termCodes []string) (model.RoomInventory, error)
	SetInventory(ctx context.Context, termCodes []string, inv model.RoomInventory) error
	InvalidateInventories(ctx context.Context) error
	EnqueueRefresh(ctx context.Context, termCode string) error
}
