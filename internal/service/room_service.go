package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"github.com/stemsi/roomgrid-backend/internal/cache"
	"github.com/stemsi/roomgrid-backend/internal/model"
	"github.com/stemsi/roomgrid-backend/internal/rooms"
	"golang.org/x/sync/errgroup"
)

// legacyFetchLimit bounds concurrent legacy term downloads.
const legacyFetchLimit = 4

// RoomService derives room inventories from course data.
type RoomService struct {
	catalog *CatalogService
	courses *CourseService
	cache   CourseCache
	memo    *lru.Cache[string, model.RoomInventory]
	log     zerolog.Logger
}

// NewRoomService creates a new RoomService. memoSize bounds the number of
// legacy inventories kept in process.
func NewRoomService(catalog *CatalogService, courses *CourseService, cache CourseCache, memoSize int, log zerolog.Logger) (*RoomService, error) {
	if memoSize <= 0 {
		memoSize = 16
	}
	memo, err := lru.New[string, model.RoomInventory](memoSize)
	if err != nil {
		return nil, fmt.Errorf("create legacy memo: %w", err)
	}
	return &RoomService{
		catalog: catalog,
		courses: courses,
		cache:   cache,
		memo:    memo,
		log:     log.With().Str("component", "room_service").Logger(),
	}, nil
}

// Inventory resolves the rooms used by the term's courses.
func (s *RoomService) Inventory(ctx context.Context, termCode string) (*rooms.Resolution, error) {
	term, err := s.catalog.Term(ctx, termCode)
	if err != nil {
		return nil, err
	}
	return s.inventoryFor(ctx, term)
}

func (s *RoomService) inventoryFor(ctx context.Context, term *model.Term) (*rooms.Resolution, error) {
	res, err := s.courses.Load(ctx, term)
	if err != nil {
		return nil, err
	}

	resolution := rooms.Resolve(res.Courses, s.catalog.Buildings())
	s.log.Debug().
		Str("term", term.Code).
		Int("locations", resolution.Stats.Total).
		Int("matched", resolution.Stats.Matched).
		Int("prefixed", resolution.Stats.Prefixed).
		Int("misses", resolution.Stats.Misses).
		Int("unique", resolution.Stats.Unique).
		Msg("Rooms resolved")
	return &resolution, nil
}

// LegacyInventory returns the union of the rooms of every legacy term.
// Terms that fail to load are logged and left out.
func (s *RoomService) LegacyInventory(ctx context.Context) (model.RoomInventory, error) {
	terms, err := s.catalog.LegacyTerms(ctx)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return model.RoomInventory{}, nil
	}

	codes := make([]string, len(terms))
	for i, t := range terms {
		codes[i] = t.Code
	}
	key := strings.Join(codes, "+")

	if inv, ok := s.memo.Get(key); ok {
		return inv.Clone(), nil
	}

	inv, err := s.cache.GetInventory(ctx, codes)
	if err == nil {
		s.memo.Add(key, inv)
		return inv.Clone(), nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn().Err(err).Msg("Legacy inventory cache read failed")
	}

	parts := make([]model.RoomInventory, len(terms))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(legacyFetchLimit)
	for i := range terms {
		term := terms[i]
		g.Go(func() error {
			resolution, err := s.inventoryFor(gctx, &term)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.log.Warn().Err(err).Str("term", term.Code).Msg("Legacy term skipped")
				return nil
			}
			parts[i] = resolution.Inventory
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := rooms.MergeAll(parts...)
	if err := s.cache.SetInventory(ctx, codes, merged); err != nil {
		s.log.Warn().Err(err).Msg("Legacy inventory cache write failed")
	}
	s.memo.Add(key, merged)

	s.log.Info().Strs("terms", codes).Int("rooms", merged.RoomCount()).Msg("Legacy inventory built")
	return merged.Clone(), nil
}

// MergedInventory is the term's inventory extended with every legacy room.
// When legacy data cannot be loaded the term's own inventory is returned.
func (s *RoomService) MergedInventory(ctx context.Context, termCode string) (*rooms.Resolution, error) {
	current, err := s.Inventory(ctx, termCode)
	if err != nil {
		return nil, err
	}

	legacy, err := s.LegacyInventory(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Legacy inventory unavailable, using current term only")
		return current, nil
	}

	merged := rooms.Merge(current.Inventory.Clone(), legacy)
	stats := current.Stats
	stats.Unique = merged.RoomCount()
	return &rooms.Resolution{Inventory: merged, Stats: stats}, nil
}

// Rooms lists the sorted rooms of one building in the term.
func (s *RoomService) Rooms(ctx context.Context, termCode, buildingCode string, merged bool) (model.Building, []string, error) {
	building, err := s.catalog.Building(buildingCode)
	if err != nil {
		return model.Building{}, nil, err
	}

	var resolution *rooms.Resolution
	if merged {
		resolution, err = s.MergedInventory(ctx, termCode)
	} else {
		resolution, err = s.Inventory(ctx, termCode)
	}
	if err != nil {
		return model.Building{}, nil, err
	}

	list := resolution.Inventory[building.Code]
	if list == nil {
		list = []string{}
	}
	return building, list, nil
}

// InvalidateLegacy drops every memoized legacy inventory.
func (s *RoomService) InvalidateLegacy(ctx context.Context) error {
	s.memo.Purge()
	if err := s.cache.InvalidateInventories(ctx); err != nil {
		return fmt.Errorf("invalidate inventories: %w", err)
	}
	return nil
}

// RefreshTerm reloads a term's courses and drops derived legacy inventories.
func (s *RoomService) RefreshTerm(ctx context.Context, termCode string) error {
	term, err := s.catalog.Term(ctx, termCode)
	if err != nil {
		return err
	}
	if _, err := s.courses.Refresh(ctx, term); err != nil {
		return fmt.Errorf("refresh %s: %w", term.Code, err)
	}
	return s.InvalidateLegacy(ctx)
}
