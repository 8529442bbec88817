package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/roomgrid-backend/internal/model"
	"github.com/stemsi/roomgrid-backend/internal/repository"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CatalogService owns the building list, loaded once at startup, and
// answers term lookups.
type CatalogService struct {
	buildingStore BuildingStore
	termStore     TermStore
	log           zerolog.Logger

	mu        sync.RWMutex
	buildings []model.Building
	byCode    map[string]model.Building
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(buildingStore BuildingStore, termStore TermStore, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		buildingStore: buildingStore,
		termStore:     termStore,
		log:           log.With().Str("component", "catalog_service").Logger(),
	}
}

// Load reads the building catalog. Buildings are read-only afterwards.
func (s *CatalogService) Load(ctx context.Context) error {
	list, err := s.buildingStore.List(ctx)
	if err != nil {
		return fmt.Errorf("list buildings: %w", err)
	}

	byCode := make(map[string]model.Building, len(list))
	buildings := make([]model.Building, 0, len(list))
	for _, b := range list {
		key := strings.ToUpper(b.Code)
		if _, dup := byCode[key]; dup {
			s.log.Warn().Str("code", b.Code).Msg("Duplicate building code ignored")
			continue
		}
		byCode[key] = b
		buildings = append(buildings, b)
	}

	s.mu.Lock()
	s.buildings = buildings
	s.byCode = byCode
	s.mu.Unlock()

	s.log.Info().Int("buildings", len(buildings)).Msg("Building catalog loaded")
	return nil
}

// Buildings returns a copy of the building list.
func (s *CatalogService) Buildings() []model.Building {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Building{}, s.buildings...)
}

// Building looks up a building by code, case-insensitively.
func (s *CatalogService) Building(code string) (model.Building, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.byCode == nil {
		return model.Building{}, ErrCatalogNotLoaded
	}
	b, ok := s.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return model.Building{}, ErrBuildingNotFound
	}
	return b, nil
}

// BuildingsWithRooms returns the buildings that have at least one room in
// inv, sorted by description. When none has rooms every building is returned.
func (s *CatalogService) BuildingsWithRooms(inv model.RoomInventory) []model.Building {
	all := s.Buildings()

	var out []model.Building
	for _, b := range all {
		if len(inv[b.Code]) > 0 {
			out = append(out, b)
		}
	}
	if len(out) == 0 {
		s.log.Warn().Msg("No buildings with rooms found, listing all buildings")
		out = all
	}

	col := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].Description, out[j].Description) < 0
	})
	return out
}

// Terms returns the term catalog.
func (s *CatalogService) Terms(ctx context.Context) ([]model.Term, error) {
	terms, err := s.termStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	if terms == nil {
		terms = []model.Term{}
	}
	return terms, nil
}

// Term looks up a term by code.
func (s *CatalogService) Term(ctx context.Context, code string) (*model.Term, error) {
	t, err := s.termStore.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTermNotFound
		}
		return nil, fmt.Errorf("get term: %w", err)
	}
	return t, nil
}

// ActiveTerm returns the term flagged active with the highest sort order.
func (s *CatalogService) ActiveTerm(ctx context.Context) (*model.Term, error) {
	terms, err := s.Terms(ctx)
	if err != nil {
		return nil, err
	}
	var active *model.Term
	for i := range terms {
		if terms[i].IsActive && (active == nil || terms[i].SortOrder > active.SortOrder) {
			active = &terms[i]
		}
	}
	if active == nil {
		return nil, ErrNoActiveTerm
	}
	return active, nil
}

// LegacyTerms returns the terms whose rooms are merged into every inventory,
// sorted by code.
func (s *CatalogService) LegacyTerms(ctx context.Context) ([]model.Term, error) {
	terms, err := s.Terms(ctx)
	if err != nil {
		return nil, err
	}
	var legacy []model.Term
	for _, t := range terms {
		if t.IsLegacy {
			legacy = append(legacy, t)
		}
	}
	sort.Slice(legacy, func(i, j int) bool { return legacy[i].Code < legacy[j].Code })
	return legacy, nil
}
