package service

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/roomgrid-backend/internal/cache"
	"github.com/stemsi/roomgrid-backend/internal/model"
	"github.com/stemsi/roomgrid-backend/internal/repository"
	"github.com/stemsi/roomgrid-backend/internal/source"
)

var testLog = zerolog.New(io.Discard)

type fakeBuildings []model.Building

func (f fakeBuildings) List(context.Context) ([]model.Building, error) {
	return append([]model.Building{}, f...), nil
}

type fakeTerms []model.Term

func (f fakeTerms) List(context.Context) ([]model.Term, error) {
	return append([]model.Term{}, f...), nil
}

func (f fakeTerms) GetByCode(_ context.Context, code string) (*model.Term, error) {
	for _, t := range f {
		if t.Code == code {
			t := t
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeFetcher struct {
	mu    sync.Mutex
	docs  map[string]string
	calls map[string]int
}

func newFakeFetcher(docs map[string]string) *fakeFetcher {
	return &fakeFetcher{docs: docs, calls: make(map[string]int)}
}

func (f *fakeFetcher) Fetch(_ context.Context, target string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[target]++
	doc, ok := f.docs[target]
	if !ok {
		return nil, fmt.Errorf("%w: %s not found", source.ErrUnavailable, target)
	}
	return []byte(doc), nil
}

func (f *fakeFetcher) Calls(target string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[target]
}

var testBuildings = fakeBuildings{
	{Code: "DANA", Description: "DANA HALL"},
	{Code: "SCI", Description: "Science Center"},
	{Code: "ADM", Description: "Admin Building"},
}

const fallCSV = `Subj,Number,Title,Meetings/0/Location,Meetings/0/Start,Meetings/0/End,Meetings/0/M,Meetings/0/T,Meetings/0/W,Meetings/0/R,Meetings/0/F
CS,101,Intro,DANA 113,09:00,10:50,Y,N,Y,N,Y
MA,201,Calc,DANA 113,13:00,13:50,N,Y,N,Y,N
PH,110,Physics,SCI 2,10:00,10:50,Y,N,N,N,N
XX,1,Nowhere,GYM 1,10:00,10:50,Y,N,N,N,N`

const springJSON = `[
 {"Subj":"BI","Number":"150","Title":"Bio","Meetings":[{"Location":"SCI 10","Start":"08:00","End":"08:50","M":"Y"}]},
 {"Subj":"HI","Number":"100","Title":"History","Meetings":[{"Location":"ADM 5","Start":"11:00","End":"11:50","T":"Y"}]}
]`

const oldCSV = `Subj,Number,Meetings/0/Location
EN,100,DANA 2
EN,101,DANA 113`

type fixture struct {
	fetcher  *fakeFetcher
	store    *cache.MemoryStore
	catalog  *CatalogService
	courses  *CourseService
	rooms    *RoomService
	schedule *ScheduleService
}

func newFixture(terms fakeTerms, docs map[string]string) (*fixture, error) {
	f := &fixture{
		fetcher: newFakeFetcher(docs),
		store:   cache.NewMemoryStore(),
	}
	f.catalog = NewCatalogService(testBuildings, terms, testLog)
	if err := f.catalog.Load(context.Background()); err != nil {
		return nil, err
	}
	f.courses = NewCourseService(f.fetcher, f.store, testLog)
	rs, err := NewRoomService(f.catalog, f.courses, f.store, 4, testLog)
	if err != nil {
		return nil, err
	}
	f.rooms = rs
	f.schedule = NewScheduleService(f.catalog, f.courses, testLog)
	return f, nil
}

func standardTerms() fakeTerms {
	return fakeTerms{
		{Code: "2025FA", SourceKind: model.SourceCSV, SourceURL: "https://x/fa.csv", IsActive: true, SortOrder: 3},
		{Code: "2025SP", SourceKind: model.SourceJSON, SourceURL: "https://x/sp.json", IsLegacy: true, SortOrder: 2},
		{Code: "2024FA", SourceKind: model.SourceCSV, SourceURL: "https://x/old.csv", IsLegacy: true, SortOrder: 1},
	}
}

func standardDocs() map[string]string {
	return map[string]string{
		"https://x/fa.csv":  fallCSV,
		"https://x/sp.json": springJSON,
		"https://x/old.csv": oldCSV,
	}
}
