package cache

import (
	"context"
	"strings"
	"sync"

	"github.com/stemsi/roomgrid-backend/internal/ingest"
	"github.com/stemsi/roomgrid-backend/internal/model"
)

// MemoryStore is an in-process store with the same contract as RedisStore.
// It backs the offline CLI and tests. Entries never expire.
type MemoryStore struct {
	mu          sync.RWMutex
	courses     map[string]entry
	inventories map[string]model.RoomInventory
	queue       []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		courses:     make(map[string]entry),
		inventories: make(map[string]model.RoomInventory),
	}
}

func memKey(codes ...string) string {
	return strings.ToLower(strings.Join(codes, "+"))
}

func (s *MemoryStore) GetCourses(_ context.Context, termCode string) (*ingest.Result, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.courses[memKey(termCode)]
	if !ok {
		return nil, "", ErrMiss
	}
	return e.Result, e.Source, nil
}

func (s *MemoryStore) SetCourses(_ context.Context, termCode string, res *ingest.Result, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses[memKey(termCode)] = entry{Result: res, Source: source}
	return nil
}

func (s *MemoryStore) GetInventory(_ context.Context, termCodes []string) (model.RoomInventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.inventories[memKey(termCodes...)]
	if !ok {
		return nil, ErrMiss
	}
	return inv.Clone(), nil
}

func (s *MemoryStore) SetInventory(_ context.Context, termCodes []string, inv model.RoomInventory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventories[memKey(termCodes...)] = inv.Clone()
	return nil
}

func (s *MemoryStore) InvalidateInventories(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventories = make(map[string]model.RoomInventory)
	return nil
}

func (s *MemoryStore) EnqueueRefresh(_ context.Context, termCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, termCode)
	return nil
}

// Pending returns the queued refresh requests and clears the queue.
func (s *MemoryStore) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.queue
	s.queue = nil
	return q
}
