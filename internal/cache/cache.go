// Package cache stores normalized course sets and merged room inventories
// between requests. The core packages stay state-free; callers decide what
// to keep here and for how long.
package cache

import (
	"errors"

	"github.com/stemsi/roomgrid-backend/internal/ingest"
	"github.com/stemsi/roomgrid-backend/internal/model"
)

// ErrMiss is returned when a key is not cached.
var ErrMiss = errors.New("cache miss")

// entry is the serialized form of a cached course set.
type entry struct {
	Result *ingest.Result `json:"result"`
	Source string         `json:"source"`
}

// inventoryEntry is the serialized form of a cached room inventory.
type inventoryEntry struct {
	Inventory model.RoomInventory `json:"inventory"`
}
