package rooms

import "github.com/stemsi/roomgrid-backend/internal/model"

// Merge unions src into dst and returns dst. For every building with a
// non-empty room list in src, missing rooms are appended to dst's list
// (creating it when absent) and the list is re-sorted. Merging is
// idempotent and, per building, order-independent.
func Merge(dst, src model.RoomInventory) model.RoomInventory {
	if dst == nil {
		dst = make(model.RoomInventory, len(src))
	}
	for code, rooms := range src {
		if len(rooms) == 0 {
			continue
		}

		existing := dst[code]
		seen := make(map[string]struct{}, len(existing)+len(rooms))
		for _, r := range existing {
			seen[r] = struct{}{}
		}

		merged := append([]string{}, existing...)
		for _, r := range rooms {
			if _, dup := seen[r]; dup {
				continue
			}
			seen[r] = struct{}{}
			merged = append(merged, r)
		}
		SortRooms(merged)
		dst[code] = merged
	}
	return dst
}

// MergeAll folds every inventory into a fresh one.
func MergeAll(inventories ...model.RoomInventory) model.RoomInventory {
	out := make(model.RoomInventory)
	for _, inv := range inventories {
		Merge(out, inv)
	}
	return out
}
