package rooms

import (
	"sort"
	"strconv"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collators are not safe for concurrent use, so each caller borrows one.
var collators = sync.Pool{
	New: func() any { return collate.New(language.English) },
}

// leadingInt parses the integer prefix of s the way room numbers are read:
// an optional sign followed by at least one digit. "101A" yields 101.
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// compareWith orders rooms numerically when both have an integer prefix
// and falls back to locale-aware collation otherwise or on equal prefixes.
func compareWith(col *collate.Collator, a, b string) int {
	na, okA := leadingInt(a)
	nb, okB := leadingInt(b)
	if okA && okB && na != nb {
		if na < nb {
			return -1
		}
		return 1
	}
	if c := col.CompareString(a, b); c != 0 {
		return c
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// CompareRooms returns -1, 0 or +1 ordering room a before, with or after b.
func CompareRooms(a, b string) int {
	col := collators.Get().(*collate.Collator)
	defer collators.Put(col)
	return compareWith(col, a, b)
}

// SortRooms sorts rooms in place with CompareRooms.
func SortRooms(rooms []string) {
	col := collators.Get().(*collate.Collator)
	defer collators.Put(col)
	sort.SliceStable(rooms, func(i, j int) bool {
		return compareWith(col, rooms[i], rooms[j]) < 0
	})
}
