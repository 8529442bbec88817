package config

import (
	"fmt"
	"strings"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// TermCoursesKey returns the cache key for a term's normalized course set
func (r *CacheKeyStruct) TermCoursesKey(termCode string) string {
	return fmt.Sprintf("term:%s:courses", strings.ToLower(termCode))
}

// TermCoursesPattern matches every cached course set
func (r *CacheKeyStruct) TermCoursesPattern() string {
	return "term:*:courses"
}

// LegacyInventoryKey returns the cache key for the merged room inventory of a legacy term set
func (r *CacheKeyStruct) LegacyInventoryKey(termCodes []string) string {
	return fmt.Sprintf("rooms:legacy:%s", strings.ToLower(strings.Join(termCodes, "+")))
}

// LegacyInventoryPattern matches every cached legacy inventory
func (r *CacheKeyStruct) LegacyInventoryPattern() string {
	return "rooms:legacy:*"
}

var CacheKey = NewCacheKeyStruct()
