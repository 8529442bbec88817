package model

import "time"

// SourceKind identifies the wire format of a term's course source.
type SourceKind string

const (
	SourceCSV  SourceKind = "csv"
	SourceJSON SourceKind = "json"
)

// Term is an academic term whose course data can be loaded.
type Term struct {
	Code         string     `json:"code"`
	Label        string     `json:"label"`
	SourceKind   SourceKind `json:"source_kind"`
	SourceURL    string     `json:"source_url"`
	FallbackKind SourceKind `json:"fallback_kind,omitempty"`
	FallbackURL  string     `json:"fallback_url,omitempty"`
	IsActive     bool       `json:"is_active"`
	IsLegacy     bool       `json:"is_legacy"`
	SortOrder    int        `json:"sort_order"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// HasFallback reports whether the term declares an alternative source.
func (t Term) HasFallback() bool {
	return t.FallbackURL != ""
}

// TermRecord is the shape of an entry in the terms seed file.
type TermRecord struct {
	Code         string     `json:"code"`
	Label        string     `json:"label"`
	SourceKind   SourceKind `json:"source_kind"`
	SourceURL    string     `json:"source_url"`
	FallbackKind SourceKind `json:"fallback_kind"`
	FallbackURL  string     `json:"fallback_url"`
	IsActive     bool       `json:"is_active"`
	IsLegacy     bool       `json:"is_legacy"`
	SortOrder    int        `json:"sort_order"`
}
