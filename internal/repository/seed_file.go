package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/stemsi/roomgrid-backend/internal/model"
)

// ReadBuildingsFile loads the buildings.json source ([{Code, Description}]).
// Entries with a blank code are dropped and duplicate codes keep the first entry.
func ReadBuildingsFile(path string) ([]model.Building, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read buildings file: %w", err)
	}

	var records []model.BuildingRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode buildings file: %w", err)
	}

	seen := make(map[string]struct{}, len(records))
	buildings := make([]model.Building, 0, len(records))
	for _, rec := range records {
		b := rec.ToBuilding()
		b.Code = strings.TrimSpace(b.Code)
		b.Description = strings.TrimSpace(b.Description)
		if b.Code == "" {
			continue
		}
		key := strings.ToUpper(b.Code)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		buildings = append(buildings, b)
	}
	return buildings, nil
}

// ReadTermsFile loads a terms seed file.
func ReadTermsFile(path string) ([]model.Term, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read terms file: %w", err)
	}

	var records []model.TermRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode terms file: %w", err)
	}

	terms := make([]model.Term, 0, len(records))
	for _, rec := range records {
		if rec.Code == "" || rec.SourceURL == "" {
			return nil, fmt.Errorf("term %q: code and source_url are required", rec.Code)
		}
		kind := rec.SourceKind
		if kind == "" {
			kind = model.SourceCSV
		}
		terms = append(terms, model.Term{
			Code:         rec.Code,
			Label:        rec.Label,
			SourceKind:   kind,
			SourceURL:    rec.SourceURL,
			FallbackKind: rec.FallbackKind,
			FallbackURL:  rec.FallbackURL,
			IsActive:     rec.IsActive,
			IsLegacy:     rec.IsLegacy,
			SortOrder:    rec.SortOrder,
		})
	}
	return terms, nil
}
