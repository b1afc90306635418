// Package importer loads normalized activity exports into the local store.
// The input is a JSON array of activities, one object per session, as
// produced by export tooling or written by hand.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"trainguard/internal/store"
)

// fileActivity is the on-disk shape of one imported activity
type fileActivity struct {
	ID              string   `json:"id"`
	Date            string   `json:"date"`
	Sport           string   `json:"sport"`
	DurationMinutes float64  `json:"duration_minutes"`
	DistanceKm      *float64 `json:"distance_km"`
	RPE             *float64 `json:"rpe"`
	AvgHR           *float64 `json:"avg_hr"`
	Notes           string   `json:"notes"`
}

// Result summarizes an import run
type Result struct {
	Imported int
	Skipped  int
	Errors   []string
}

const lastImportKey = "last_import"

// ImportFile reads a JSON activity export and upserts its activities
// into the store. Invalid entries are skipped and reported in the
// result rather than aborting the whole import.
func ImportFile(db *store.DB, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}

	var entries []fileActivity
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}

	result := &Result{}
	for i, entry := range entries {
		a, err := normalize(entry)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("entry %d: %v", i, err))
			continue
		}
		if err := db.UpsertActivity(a); err != nil {
			return nil, fmt.Errorf("saving activity %s: %w", a.ID, err)
		}
		result.Imported++
	}

	if err := db.SetImportState(lastImportKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf("recording import time: %w", err)
	}

	return result, nil
}

// LastImport returns when the store was last imported into, or the zero
// time if no import has run.
func LastImport(db *store.DB) (time.Time, error) {
	v, err := db.GetImportState(lastImportKey)
	if err != nil || v == "" {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing last import time %q: %w", v, err)
	}
	return t, nil
}

// normalize validates a file entry and converts it to a store activity.
// Entries without an ID get a generated one, which makes re-imports of
// the same file create duplicates, so exports should carry stable IDs.
func normalize(entry fileActivity) (*store.Activity, error) {
	if entry.Date == "" {
		return nil, fmt.Errorf("missing date")
	}
	date, err := parseDate(entry.Date)
	if err != nil {
		return nil, err
	}
	if entry.Sport == "" {
		return nil, fmt.Errorf("missing sport")
	}
	if entry.DurationMinutes <= 0 {
		return nil, fmt.Errorf("duration_minutes must be positive, got %v", entry.DurationMinutes)
	}
	// Effort scoring needs one of the two; a row with neither can never
	// be loaded and would poison every downstream query.
	if entry.RPE == nil && entry.AvgHR == nil {
		return nil, fmt.Errorf("needs rpe or avg_hr to score effort")
	}
	if entry.DistanceKm != nil && *entry.DistanceKm < 0 {
		return nil, fmt.Errorf("distance_km must not be negative, got %v", *entry.DistanceKm)
	}
	if entry.RPE != nil && (*entry.RPE < 1 || *entry.RPE > 10) {
		return nil, fmt.Errorf("rpe must be between 1 and 10, got %v", *entry.RPE)
	}
	if entry.AvgHR != nil && *entry.AvgHR <= 0 {
		return nil, fmt.Errorf("avg_hr must be positive, got %v", *entry.AvgHR)
	}

	id := entry.ID
	if id == "" {
		id = uuid.NewString()
	}

	return &store.Activity{
		ID:              id,
		Date:            date,
		Sport:           entry.Sport,
		DurationMinutes: entry.DurationMinutes,
		DistanceKm:      entry.DistanceKm,
		RPE:             entry.RPE,
		AvgHR:           entry.AvgHR,
		Notes:           entry.Notes,
	}, nil
}

// parseDate accepts a plain date or a full RFC3339 timestamp, truncated
// to the day in UTC.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
