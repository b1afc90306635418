package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrActivityNotFound is returned when an activity doesn't exist
var ErrActivityNotFound = errors.New("activity not found")

const dateLayout = "2006-01-02"

// UpsertActivity inserts or updates an activity
func (db *DB) UpsertActivity(a *Activity) error {
	_, err := db.Exec(`
		INSERT INTO activities (
			id, date, sport, duration_minutes, distance_km, rpe, avg_hr, notes, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			sport = excluded.sport,
			duration_minutes = excluded.duration_minutes,
			distance_km = excluded.distance_km,
			rpe = excluded.rpe,
			avg_hr = excluded.avg_hr,
			notes = excluded.notes,
			updated_at = CURRENT_TIMESTAMP
	`,
		a.ID, a.Date.UTC().Format(dateLayout), a.Sport, a.DurationMinutes,
		a.DistanceKm, a.RPE, a.AvgHR, a.Notes,
	)
	return err
}

// GetActivity retrieves an activity by ID
func (db *DB) GetActivity(id string) (*Activity, error) {
	row := db.QueryRow(`
		SELECT id, date, sport, duration_minutes, distance_km, rpe, avg_hr, notes
		FROM activities
		WHERE id = ?
	`, id)
	return scanActivity(row)
}

// ListActivities returns all activities in chronological order, which
// is the order the metrics replay expects.
func (db *DB) ListActivities() ([]Activity, error) {
	rows, err := db.Query(`
		SELECT id, date, sport, duration_minutes, distance_km, rpe, avg_hr, notes
		FROM activities
		ORDER BY date ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivities(rows)
}

// ListActivitiesSince returns activities on or after the given day,
// chronological.
func (db *DB) ListActivitiesSince(since time.Time) ([]Activity, error) {
	rows, err := db.Query(`
		SELECT id, date, sport, duration_minutes, distance_km, rpe, avg_hr, notes
		FROM activities
		WHERE date >= ?
		ORDER BY date ASC, id ASC
	`, since.UTC().Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivities(rows)
}

// CountActivities returns the number of stored activities
func (db *DB) CountActivities() (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM activities`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row rowScanner) (*Activity, error) {
	var a Activity
	var dateStr string

	err := row.Scan(&a.ID, &dateStr, &a.Sport, &a.DurationMinutes, &a.DistanceKm, &a.RPE, &a.AvgHR, &a.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}

	a.Date, err = time.ParseInLocation(dateLayout, dateStr, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parsing activity date %q: %w", dateStr, err)
	}
	return &a, nil
}

func scanActivities(rows *sql.Rows) ([]Activity, error) {
	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}
