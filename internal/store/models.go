package store

import "time"

// Activity is a normalized training session as persisted. The importer
// owns writes; everything downstream treats rows as read-only.
type Activity struct {
	ID              string    `db:"id"`
	Date            time.Time `db:"date"`
	Sport           string    `db:"sport"`
	DurationMinutes float64   `db:"duration_minutes"`
	DistanceKm      *float64  `db:"distance_km"` // nullable
	RPE             *float64  `db:"rpe"`         // nullable, 1-10
	AvgHR           *float64  `db:"avg_hr"`      // nullable, bpm
	Notes           string    `db:"notes"`
}

// Plan is a stored macro training plan.
type Plan struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	Goal       string `db:"goal"` // "5k", "10k", "half_marathon", "marathon"
	TotalWeeks int    `db:"total_weeks"`
	RaceWeek   int    `db:"race_week"`
	Weeks      []PlanWeek
}

// PlanWeek is one stored week of a plan.
type PlanWeek struct {
	PlanID         string    `db:"plan_id"`
	WeekNumber     int       `db:"week_number"`
	Phase          string    `db:"phase"`
	StartDate      time.Time `db:"start_date"`
	EndDate        time.Time `db:"end_date"`
	TargetVolumeKm float64   `db:"target_volume_km"`
	IsRecoveryWeek bool      `db:"is_recovery_week"`
	Workouts       []PlanWorkout
}

// PlanWorkout is a single planned session.
type PlanWorkout struct {
	ID              string    `db:"id"`
	PlanID          string    `db:"plan_id"`
	WeekNumber      int       `db:"week_number"`
	Date            time.Time `db:"date"`
	Type            string    `db:"type"`
	DistanceKm      float64   `db:"distance_km"`
	DurationMinutes float64   `db:"duration_minutes"`
	Description     string    `db:"description"`
}
