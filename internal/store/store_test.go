package store

import (
	"errors"
	"testing"
	"time"
)

// setupTestDB creates an in-memory database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func fptr(v float64) *float64 { return &v }

func TestUpsertActivity_CreateAndUpdate(t *testing.T) {
	db := setupTestDB(t)

	a := &Activity{
		ID:              "act-1",
		Date:            time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Sport:           "run",
		DurationMinutes: 45,
		DistanceKm:      fptr(8.2),
		AvgHR:           fptr(148),
		Notes:           "easy aerobic run",
	}
	if err := db.UpsertActivity(a); err != nil {
		t.Fatalf("UpsertActivity() error = %v", err)
	}

	got, err := db.GetActivity("act-1")
	if err != nil {
		t.Fatalf("GetActivity() error = %v", err)
	}
	if !got.Date.Equal(a.Date) {
		t.Errorf("Date = %v, want %v", got.Date, a.Date)
	}
	if got.Sport != "run" || got.DurationMinutes != 45 {
		t.Errorf("got sport %q duration %v, want run 45", got.Sport, got.DurationMinutes)
	}
	if got.DistanceKm == nil || *got.DistanceKm != 8.2 {
		t.Errorf("DistanceKm = %v, want 8.2", got.DistanceKm)
	}
	if got.RPE != nil {
		t.Errorf("RPE = %v, want nil", got.RPE)
	}

	// Upsert with the same ID replaces the row
	a.DurationMinutes = 60
	a.Notes = "extended to an hour"
	if err := db.UpsertActivity(a); err != nil {
		t.Fatalf("UpsertActivity() update error = %v", err)
	}

	got, err = db.GetActivity("act-1")
	if err != nil {
		t.Fatalf("GetActivity() after update error = %v", err)
	}
	if got.DurationMinutes != 60 || got.Notes != "extended to an hour" {
		t.Errorf("got duration %v notes %q after update", got.DurationMinutes, got.Notes)
	}

	count, err := db.CountActivities()
	if err != nil {
		t.Fatalf("CountActivities() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountActivities() = %d, want 1", count)
	}
}

func TestGetActivity_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetActivity("missing")
	if !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("GetActivity() error = %v, want ErrActivityNotFound", err)
	}
}

func TestListActivities_ChronologicalOrder(t *testing.T) {
	db := setupTestDB(t)

	// Insert out of order; list must come back chronological
	dates := []time.Time{
		time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	for i, d := range dates {
		a := &Activity{
			ID:              "act-" + string(rune('a'+i)),
			Date:            d,
			Sport:           "run",
			DurationMinutes: 30,
		}
		if err := db.UpsertActivity(a); err != nil {
			t.Fatalf("UpsertActivity() error = %v", err)
		}
	}

	activities, err := db.ListActivities()
	if err != nil {
		t.Fatalf("ListActivities() error = %v", err)
	}
	if len(activities) != 3 {
		t.Fatalf("ListActivities() returned %d activities, want 3", len(activities))
	}
	for i := 1; i < len(activities); i++ {
		if activities[i].Date.Before(activities[i-1].Date) {
			t.Errorf("activities out of order at %d: %v before %v", i, activities[i].Date, activities[i-1].Date)
		}
	}

	since, err := db.ListActivitiesSince(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ListActivitiesSince() error = %v", err)
	}
	if len(since) != 2 {
		t.Errorf("ListActivitiesSince() returned %d activities, want 2", len(since))
	}
}

func TestSavePlan_RoundTrip(t *testing.T) {
	db := setupTestDB(t)

	monday := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	p := &Plan{
		ID:         "plan-1",
		Name:       "Spring Half",
		Goal:       "half_marathon",
		TotalWeeks: 2,
		RaceWeek:   2,
		Weeks: []PlanWeek{
			{
				WeekNumber:     1,
				Phase:          "base",
				StartDate:      monday,
				EndDate:        monday.AddDate(0, 0, 6),
				TargetVolumeKm: 40,
				Workouts: []PlanWorkout{
					{ID: "wo-1", Date: monday.AddDate(0, 0, 1), Type: "easy", DistanceKm: 8},
					{ID: "wo-2", Date: monday.AddDate(0, 0, 5), Type: "long", DistanceKm: 14, DurationMinutes: 85},
				},
			},
			{
				WeekNumber:     2,
				Phase:          "race",
				StartDate:      monday.AddDate(0, 0, 7),
				EndDate:        monday.AddDate(0, 0, 13),
				TargetVolumeKm: 25,
				IsRecoveryWeek: true,
			},
		},
	}
	if err := db.SavePlan(p); err != nil {
		t.Fatalf("SavePlan() error = %v", err)
	}

	got, err := db.GetPlan("plan-1")
	if err != nil {
		t.Fatalf("GetPlan() error = %v", err)
	}
	if got.Name != "Spring Half" || got.Goal != "half_marathon" || got.TotalWeeks != 2 {
		t.Errorf("got plan %+v", got)
	}
	if len(got.Weeks) != 2 {
		t.Fatalf("got %d weeks, want 2", len(got.Weeks))
	}
	w1 := got.Weeks[0]
	if w1.Phase != "base" || w1.TargetVolumeKm != 40 || !w1.StartDate.Equal(monday) {
		t.Errorf("week 1 = %+v", w1)
	}
	if len(w1.Workouts) != 2 {
		t.Fatalf("week 1 has %d workouts, want 2", len(w1.Workouts))
	}
	if w1.Workouts[1].Type != "long" || w1.Workouts[1].DurationMinutes != 85 {
		t.Errorf("long workout = %+v", w1.Workouts[1])
	}
	if !got.Weeks[1].IsRecoveryWeek {
		t.Error("week 2 should be a recovery week")
	}
}

func TestSavePlan_ReplacesWeeks(t *testing.T) {
	db := setupTestDB(t)

	monday := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	p := &Plan{
		ID:         "plan-1",
		Name:       "Draft",
		Goal:       "10k",
		TotalWeeks: 1,
		RaceWeek:   1,
		Weeks: []PlanWeek{
			{
				WeekNumber: 1, Phase: "base",
				StartDate: monday, EndDate: monday.AddDate(0, 0, 6),
				TargetVolumeKm: 30,
				Workouts: []PlanWorkout{
					{ID: "wo-1", Date: monday, Type: "easy", DistanceKm: 6},
				},
			},
		},
	}
	if err := db.SavePlan(p); err != nil {
		t.Fatalf("SavePlan() error = %v", err)
	}

	// Re-save with a different single week; old workouts must be gone
	p.Weeks[0].TargetVolumeKm = 35
	p.Weeks[0].Workouts = []PlanWorkout{
		{ID: "wo-2", Date: monday.AddDate(0, 0, 2), Type: "tempo", DistanceKm: 8},
	}
	if err := db.SavePlan(p); err != nil {
		t.Fatalf("SavePlan() re-save error = %v", err)
	}

	got, err := db.GetPlan("plan-1")
	if err != nil {
		t.Fatalf("GetPlan() error = %v", err)
	}
	if got.Weeks[0].TargetVolumeKm != 35 {
		t.Errorf("TargetVolumeKm = %v, want 35", got.Weeks[0].TargetVolumeKm)
	}
	if len(got.Weeks[0].Workouts) != 1 || got.Weeks[0].Workouts[0].ID != "wo-2" {
		t.Errorf("workouts = %+v, want only wo-2", got.Weeks[0].Workouts)
	}
}

func TestDeletePlan(t *testing.T) {
	db := setupTestDB(t)

	monday := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	p := &Plan{
		ID: "plan-1", Name: "To delete", Goal: "5k", TotalWeeks: 1, RaceWeek: 1,
		Weeks: []PlanWeek{
			{WeekNumber: 1, Phase: "base", StartDate: monday, EndDate: monday.AddDate(0, 0, 6), TargetVolumeKm: 20},
		},
	}
	if err := db.SavePlan(p); err != nil {
		t.Fatalf("SavePlan() error = %v", err)
	}

	if err := db.DeletePlan("plan-1"); err != nil {
		t.Fatalf("DeletePlan() error = %v", err)
	}
	if _, err := db.GetPlan("plan-1"); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("GetPlan() after delete error = %v, want ErrPlanNotFound", err)
	}

	// Cascade removed the weeks too
	var weekCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM plan_weeks`).Scan(&weekCount); err != nil {
		t.Fatalf("counting weeks: %v", err)
	}
	if weekCount != 0 {
		t.Errorf("plan_weeks count = %d after cascade delete, want 0", weekCount)
	}

	if err := db.DeletePlan("plan-1"); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("DeletePlan() second call error = %v, want ErrPlanNotFound", err)
	}
}

func TestImportState(t *testing.T) {
	db := setupTestDB(t)

	v, err := db.GetImportState("last_import")
	if err != nil {
		t.Fatalf("GetImportState() error = %v", err)
	}
	if v != "" {
		t.Errorf("GetImportState() on empty store = %q, want empty", v)
	}

	if err := db.SetImportState("last_import", "2026-03-09T10:00:00Z"); err != nil {
		t.Fatalf("SetImportState() error = %v", err)
	}
	if err := db.SetImportState("last_import", "2026-03-10T10:00:00Z"); err != nil {
		t.Fatalf("SetImportState() overwrite error = %v", err)
	}

	v, err = db.GetImportState("last_import")
	if err != nil {
		t.Fatalf("GetImportState() error = %v", err)
	}
	if v != "2026-03-10T10:00:00Z" {
		t.Errorf("GetImportState() = %q, want latest value", v)
	}
}
