package guardrails

import (
	"testing"
	"time"
)

func monday(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// buildWeek constructs a valid Monday-Sunday week with evenly spread
// easy workouts summing to totalKm.
func buildWeek(num int, start time.Time, phase Phase, targetKm, totalKm float64) PlanWeek {
	week := PlanWeek{
		WeekNumber:     num,
		Phase:          phase,
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, 6),
		TargetVolumeKm: targetKm,
	}
	perDay := totalKm / 4
	for i := 0; i < 4; i++ {
		week.Workouts = append(week.Workouts, Workout{
			Date:       start.AddDate(0, 0, i),
			Type:       "easy",
			DistanceKm: perDay,
		})
	}
	return week
}

func TestValidateWeek_VolumeTolerance(t *testing.T) {
	start := monday(2026, 3, 2)

	tests := []struct {
		name      string
		totalKm   float64
		wantError bool
		wantWarn  bool
	}{
		{"3.75% over passes", 41.5, false, false},
		{"7.5% over warns", 43, false, true},
		{"12.5% over fails", 45, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week := buildWeek(1, start, PhaseBase, 40, tt.totalKm)
			result := ValidateWeek(week)

			hasVolumeError := hasRule(result.Errors, "week_volume_mismatch")
			hasVolumeWarn := hasRule(result.Warnings, "week_volume_tolerance")
			if hasVolumeError != tt.wantError {
				t.Errorf("volume error = %v, want %v (errors: %+v)", hasVolumeError, tt.wantError, result.Errors)
			}
			if hasVolumeWarn != tt.wantWarn {
				t.Errorf("volume warning = %v, want %v (warnings: %+v)", hasVolumeWarn, tt.wantWarn, result.Warnings)
			}
		})
	}
}

func TestValidateWeek_Structure(t *testing.T) {
	t.Run("must start monday", func(t *testing.T) {
		week := buildWeek(1, monday(2026, 3, 2), PhaseBase, 40, 40)
		week.StartDate = week.StartDate.AddDate(0, 0, 1) // Tuesday
		result := ValidateWeek(week)
		if !hasRule(result.Errors, "week_start_monday") {
			t.Errorf("expected week_start_monday error, got %+v", result.Errors)
		}
	})

	t.Run("duplicate workout dates", func(t *testing.T) {
		week := buildWeek(1, monday(2026, 3, 2), PhaseBase, 40, 40)
		week.Workouts[1].Date = week.Workouts[0].Date
		result := ValidateWeek(week)
		if !hasRule(result.Errors, "workout_duplicate_date") {
			t.Errorf("expected workout_duplicate_date error, got %+v", result.Errors)
		}
	})

	t.Run("missing workout type", func(t *testing.T) {
		week := buildWeek(1, monday(2026, 3, 2), PhaseBase, 40, 40)
		week.Workouts[2].Type = ""
		result := ValidateWeek(week)
		if !hasRule(result.Errors, "workout_required_fields") {
			t.Errorf("expected workout_required_fields error, got %+v", result.Errors)
		}
	})

	t.Run("workout outside week", func(t *testing.T) {
		week := buildWeek(1, monday(2026, 3, 2), PhaseBase, 40, 40)
		week.Workouts[3].Date = week.EndDate.AddDate(0, 0, 3)
		result := ValidateWeek(week)
		if !hasRule(result.Errors, "workout_outside_week") {
			t.Errorf("expected workout_outside_week error, got %+v", result.Errors)
		}
	})
}

func TestValidateWeek_GuardrailWarnings(t *testing.T) {
	week := PlanWeek{
		WeekNumber:     3,
		Phase:          PhaseBuild,
		StartDate:      monday(2026, 3, 16),
		EndDate:        monday(2026, 3, 16).AddDate(0, 0, 6),
		TargetVolumeKm: 50,
		Workouts: []Workout{
			{Date: monday(2026, 3, 16), Type: "tempo", DistanceKm: 7},              // 14% T-pace
			{Date: monday(2026, 3, 16).AddDate(0, 0, 2), Type: "easy", DistanceKm: 15},
			{Date: monday(2026, 3, 16).AddDate(0, 0, 4), Type: "easy", DistanceKm: 10},
			{Date: monday(2026, 3, 16).AddDate(0, 0, 6), Type: "long", DistanceKm: 18, DurationMinutes: 160},
		},
	}

	result := ValidateWeek(week)
	if !hasRule(result.Warnings, "quality_volume_t_pace") {
		t.Errorf("expected quality_volume_t_pace warning, got %+v", result.Warnings)
	}
	if !hasRule(result.Warnings, "long_run_duration") || !hasRule(result.Warnings, "long_run_volume_share") {
		t.Errorf("expected both long-run warnings, got %+v", result.Warnings)
	}
	// Guardrail breaches are advisory: the week still has no fatal errors.
	if len(result.Errors) != 0 {
		t.Errorf("guardrail breaches must not be fatal, got errors %+v", result.Errors)
	}
}

func TestValidatePlan(t *testing.T) {
	start := monday(2026, 3, 2)
	weeks := []PlanWeek{
		buildWeek(1, start, PhaseBase, 30, 30),
		buildWeek(2, start.AddDate(0, 0, 7), PhaseBase, 32, 32),
		buildWeek(3, start.AddDate(0, 0, 14), PhaseBuild, 35, 35),
		buildWeek(4, start.AddDate(0, 0, 21), PhaseBuild, 24, 24),
		buildWeek(5, start.AddDate(0, 0, 28), PhaseTaper, 20, 20),
	}
	weeks[3].IsRecoveryWeek = true

	plan := Plan{
		Name:       "spring half",
		Goal:       "half_marathon",
		TotalWeeks: 5,
		RaceWeek:   5,
		Weeks:      weeks,
	}

	result := ValidatePlan(plan, 35, RiskContext{})
	if !result.OK() {
		t.Errorf("well-formed plan should pass, got errors %+v", result.Errors)
	}
}

func TestValidatePlan_Errors(t *testing.T) {
	start := monday(2026, 3, 2)

	t.Run("week count mismatch", func(t *testing.T) {
		plan := Plan{TotalWeeks: 3, RaceWeek: 1, Weeks: []PlanWeek{buildWeek(1, start, PhaseTaper, 30, 30)}}
		result := ValidatePlan(plan, 30, RiskContext{})
		if !hasRule(result.Errors, "plan_week_count") {
			t.Errorf("expected plan_week_count error, got %+v", result.Errors)
		}
	})

	t.Run("race week outside taper", func(t *testing.T) {
		plan := Plan{
			TotalWeeks: 2,
			RaceWeek:   1,
			Weeks: []PlanWeek{
				buildWeek(1, start, PhaseBase, 30, 30),
				buildWeek(2, start.AddDate(0, 0, 7), PhaseTaper, 20, 20),
			},
		}
		result := ValidatePlan(plan, 30, RiskContext{})
		if !hasRule(result.Errors, "plan_race_week_phase") {
			t.Errorf("expected plan_race_week_phase error, got %+v", result.Errors)
		}
	})

	t.Run("missing race week", func(t *testing.T) {
		plan := Plan{
			TotalWeeks: 1,
			RaceWeek:   0,
			Weeks:      []PlanWeek{buildWeek(1, start, PhaseBase, 30, 30)},
		}
		result := ValidatePlan(plan, 30, RiskContext{})
		if !hasRule(result.Errors, "plan_race_week") {
			t.Errorf("expected plan_race_week error, got %+v", result.Errors)
		}
	})
}

func TestValidatePlan_RecoveryCadence(t *testing.T) {
	start := monday(2026, 3, 2)
	var weeks []PlanWeek
	for i := 0; i < 8; i++ {
		weeks = append(weeks, buildWeek(i+1, start.AddDate(0, 0, i*7), PhaseBase, 30, 30))
	}
	weeks = append(weeks, buildWeek(9, start.AddDate(0, 0, 56), PhaseTaper, 20, 20))

	plan := Plan{Name: "no recovery", Goal: "10k", TotalWeeks: 9, RaceWeek: 9, Weeks: weeks}
	result := ValidatePlan(plan, 30, RiskContext{})

	if !hasRule(result.Warnings, "plan_recovery_cadence") {
		t.Errorf("expected plan_recovery_cadence warning for 8 straight weeks, got %+v", result.Warnings)
	}
}

func hasRule(issues []Issue, rule string) bool {
	for _, issue := range issues {
		if issue.Rule == rule {
			return true
		}
	}
	return false
}
