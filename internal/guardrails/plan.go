package guardrails

import (
	"fmt"
	"time"
)

// Weekly volume tolerance: under 5% off target passes, 5-10% warns,
// over 10% fails.
const (
	volumeTolerancePass = 0.05
	volumeToleranceWarn = 0.10
)

// Recovery-week cadence and depth.
const (
	recoveryMaxGapWeeks     = 5
	recoveryVolumeFraction  = 0.70
	recoveryVolumeTolerance = 0.10
)

// ValidatePlan checks a macro plan skeleton: phase-week accounting,
// recovery-week cadence and depth, week-over-week progression against
// the volume guardrail, and a race week inside the taper. Structural
// problems are fatal errors; guardrail breaches are advisory warnings.
func ValidatePlan(plan Plan, ctl float64, risk RiskContext) PlanValidationResult {
	var result PlanValidationResult

	if len(plan.Weeks) != plan.TotalWeeks {
		result.Errors = append(result.Errors, Issue{
			Rule:    "plan_week_count",
			Message: fmt.Sprintf("plan declares %d weeks but contains %d", plan.TotalWeeks, len(plan.Weeks)),
		})
	}

	phaseCounts := make(map[Phase]int)
	for _, w := range plan.Weeks {
		if w.Phase == "" {
			result.Errors = append(result.Errors, Issue{
				Week: w.WeekNumber, Rule: "plan_phase_missing",
				Message: fmt.Sprintf("week %d has no phase", w.WeekNumber),
			})
			continue
		}
		phaseCounts[w.Phase]++
	}
	phaseSum := 0
	for _, n := range phaseCounts {
		phaseSum += n
	}
	if phaseSum != plan.TotalWeeks {
		result.Errors = append(result.Errors, Issue{
			Rule:    "plan_phase_accounting",
			Message: fmt.Sprintf("phase-week counts sum to %d, want %d", phaseSum, plan.TotalWeeks),
		})
	}

	validateRaceWeek(plan, &result)
	validateRecoveryCadence(plan, &result)
	validateProgression(plan, ctl, risk, &result)

	for _, w := range plan.Weeks {
		weekly := ValidateWeek(w)
		result.Errors = append(result.Errors, weekly.Errors...)
		result.Warnings = append(result.Warnings, weekly.Warnings...)
	}

	return result
}

func validateRaceWeek(plan Plan, result *PlanValidationResult) {
	if plan.RaceWeek < 1 || plan.RaceWeek > len(plan.Weeks) {
		result.Errors = append(result.Errors, Issue{
			Rule:    "plan_race_week",
			Message: fmt.Sprintf("race week %d is outside the plan (1-%d)", plan.RaceWeek, len(plan.Weeks)),
		})
		return
	}
	phase := plan.Weeks[plan.RaceWeek-1].Phase
	if phase != PhaseTaper && phase != PhaseRace {
		result.Errors = append(result.Errors, Issue{
			Week: plan.RaceWeek, Rule: "plan_race_week_phase",
			Message: fmt.Sprintf("race week %d sits in %q phase, want taper", plan.RaceWeek, phase),
		})
	}
}

// validateRecoveryCadence warns when more than recoveryMaxGapWeeks pass
// without a recovery week, and when a recovery week isn't close to 70%
// of the preceding week's volume.
func validateRecoveryCadence(plan Plan, result *PlanValidationResult) {
	sinceRecovery := 0
	for i, w := range plan.Weeks {
		// Taper and race weeks reduce load by design.
		if w.Phase == PhaseTaper || w.Phase == PhaseRace {
			sinceRecovery = 0
			continue
		}
		if !w.IsRecoveryWeek {
			sinceRecovery++
			if sinceRecovery > recoveryMaxGapWeeks {
				result.Warnings = append(result.Warnings, Issue{
					Week: w.WeekNumber, Rule: "plan_recovery_cadence",
					Message: fmt.Sprintf("%d consecutive weeks without recovery by week %d; schedule one every 4-5 weeks", sinceRecovery, w.WeekNumber),
				})
				sinceRecovery = 0 // one warning per overdue stretch
			}
			continue
		}

		sinceRecovery = 0
		if i == 0 {
			continue
		}
		prev := plan.Weeks[i-1].TargetVolumeKm
		if prev <= 0 {
			continue
		}
		ratio := w.TargetVolumeKm / prev
		if ratio < recoveryVolumeFraction-recoveryVolumeTolerance || ratio > recoveryVolumeFraction+recoveryVolumeTolerance {
			result.Warnings = append(result.Warnings, Issue{
				Week: w.WeekNumber, Rule: "plan_recovery_depth",
				Message: fmt.Sprintf("recovery week %d is %.0f%% of the preceding week; aim for ~%.0f%%", w.WeekNumber, ratio*100, recoveryVolumeFraction*100),
			})
		}
	}
}

// validateProgression runs the volume-progression guardrail on each
// week-over-week increase and attaches breaches as warnings.
func validateProgression(plan Plan, ctl float64, risk RiskContext, result *PlanValidationResult) {
	for i := 1; i < len(plan.Weeks); i++ {
		prev, cur := plan.Weeks[i-1], plan.Weeks[i]
		if cur.IsRecoveryWeek || cur.Phase == PhaseTaper || cur.Phase == PhaseRace {
			continue
		}
		sessions := len(cur.Workouts)
		check := CheckVolumeProgression(prev.TargetVolumeKm, cur.TargetVolumeKm, sessions, ctl, risk)
		for _, v := range check.Violations {
			result.Warnings = append(result.Warnings, Issue{
				Week: cur.WeekNumber, Rule: v.Rule,
				Message: fmt.Sprintf("week %d: %s", cur.WeekNumber, v.Message),
			})
		}
	}
}

// ValidateWeek checks a single week's structure: Monday-Sunday
// alignment, required workout fields, unique dates, and workout volume
// against the target within tolerance. Quality and long-run guardrail
// breaches are attached as warnings.
func ValidateWeek(week PlanWeek) PlanValidationResult {
	var result PlanValidationResult

	if week.StartDate.Weekday() != time.Monday {
		result.Errors = append(result.Errors, Issue{
			Week: week.WeekNumber, Rule: "week_start_monday",
			Message: fmt.Sprintf("week %d starts on %s, must start Monday", week.WeekNumber, week.StartDate.Weekday()),
		})
	}
	if week.EndDate.Weekday() != time.Sunday || !week.EndDate.Equal(week.StartDate.AddDate(0, 0, 6)) {
		result.Errors = append(result.Errors, Issue{
			Week: week.WeekNumber, Rule: "week_end_sunday",
			Message: fmt.Sprintf("week %d must end on the Sunday six days after its start", week.WeekNumber),
		})
	}

	seen := make(map[string]bool)
	var totalKm float64
	for i, w := range week.Workouts {
		if w.Date.IsZero() || w.Type == "" {
			result.Errors = append(result.Errors, Issue{
				Week: week.WeekNumber, Rule: "workout_required_fields",
				Message: fmt.Sprintf("week %d workout %d is missing a date or type", week.WeekNumber, i+1),
			})
			continue
		}
		if w.DistanceKm < 0 {
			result.Errors = append(result.Errors, Issue{
				Week: week.WeekNumber, Rule: "workout_required_fields",
				Message: fmt.Sprintf("week %d workout %d has negative distance", week.WeekNumber, i+1),
			})
			continue
		}
		key := w.Date.Format("2006-01-02")
		if seen[key] {
			result.Errors = append(result.Errors, Issue{
				Week: week.WeekNumber, Rule: "workout_duplicate_date",
				Message: fmt.Sprintf("week %d has two workouts on %s", week.WeekNumber, key),
			})
		}
		seen[key] = true
		if w.Date.Before(week.StartDate) || w.Date.After(week.EndDate) {
			result.Errors = append(result.Errors, Issue{
				Week: week.WeekNumber, Rule: "workout_outside_week",
				Message: fmt.Sprintf("week %d workout on %s falls outside the week", week.WeekNumber, key),
			})
		}
		totalKm += w.DistanceKm
	}

	validateWeekVolume(week, totalKm, &result)
	attachWeekGuardrails(week, &result)

	return result
}

func validateWeekVolume(week PlanWeek, totalKm float64, result *PlanValidationResult) {
	if week.TargetVolumeKm <= 0 {
		return
	}
	deviation := absFraction(totalKm-week.TargetVolumeKm) / week.TargetVolumeKm
	switch {
	case deviation < volumeTolerancePass:
		// within tolerance
	case deviation <= volumeToleranceWarn:
		result.Warnings = append(result.Warnings, Issue{
			Week: week.WeekNumber, Rule: "week_volume_tolerance",
			Message: fmt.Sprintf("week %d workouts sum to %.1f km, %.1f%% off the %.1f km target", week.WeekNumber, totalKm, deviation*100, week.TargetVolumeKm),
		})
	default:
		result.Errors = append(result.Errors, Issue{
			Week: week.WeekNumber, Rule: "week_volume_mismatch",
			Message: fmt.Sprintf("week %d workouts sum to %.1f km, %.1f%% off the %.1f km target (max 10%%)", week.WeekNumber, totalKm, deviation*100, week.TargetVolumeKm),
		})
	}
}

// attachWeekGuardrails runs the intensity and long-run guardrails over
// the week's workouts and records breaches as warnings.
func attachWeekGuardrails(week PlanWeek, result *PlanValidationResult) {
	var quality QualityVolumes
	var longRunKm, longRunMinutes float64

	for _, w := range week.Workouts {
		switch w.Type {
		case "tempo", "threshold":
			quality.TPaceKm += w.DistanceKm
		case "intervals":
			quality.IPaceKm += w.DistanceKm
		case "repetition":
			quality.RPaceKm += w.DistanceKm
		case "long":
			if w.DistanceKm > longRunKm {
				longRunKm = w.DistanceKm
				longRunMinutes = w.DurationMinutes
			}
		}
	}

	for _, v := range CheckQualityVolume(week.TargetVolumeKm, quality).Violations {
		result.Warnings = append(result.Warnings, Issue{
			Week: week.WeekNumber, Rule: v.Rule,
			Message: fmt.Sprintf("week %d: %s", week.WeekNumber, v.Message),
		})
	}
	if longRunKm > 0 {
		for _, v := range CheckLongRun(longRunMinutes, longRunKm, week.TargetVolumeKm).Violations {
			result.Warnings = append(result.Warnings, Issue{
				Week: week.WeekNumber, Rule: v.Rule,
				Message: fmt.Sprintf("week %d: %s", week.WeekNumber, v.Message),
			})
		}
	}
}

func absFraction(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
