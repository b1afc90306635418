package service

import (
	"time"

	"trainguard/internal/analysis"
	"trainguard/internal/guardrails"
	"trainguard/internal/store"
)

// PlanReport is the full validation verdict for a stored plan
type PlanReport struct {
	PlanID     string
	PlanName   string
	Goal       string
	TotalWeeks int
	RaceWeek   int

	// Validation against current fitness
	CurrentCTL float64
	Result     guardrails.PlanValidationResult

	// Context for the plan screen
	Recommendation     guardrails.VolumeRecommendation
	GoalDistanceMeters float64

	// Goal race-time prediction from the current VDOT estimate.
	// Nil VDOT (insufficient data) leaves the prediction at zero.
	VDOT                 *analysis.VDOTEstimate
	PredictedRaceSeconds int
}

// GetPlanReport validates a stored plan against the athlete's current
// chronic load and risk profile.
func (q *QueryService) GetPlanReport(planID string, now time.Time) (*PlanReport, error) {
	plan, err := q.store.GetPlan(planID)
	if err != nil {
		return nil, err
	}

	activities, _, err := q.loadActivities()
	if err != nil {
		return nil, err
	}

	ctx := q.athleteContext()
	snapshots, err := metricsThrough(activities, ctx, now)
	if err != nil {
		return nil, err
	}

	var ctl float64
	if len(snapshots) > 0 {
		ctl = snapshots[len(snapshots)-1].CTL
	}

	report := &PlanReport{
		PlanID:     plan.ID,
		PlanName:   plan.Name,
		Goal:       plan.Goal,
		TotalWeeks: plan.TotalWeeks,
		RaceWeek:   plan.RaceWeek,
		CurrentCTL: ctl,
	}

	report.Result = guardrails.ValidatePlan(toGuardrailsPlan(plan), ctl, q.riskContext())
	report.Recommendation = guardrails.RecommendVolume(ctl, plan.Goal)
	report.GoalDistanceMeters = guardrails.GoalDistanceMeters(plan.Goal)

	if est, estErr := analysis.EstimateVDOT(activities, ctx, now); estErr == nil {
		report.VDOT = est
		if report.GoalDistanceMeters > 0 {
			report.PredictedRaceSeconds = analysis.PredictTime(est.Value, report.GoalDistanceMeters)
		}
	}

	return report, nil
}

// PlanSummary is one row in the plan list
type PlanSummary struct {
	ID         string
	Name       string
	Goal       string
	TotalWeeks int
}

// ListPlans returns summaries of all stored plans
func (q *QueryService) ListPlans() ([]PlanSummary, error) {
	plans, err := q.store.ListPlans()
	if err != nil {
		return nil, err
	}

	summaries := make([]PlanSummary, len(plans))
	for i, p := range plans {
		summaries[i] = PlanSummary{
			ID:         p.ID,
			Name:       p.Name,
			Goal:       p.Goal,
			TotalWeeks: p.TotalWeeks,
		}
	}
	return summaries, nil
}

// NextWeekCheck validates a proposed next training week against the
// athlete's recent volume and current state.
type NextWeekCheck struct {
	PrevWeekKm float64
	ProposedKm float64
	Volume     guardrails.GuardrailResult
	Quality    guardrails.GuardrailResult
	LongRun    guardrails.GuardrailResult
	ACWR       guardrails.GuardrailResult
}

// CheckNextWeek runs the weekly guardrails for a proposed week: volume
// progression from last week's actual running volume, quality and long
// run caps, and the current ACWR zone.
func (q *QueryService) CheckNextWeek(proposedKm float64, sessions int, quality guardrails.QualityVolumes, longRunKm, longRunMinutes float64, now time.Time) (*NextWeekCheck, error) {
	activities, rows, err := q.loadActivities()
	if err != nil {
		return nil, err
	}

	ctx := q.athleteContext()
	snapshots, err := metricsThrough(activities, ctx, now)
	if err != nil {
		return nil, err
	}

	var ctl float64
	var acwr *float64
	if len(snapshots) > 0 {
		last := snapshots[len(snapshots)-1]
		ctl = last.CTL
		acwr = last.ACWR
	}

	check := &NextWeekCheck{ProposedKm: proposedKm}
	check.PrevWeekKm = lastWeekRunVolume(rows, now)
	check.Volume = guardrails.CheckVolumeProgression(check.PrevWeekKm, proposedKm, sessions, ctl, q.riskContext())
	check.Quality = guardrails.CheckQualityVolume(proposedKm, quality)
	check.LongRun = guardrails.CheckLongRun(longRunMinutes, longRunKm, proposedKm)
	check.ACWR = guardrails.CheckACWR(acwr)
	return check, nil
}

// lastWeekRunVolume sums run distance over the previous Monday-Sunday week
func lastWeekRunVolume(rows []store.Activity, now time.Time) float64 {
	weekStart := startOfWeek(now).AddDate(0, 0, -7)
	weekEnd := weekStart.AddDate(0, 0, 6)

	var km float64
	for _, a := range rows {
		if a.Sport != string(analysis.SportRun) || a.DistanceKm == nil {
			continue
		}
		if a.Date.Before(weekStart) || a.Date.After(weekEnd) {
			continue
		}
		km += *a.DistanceKm
	}
	return km
}
