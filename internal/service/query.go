package service

import (
	"time"

	"trainguard/internal/analysis"
	"trainguard/internal/config"
	"trainguard/internal/guardrails"
	"trainguard/internal/store"
)

// QueryService provides read-only queries for the TUI
type QueryService struct {
	store *store.DB
	cfg   *config.Config
}

// NewQueryService creates a new query service
func NewQueryService(db *store.DB, cfg *config.Config) *QueryService {
	if cfg == nil {
		defaults := config.DefaultConfig()
		cfg = &defaults
	}
	return &QueryService{store: db, cfg: cfg}
}

// athleteContext builds the analysis context from the configured
// athlete profile.
func (q *QueryService) athleteContext() analysis.AthleteContext {
	ctx := analysis.AthleteContext{
		RunningPriority: q.cfg.Athlete.RunningPriority,
	}
	if q.cfg.Athlete.MaxHR > 0 {
		maxHR := q.cfg.Athlete.MaxHR
		ctx.MaxHR = &maxHR
	}
	if q.cfg.Athlete.RestingHR > 0 {
		restingHR := q.cfg.Athlete.RestingHR
		ctx.RestingHR = &restingHR
	}
	for _, pb := range q.cfg.Athlete.PersonalBests {
		ctx.PersonalBests = append(ctx.PersonalBests, analysis.PersonalBest{
			DistanceMeters:  pb.DistanceMeters,
			DurationSeconds: int(pb.DurationSeconds),
			AchievedAt:      pb.AchievedAt,
		})
	}
	return ctx
}

// riskContext builds the guardrail risk context from the athlete profile
func (q *QueryService) riskContext() guardrails.RiskContext {
	return guardrails.RiskContext{
		RecentInjury: q.cfg.Athlete.RecentInjury,
		Age:          q.cfg.Athlete.Age,
	}
}

// loadActivities reads all stored activities and converts them to the
// analysis representation, preserving chronological order.
func (q *QueryService) loadActivities() ([]analysis.Activity, []store.Activity, error) {
	rows, err := q.store.ListActivities()
	if err != nil {
		return nil, nil, err
	}

	activities := make([]analysis.Activity, len(rows))
	for i, row := range rows {
		activities[i] = toAnalysisActivity(row)
	}
	return activities, rows, nil
}

func toAnalysisActivity(row store.Activity) analysis.Activity {
	return analysis.Activity{
		Date:            row.Date,
		Sport:           analysis.Sport(row.Sport),
		DurationMinutes: row.DurationMinutes,
		DistanceKm:      row.DistanceKm,
		RPE:             row.RPE,
		AvgHR:           row.AvgHR,
		Notes:           row.Notes,
	}
}

// GetActivities returns all stored activities, newest first
func (q *QueryService) GetActivities() ([]store.Activity, error) {
	rows, err := q.store.ListActivities()
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// toGuardrailsPlan converts a stored plan to the validation representation
func toGuardrailsPlan(p *store.Plan) guardrails.Plan {
	plan := guardrails.Plan{
		Name:       p.Name,
		Goal:       p.Goal,
		TotalWeeks: p.TotalWeeks,
		RaceWeek:   p.RaceWeek,
	}
	for _, w := range p.Weeks {
		week := guardrails.PlanWeek{
			WeekNumber:     w.WeekNumber,
			Phase:          guardrails.Phase(w.Phase),
			StartDate:      w.StartDate,
			EndDate:        w.EndDate,
			TargetVolumeKm: w.TargetVolumeKm,
			IsRecoveryWeek: w.IsRecoveryWeek,
		}
		for _, wo := range w.Workouts {
			week.Workouts = append(week.Workouts, guardrails.Workout{
				Date:            wo.Date,
				Type:            wo.Type,
				DistanceKm:      wo.DistanceKm,
				DurationMinutes: wo.DurationMinutes,
				Description:     wo.Description,
			})
		}
		plan.Weeks = append(plan.Weeks, week)
	}
	return plan
}

// metricsThrough replays daily loads and decays the metrics up to the
// given day so a quiet week still shows up as falling CTL and ATL.
func metricsThrough(activities []analysis.Activity, ctx analysis.AthleteContext, now time.Time) ([]analysis.MetricsSnapshot, error) {
	loads, err := analysis.ComputeLoads(activities, ctx)
	if err != nil {
		return nil, err
	}
	return analysis.ComputeMetricsThrough(loads, now), nil
}
