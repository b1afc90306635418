// Package guardrails validates training volume, intensity, and plan
// structure against evidence-based safety rules. Breaches are returned
// as structured data so callers can block, warn, or override; nothing
// here panics or treats a domain problem as an exception.
package guardrails

import (
	"time"

	"trainguard/internal/analysis"
)

// Violation is one named breach of a guardrail.
type Violation struct {
	Rule    string  // e.g. "quality_volume_t_pace"
	Message string  // human-readable description with offending value and limit
	Value   float64 // the offending value
	Limit   float64 // the limit it breached
}

// GuardrailResult is the structured verdict of one guardrail check.
type GuardrailResult struct {
	OK                bool
	Violations        []Violation
	RiskFactors       []string
	ProtectiveFactors []string
	Recommendation    string
}

// RiskContext carries athlete attributes that move a progression from
// acceptable to risky.
type RiskContext struct {
	RecentInjury bool
	Age          int
}

// mastersAge is the age at or above which progression risk increases.
const mastersAge = 40

// Phase labels a block of a training plan.
type Phase string

const (
	PhaseBase  Phase = "base"
	PhaseBuild Phase = "build"
	PhasePeak  Phase = "peak"
	PhaseTaper Phase = "taper"
	PhaseRace  Phase = "race"
)

// Workout is a single planned session within a week.
type Workout struct {
	Date            time.Time
	Type            string // "easy", "long", "tempo", "intervals", "repetition", "rest"
	DistanceKm      float64
	DurationMinutes float64
	Description     string
}

// PlanWeek is one Monday-Sunday week of a training plan.
type PlanWeek struct {
	WeekNumber     int
	Phase          Phase
	StartDate      time.Time // must be a Monday
	EndDate        time.Time // must be the following Sunday
	TargetVolumeKm float64
	IsRecoveryWeek bool
	Workouts       []Workout
}

// Plan is a multi-week macro training plan.
type Plan struct {
	Name       string
	Goal       string // "5k", "10k", "half_marathon", "marathon"
	TotalWeeks int
	RaceWeek   int // 1-based week number of the goal race
	Weeks      []PlanWeek
}

// Issue is one problem found during plan validation. Fatal issues are
// errors; the rest are warnings.
type Issue struct {
	Week    int // 0 for plan-level issues
	Rule    string
	Message string
}

// PlanValidationResult separates fatal structural problems from
// advisory warnings.
type PlanValidationResult struct {
	Errors   []Issue
	Warnings []Issue
}

// OK reports whether the plan passed with no fatal issues.
func (r PlanValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// GoalDistanceMeters maps a plan goal to its race distance.
func GoalDistanceMeters(goal string) float64 {
	switch goal {
	case "5k":
		return analysis.Distance5K
	case "10k":
		return analysis.Distance10K
	case "half_marathon":
		return analysis.DistanceHalfMara
	case "marathon":
		return analysis.DistanceMarathon
	default:
		return 0
	}
}
