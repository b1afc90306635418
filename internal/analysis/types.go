package analysis

import "time"

// Sport identifies the activity type. The set is closed; anything the
// importer can't map lands on SportOther and is scored with the
// running-equivalent default multipliers.
type Sport string

const (
	SportRun        Sport = "run"
	SportRide       Sport = "ride"
	SportSwim       Sport = "swim"
	SportStrength   Sport = "strength"
	SportElliptical Sport = "elliptical"
	SportHike       Sport = "hike"
	SportWalk       Sport = "walk"
	SportRow        Sport = "row"
	SportSki        Sport = "ski"
	SportOther      Sport = "other"
)

// Activity is a single normalized training session. Activities are
// supplied by the store/importer and are read-only to this package.
type Activity struct {
	Date            time.Time
	Sport           Sport
	DurationMinutes float64
	DistanceKm      *float64 // nil for non-distance sports
	RPE             *float64 // 1-10, nil when not recorded
	AvgHR           *float64 // bpm, nil when no HR data
	Notes           string
}

// AthleteContext carries the athlete profile every computation needs.
// It is passed explicitly into each call; this package holds no
// process-wide athlete state.
type AthleteContext struct {
	MaxHR           *float64
	RestingHR       *float64
	PersonalBests   []PersonalBest
	RunningPriority bool
}

// PersonalBest is a race result from the athlete profile.
type PersonalBest struct {
	DistanceMeters  float64
	DurationSeconds int
	AchievedAt      time.Time
}

// DailyLoad is the training load derived from one activity, or the
// per-day aggregate of several.
type DailyLoad struct {
	Date        time.Time
	SystemicAU  float64
	LowerBodyAU float64
}

// MetricsSnapshot holds the smoothed load metrics for one day.
// ACWR is nil while CTL is zero: the ratio is undefined, not 0 or 1.
type MetricsSnapshot struct {
	Date time.Time
	CTL  float64
	ATL  float64
	TSB  float64
	ACWR *float64
}

// TrainingBreak is a run of consecutive Monday-Sunday weeks with no
// recorded activity.
type TrainingBreak struct {
	Start time.Time // Monday of the first inactive week
	End   time.Time // Sunday of the last inactive week
	Days  int
}

// PaceMethod records how a pace data point was classified.
type PaceMethod string

const (
	MethodQualityKeyword PaceMethod = "quality_keyword"
	MethodHRZone         PaceMethod = "hr_zone"
)

// PaceDataPoint is one piece of pace evidence for VDOT inference.
type PaceDataPoint struct {
	Date         time.Time
	PacePerKm    float64 // minutes per km
	InferredVDOT float64
	Method       PaceMethod
}

// VDOTEstimate is the running-fitness estimate with its provenance.
type VDOTEstimate struct {
	Value      float64 // clamped to [30, 85]
	Confidence string  // "high", "medium", "low"
	Source     string
}

// day truncates a timestamp to midnight UTC.
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dateKey formats a day for map keys.
func dateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
