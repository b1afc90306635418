package analysis

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Race evidence is used directly when fresh, decayed when stale.
const raceFreshnessDays = 90

// Continuity-aware decay tuning. The bracket endpoints come from the
// Daniels detraining guidance, which gives ranges rather than exact
// figures; each endpoint is a named constant so it can be tuned.
const (
	// A training history with at least this fraction of active weeks
	// since the race caps decay at highContinuityMaxDecay, no matter
	// how old the race is.
	continuityThreshold    = 0.75
	highContinuityMaxDecay = 0.03

	// Break-length brackets (days) and their decay ranges. Decay is
	// interpolated linearly across each bracket, so it is
	// non-decreasing in break length.
	shortBreakMaxDays = 5

	moderateBreakMaxDays = 28
	moderateDecayMin     = 0.01
	moderateDecayMax     = 0.07

	longBreakMaxDays = 56
	longDecayMin     = 0.08
	longDecayMax     = 0.12

	extendedDecayMin      = 0.12
	extendedDecayMax      = 0.20
	extendedDecayRampDays = 112 // break length at which decay hits the cap

	// Decay credit in the 29-56 day bracket when aerobic load was
	// maintained through cross-training.
	crossTrainingDecayCredit = 0.03

	// CTL at estimation time must be at least this fraction of CTL at
	// race time to count as maintained aerobic load.
	ctlStabilityRatio = 0.9
)

// Pace evidence tuning.
const (
	// QualityPaceThreshold is the pace (min/km) below which a sustained
	// run segment counts as a quality workout.
	QualityPaceThreshold = 6.0

	qualityMinDistanceKm   = 1.0
	paceEvidenceWindowDays = 60

	// Easy runs are classified by HR zone: 65-78% of max HR.
	easyZoneLowFraction  = 0.65
	easyZoneHighFraction = 0.78

	// A decayed race estimate is pulled toward independent pace
	// evidence when the two disagree by more than this many points.
	paceAgreementTolerance = 2.0

	// Pace-only estimates need this many data points for medium
	// confidence.
	paceMediumConfidenceMin = 3
)

// qualityKeywords flag a workout as a quality session from its notes.
var qualityKeywords = []string{"interval", "tempo", "threshold", "repeats", "fartlek", "track workout", "race"}

// EstimateVDOT infers running fitness from the athlete's race results
// and pace evidence, in priority order:
//
//  1. A race within the last 90 days is used directly.
//  2. A stale race is decayed based on training continuity since the
//     race, then cross-checked against independent pace evidence.
//  3. With no usable race, the median of pace-evidence VDOTs is used.
//  4. With neither, an error wrapping ErrInsufficientData is returned.
//     Training volume (CTL) is never substituted: volume measures
//     quantity, not pace capability.
func EstimateVDOT(activities []Activity, ctx AthleteContext, now time.Time) (*VDOTEstimate, error) {
	race := latestRace(ctx.PersonalBests)
	evidence := PaceEvidence(activities, ctx, now)

	if race != nil {
		raceVDOT := CalculateVDOT(race.DistanceMeters, race.DurationSeconds)
		ageDays := int(day(now).Sub(day(race.AchievedAt)).Hours() / 24)

		if ageDays < raceFreshnessDays {
			return clampedEstimate(raceVDOT, "high",
				fmt.Sprintf("race result from %d days ago", ageDays)), nil
		}

		decay, reason := raceDecay(activities, ctx, race.AchievedAt, now)
		value := raceVDOT * (1 - decay)
		source := fmt.Sprintf("race result from %d days ago, decayed %.1f%% (%s)", ageDays, decay*100, reason)

		if median, ok := medianVDOT(evidence); ok && absFloat(median-value) > paceAgreementTolerance {
			value = (value + median) / 2
			source += fmt.Sprintf(", adjusted toward pace evidence (%.1f)", median)
		}
		return clampedEstimate(value, "medium", source), nil
	}

	if median, ok := medianVDOT(evidence); ok {
		confidence := "low"
		if len(evidence) >= paceMediumConfidenceMin {
			confidence = "medium"
		}
		return clampedEstimate(median, confidence,
			fmt.Sprintf("median of %d pace data points", len(evidence))), nil
	}

	return nil, fmt.Errorf("%w: no race result and no pace evidence", ErrInsufficientData)
}

// raceDecay computes the fitness decay fraction for a stale race and a
// short description of why.
func raceDecay(activities []Activity, ctx AthleteContext, raceDate, now time.Time) (float64, string) {
	continuity := Continuity(activities, raceDate, now)
	if continuity >= continuityThreshold {
		// Consistent training holds fitness; scale the small residual
		// decay with elapsed time up to a year.
		elapsed := day(now).Sub(day(raceDate)).Hours() / 24
		frac := clamp(elapsed/365, 0, 1)
		return highContinuityMaxDecay * frac, fmt.Sprintf("%.0f%% training continuity", continuity*100)
	}

	breaks := DetectBreaks(activities, raceDate, now)
	longest := LongestBreak(breaks)
	decay := decayForBreak(longest)

	reason := fmt.Sprintf("longest break %d days", longest)
	if longest > moderateBreakMaxDays && longest <= longBreakMaxDays && aerobicLoadMaintained(activities, ctx, raceDate, now) {
		reduced := decay - crossTrainingDecayCredit
		if reduced < longDecayMin {
			reduced = longDecayMin
		}
		decay = reduced
		reason += ", cross-training maintained aerobic load"
	}
	return decay, reason
}

// decayForBreak maps the longest break length to a decay fraction.
// Within each bracket the decay interpolates linearly from the
// bracket's minimum to its maximum.
func decayForBreak(breakDays int) float64 {
	switch {
	case breakDays <= shortBreakMaxDays:
		return 0
	case breakDays <= moderateBreakMaxDays:
		return lerp(moderateDecayMin, moderateDecayMax,
			float64(breakDays-shortBreakMaxDays-1)/float64(moderateBreakMaxDays-shortBreakMaxDays-1))
	case breakDays <= longBreakMaxDays:
		return lerp(longDecayMin, longDecayMax,
			float64(breakDays-moderateBreakMaxDays-1)/float64(longBreakMaxDays-moderateBreakMaxDays-1))
	default:
		frac := clamp(float64(breakDays-longBreakMaxDays)/float64(extendedDecayRampDays-longBreakMaxDays), 0, 1)
		return lerp(extendedDecayMin, extendedDecayMax, frac)
	}
}

// aerobicLoadMaintained reports whether systemic CTL at estimation time
// is within ctlStabilityRatio of its value at the race date.
// Cross-training counts: the systemic load stream covers all sports.
func aerobicLoadMaintained(activities []Activity, ctx AthleteContext, raceDate, now time.Time) bool {
	var loads []DailyLoad
	for _, a := range activities {
		l, err := ComputeLoad(a, ctx)
		if err != nil {
			continue // unscoreable activities don't disqualify the rest
		}
		loads = append(loads, l)
	}
	snapshots := ComputeMetricsThrough(AggregateDaily(loads), now)
	if len(snapshots) == 0 {
		return false
	}

	var atRace, current float64
	current = snapshots[len(snapshots)-1].CTL
	raceDay := day(raceDate)
	for _, s := range snapshots {
		if s.Date.After(raceDay) {
			break
		}
		atRace = s.CTL
	}
	if atRace <= 0 {
		return false
	}
	return current/atRace >= ctlStabilityRatio
}

// PaceEvidence extracts VDOT-bearing pace data points from recent runs:
// quality workouts flagged by keywords or sustained fast pace, and easy
// runs classified by heart-rate zone when max HR is known.
func PaceEvidence(activities []Activity, ctx AthleteContext, now time.Time) []PaceDataPoint {
	cutoff := day(now).AddDate(0, 0, -paceEvidenceWindowDays)
	var points []PaceDataPoint

	for _, a := range activities {
		if a.Sport != SportRun || a.DistanceKm == nil || *a.DistanceKm < qualityMinDistanceKm {
			continue
		}
		if day(a.Date).Before(cutoff) {
			continue
		}
		pace := a.DurationMinutes / *a.DistanceKm
		if pace <= 0 {
			continue
		}

		if isQualityWorkout(a, pace) {
			if v := vdotFromQualityPace(pace); v > 0 {
				points = append(points, PaceDataPoint{
					Date: day(a.Date), PacePerKm: pace, InferredVDOT: v, Method: MethodQualityKeyword,
				})
			}
			continue
		}

		if isEasyRun(a, ctx) {
			if v := vdotFromEasyPace(pace); v > 0 {
				points = append(points, PaceDataPoint{
					Date: day(a.Date), PacePerKm: pace, InferredVDOT: v, Method: MethodHRZone,
				})
			}
		}
	}
	return points
}

// isQualityWorkout detects quality sessions by notes keywords or by a
// sustained pace under the quality threshold.
func isQualityWorkout(a Activity, paceMinPerKm float64) bool {
	if paceMinPerKm < QualityPaceThreshold {
		return true
	}
	notes := strings.ToLower(a.Notes)
	for _, kw := range qualityKeywords {
		if strings.Contains(notes, kw) {
			return true
		}
	}
	return false
}

// isEasyRun reports whether the run's average HR sits in the easy zone
// (65-78% of max HR). Requires both HR data and a configured max HR.
func isEasyRun(a Activity, ctx AthleteContext) bool {
	if a.AvgHR == nil || ctx.MaxHR == nil || *ctx.MaxHR <= 0 {
		return false
	}
	ratio := *a.AvgHR / *ctx.MaxHR
	return ratio >= easyZoneLowFraction && ratio <= easyZoneHighFraction
}

// latestRace returns the most recent personal best, or nil.
func latestRace(bests []PersonalBest) *PersonalBest {
	var latest *PersonalBest
	for i := range bests {
		pb := &bests[i]
		if pb.DistanceMeters <= 0 || pb.DurationSeconds <= 0 {
			continue
		}
		if latest == nil || pb.AchievedAt.After(latest.AchievedAt) {
			latest = pb
		}
	}
	return latest
}

// medianVDOT returns the median inferred VDOT across pace data points.
func medianVDOT(points []PaceDataPoint) (float64, bool) {
	if len(points) == 0 {
		return 0, false
	}
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.InferredVDOT
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid], true
	}
	return (values[mid-1] + values[mid]) / 2, true
}

func clampedEstimate(value float64, confidence, source string) *VDOTEstimate {
	return &VDOTEstimate{
		Value:      clamp(value, MinVDOT, MaxVDOT),
		Confidence: confidence,
		Source:     source,
	}
}

func lerp(lo, hi, frac float64) float64 {
	return lo + (hi-lo)*clamp(frac, 0, 1)
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
