package analysis

import (
	"math"
	"sort"
	"time"
)

// EMA time constants in days. CTL tracks fitness, ATL fatigue.
const (
	CTLTimeConstant = 42.0
	ATLTimeConstant = 7.0
)

// smoothing factors: alpha = 1 - e^(-1/tau)
var (
	ctlAlpha = 1 - math.Exp(-1/CTLTimeConstant)
	atlAlpha = 1 - math.Exp(-1/ATLTimeConstant)
)

// ComputeMetrics replays a load history into daily CTL/ATL/TSB/ACWR
// snapshots, one per day from the first loaded day through the last.
// Days with no load still decay both averages. The result is a pure
// function of the input: replaying the same history is bit-for-bit
// idempotent. ACWR is left nil on days where CTL is zero.
func ComputeMetrics(loads []DailyLoad) []MetricsSnapshot {
	if len(loads) == 0 {
		return nil
	}

	sorted := make([]DailyLoad, len(loads))
	copy(sorted, loads)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	loadMap := make(map[string]float64)
	for _, l := range sorted {
		loadMap[dateKey(l.Date)] += l.SystemicAU
	}

	start := day(sorted[0].Date)
	end := day(sorted[len(sorted)-1].Date)

	var snapshots []MetricsSnapshot
	var ctl, atl float64

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		load := loadMap[dateKey(d)] // zero on rest days

		ctl += ctlAlpha * (load - ctl)
		atl += atlAlpha * (load - atl)

		snap := MetricsSnapshot{
			Date: d,
			CTL:  ctl,
			ATL:  atl,
			TSB:  ctl - atl,
		}
		if ctl > 0 {
			acwr := atl / ctl
			snap.ACWR = &acwr
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots
}

// ComputeMetricsThrough extends the replay past the last activity up to
// the given day, so current fitness reflects decay since the athlete
// last trained.
func ComputeMetricsThrough(loads []DailyLoad, through time.Time) []MetricsSnapshot {
	snapshots := ComputeMetrics(loads)
	if len(snapshots) == 0 {
		return nil
	}

	last := snapshots[len(snapshots)-1]
	ctl, atl := last.CTL, last.ATL
	for d := last.Date.AddDate(0, 0, 1); !d.After(day(through)); d = d.AddDate(0, 0, 1) {
		ctl += ctlAlpha * (0 - ctl)
		atl += atlAlpha * (0 - atl)
		snap := MetricsSnapshot{Date: d, CTL: ctl, ATL: atl, TSB: ctl - atl}
		if ctl > 0 {
			acwr := atl / ctl
			snap.ACWR = &acwr
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots
}

// CurrentMetrics returns the most recent snapshot, or a zero value if
// there is no history.
func CurrentMetrics(loads []DailyLoad) MetricsSnapshot {
	snapshots := ComputeMetrics(loads)
	if len(snapshots) == 0 {
		return MetricsSnapshot{}
	}
	return snapshots[len(snapshots)-1]
}

// FormDescription returns a human-readable description of TSB.
func FormDescription(tsb float64) string {
	switch {
	case tsb > 25:
		return "Very fresh (possibly detrained)"
	case tsb > 10:
		return "Fresh and ready to race"
	case tsb > 0:
		return "Neutral - good for training"
	case tsb > -10:
		return "Slightly fatigued"
	case tsb > -25:
		return "Tired but building fitness"
	default:
		return "Very fatigued - rest needed"
	}
}
