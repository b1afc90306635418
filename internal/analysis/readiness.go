package analysis

import (
	"strings"
	"time"
)

// Readiness component weights. When the note-derived signals (sleep,
// wellness) are absent their weight is redistributed proportionally
// across the remaining components, never treated as a zero score.
const (
	tsbWeight      = 0.20
	trendWeight    = 0.25
	sleepWeight    = 0.25
	wellnessWeight = 0.30
)

// readinessNotesWindowDays is how far back activity notes are scanned
// for sleep and wellness signals.
const readinessNotesWindowDays = 7

// Readiness is the 0-100 composite readiness score with its inputs.
type Readiness struct {
	Score    float64
	Band     string
	TSBScore float64
	Trend    float64 // TSB slope, points per day over the last week
	Sleep    *float64
	Wellness *float64
}

// sleep keyword sets. Matching is substring-based over lowercased notes.
var (
	sleepPositive = []string{"slept well", "good sleep", "well rested", "rested", "8 hours"}
	sleepNegative = []string{"poor sleep", "bad sleep", "insomnia", "slept badly", "no sleep", "restless night"}

	wellnessPositive = []string{"feeling great", "felt great", "strong", "fresh", "easy effort", "energized", "smooth"}
	wellnessNegative = []string{"tired", "exhausted", "sore", "fatigued", "stressed", "sick", "heavy legs", "struggled", "niggle"}
)

// ComputeReadiness combines TSB level, the 7-day TSB trend, and
// note-derived sleep and wellness signals into a 0-100 score.
func ComputeReadiness(snapshots []MetricsSnapshot, activities []Activity, now time.Time) Readiness {
	r := Readiness{}
	if len(snapshots) == 0 {
		r.Band = readinessBand(0)
		return r
	}

	current := snapshots[len(snapshots)-1]
	r.TSBScore = scaleTSB(current.TSB)
	r.Trend = tsbTrend(snapshots)

	notes := recentNotes(activities, now)
	r.Sleep = keywordScore(notes, sleepPositive, sleepNegative)
	r.Wellness = keywordScore(notes, wellnessPositive, wellnessNegative)

	type component struct {
		score  float64
		weight float64
	}
	components := []component{
		{r.TSBScore, tsbWeight},
		{scaleTrend(r.Trend), trendWeight},
	}
	if r.Sleep != nil {
		components = append(components, component{*r.Sleep, sleepWeight})
	}
	if r.Wellness != nil {
		components = append(components, component{*r.Wellness, wellnessWeight})
	}

	var weighted, totalWeight float64
	for _, c := range components {
		weighted += c.score * c.weight
		totalWeight += c.weight
	}
	r.Score = weighted / totalWeight
	r.Band = readinessBand(r.Score)
	return r
}

// scaleTSB maps TSB to 0-100: -25 or worse scores 0, +25 or better 100.
func scaleTSB(tsb float64) float64 {
	return clamp(50+tsb*2, 0, 100)
}

// scaleTrend maps a TSB slope (points/day) to 0-100. A slope of +-3 per
// day saturates the scale.
func scaleTrend(slope float64) float64 {
	return clamp(50+slope*(50.0/3.0), 0, 100)
}

// tsbTrend is the least-squares slope of TSB over the last 7 snapshots.
func tsbTrend(snapshots []MetricsSnapshot) float64 {
	n := len(snapshots)
	window := 7
	if n < window {
		window = n
	}
	if window < 2 {
		return 0
	}
	recent := snapshots[n-window:]

	var sumX, sumY, sumXY, sumXX float64
	for i, s := range recent {
		x := float64(i)
		sumX += x
		sumY += s.TSB
		sumXY += x * s.TSB
		sumXX += x * x
	}
	fn := float64(window)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}

// recentNotes collects lowercased notes from the last week's activities.
func recentNotes(activities []Activity, now time.Time) []string {
	cutoff := day(now).AddDate(0, 0, -readinessNotesWindowDays)
	var notes []string
	for _, a := range activities {
		if a.Notes == "" || day(a.Date).Before(cutoff) {
			continue
		}
		notes = append(notes, strings.ToLower(a.Notes))
	}
	return notes
}

// keywordScore scores notes against a positive/negative keyword set.
// Returns nil when no keyword from either set appears, so the caller
// can treat the signal as absent.
func keywordScore(notes []string, positive, negative []string) *float64 {
	pos, neg := 0, 0
	for _, note := range notes {
		for _, kw := range positive {
			if strings.Contains(note, kw) {
				pos++
			}
		}
		for _, kw := range negative {
			if strings.Contains(note, kw) {
				neg++
			}
		}
	}
	if pos == 0 && neg == 0 {
		return nil
	}
	score := clamp(50+float64(pos-neg)*15, 0, 100)
	return &score
}

// readinessBand labels a readiness score.
func readinessBand(score float64) string {
	switch {
	case score > 85:
		return "excellent"
	case score > 70:
		return "good"
	case score >= 50:
		return "moderate"
	case score >= 35:
		return "low"
	default:
		return "very low"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
