package analysis

import (
	"testing"
)

// flatSnapshots builds a constant-TSB history ending at the given day.
func flatSnapshots(tsb float64, days int) []MetricsSnapshot {
	snapshots := make([]MetricsSnapshot, days)
	for i := range snapshots {
		snapshots[i] = MetricsSnapshot{
			Date: date(2026, 3, 1).AddDate(0, 0, i),
			CTL:  50,
			ATL:  50 - tsb,
			TSB:  tsb,
		}
	}
	return snapshots
}

func TestComputeReadiness_WeightRedistribution(t *testing.T) {
	// No notes at all: only TSB (20%) and trend (25%) contribute, and
	// their weights are renormalized rather than scoring sleep and
	// wellness as zero.
	snapshots := flatSnapshots(0, 10)
	r := ComputeReadiness(snapshots, nil, date(2026, 3, 10))

	if r.Sleep != nil || r.Wellness != nil {
		t.Fatalf("expected absent text signals, got sleep=%v wellness=%v", r.Sleep, r.Wellness)
	}
	// Flat TSB at 0: level scores 50, slope scores 50, so the composite
	// must be exactly 50 regardless of redistribution arithmetic.
	if r.Score != 50 {
		t.Errorf("Score = %v, want 50", r.Score)
	}
}

func TestComputeReadiness_NotesSignals(t *testing.T) {
	snapshots := flatSnapshots(5, 10)
	activities := []Activity{
		{Date: date(2026, 3, 9), Sport: SportRun, DurationMinutes: 40, Notes: "Slept well, legs felt fresh"},
		{Date: date(2026, 3, 10), Sport: SportRun, DurationMinutes: 40, Notes: "Feeling great today"},
	}

	r := ComputeReadiness(snapshots, activities, date(2026, 3, 10))
	if r.Sleep == nil {
		t.Fatal("sleep signal absent despite sleep keywords")
	}
	if *r.Sleep <= 50 {
		t.Errorf("sleep score = %v, want > 50 for positive keywords", *r.Sleep)
	}
	if r.Wellness == nil || *r.Wellness <= 50 {
		t.Errorf("wellness = %v, want > 50 for positive keywords", r.Wellness)
	}
}

func TestComputeReadiness_NegativeNotes(t *testing.T) {
	snapshots := flatSnapshots(0, 10)
	activities := []Activity{
		{Date: date(2026, 3, 10), Sport: SportRun, DurationMinutes: 40, Notes: "Poor sleep, exhausted and sore"},
	}

	r := ComputeReadiness(snapshots, activities, date(2026, 3, 10))
	if r.Sleep == nil || *r.Sleep >= 50 {
		t.Errorf("sleep = %v, want < 50 for negative keywords", r.Sleep)
	}
	if r.Wellness == nil || *r.Wellness >= 50 {
		t.Errorf("wellness = %v, want < 50 for negative keywords", r.Wellness)
	}
	if r.Score >= 50 {
		t.Errorf("composite = %v, want < 50 with negative signals", r.Score)
	}
}

func TestComputeReadiness_StaleNotesIgnored(t *testing.T) {
	snapshots := flatSnapshots(0, 10)
	activities := []Activity{
		{Date: date(2026, 2, 1), Sport: SportRun, DurationMinutes: 40, Notes: "exhausted"},
	}

	r := ComputeReadiness(snapshots, activities, date(2026, 3, 10))
	if r.Wellness != nil {
		t.Errorf("wellness = %v from a note outside the 7-day window, want absent", *r.Wellness)
	}
}

func TestReadinessBand(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{20, "very low"},
		{34.9, "very low"},
		{35, "low"},
		{49.9, "low"},
		{50, "moderate"},
		{70, "moderate"},
		{70.1, "good"},
		{85, "good"},
		{85.1, "excellent"},
	}
	for _, tt := range tests {
		if got := readinessBand(tt.score); got != tt.want {
			t.Errorf("readinessBand(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestTSBTrend(t *testing.T) {
	// Rising TSB by exactly 2 per day gives slope 2.
	snapshots := make([]MetricsSnapshot, 7)
	for i := range snapshots {
		snapshots[i] = MetricsSnapshot{TSB: float64(i) * 2}
	}
	if got := tsbTrend(snapshots); got < 1.99 || got > 2.01 {
		t.Errorf("tsbTrend() = %v, want 2", got)
	}
}
