package analysis

import (
	"math"
	"testing"
)

func TestComputeMetrics_Invariants(t *testing.T) {
	loads := []DailyLoad{
		{Date: date(2026, 1, 5), SystemicAU: 300},
		{Date: date(2026, 1, 7), SystemicAU: 450},
		{Date: date(2026, 1, 12), SystemicAU: 200},
	}

	snapshots := ComputeMetrics(loads)
	if len(snapshots) != 8 {
		t.Fatalf("got %d snapshots, want 8 (one per day Jan 5-12)", len(snapshots))
	}

	for _, s := range snapshots {
		if math.Abs(s.TSB-(s.CTL-s.ATL)) > 1e-9 {
			t.Errorf("%s: TSB = %v, want CTL-ATL = %v", s.Date.Format("2006-01-02"), s.TSB, s.CTL-s.ATL)
		}
		if s.CTL > 0 && s.ACWR == nil {
			t.Errorf("%s: ACWR nil with CTL %v > 0", s.Date.Format("2006-01-02"), s.CTL)
		}
		if s.ACWR != nil && math.Abs(*s.ACWR-s.ATL/s.CTL) > 1e-9 {
			t.Errorf("%s: ACWR = %v, want ATL/CTL = %v", s.Date.Format("2006-01-02"), *s.ACWR, s.ATL/s.CTL)
		}
	}
}

func TestComputeMetrics_Idempotent(t *testing.T) {
	loads := []DailyLoad{
		{Date: date(2026, 1, 5), SystemicAU: 300},
		{Date: date(2026, 1, 8), SystemicAU: 420},
		{Date: date(2026, 2, 1), SystemicAU: 180},
	}

	first := ComputeMetrics(loads)
	second := ComputeMetrics(loads)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].CTL != second[i].CTL || first[i].ATL != second[i].ATL || first[i].TSB != second[i].TSB {
			t.Errorf("day %d: replay differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestComputeMetrics_RestDaysDecay(t *testing.T) {
	loads := []DailyLoad{
		{Date: date(2026, 1, 5), SystemicAU: 500},
		{Date: date(2026, 1, 15), SystemicAU: 1}, // forces replay through the gap
	}

	snapshots := ComputeMetrics(loads)
	// ATL after the loaded day must fall monotonically through the rest days.
	for i := 2; i < len(snapshots)-1; i++ {
		if snapshots[i].ATL >= snapshots[i-1].ATL {
			t.Errorf("day %d: ATL %v did not decay from %v", i, snapshots[i].ATL, snapshots[i-1].ATL)
		}
	}
}

func TestComputeMetrics_ACWRUndefinedAtZeroCTL(t *testing.T) {
	loads := []DailyLoad{
		{Date: date(2026, 1, 5), SystemicAU: 0},
		{Date: date(2026, 1, 6), SystemicAU: 0},
	}

	snapshots := ComputeMetrics(loads)
	for _, s := range snapshots {
		if s.ACWR != nil {
			t.Errorf("%s: ACWR = %v with zero CTL, want nil (undefined, not 0 or 1)",
				s.Date.Format("2006-01-02"), *s.ACWR)
		}
	}
}

func TestComputeMetrics_SmoothingConstants(t *testing.T) {
	// Single loaded day: CTL_1 = load * (1 - e^(-1/42)).
	loads := []DailyLoad{{Date: date(2026, 1, 5), SystemicAU: 100}}
	snapshots := ComputeMetrics(loads)
	if len(snapshots) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(snapshots))
	}

	wantCTL := 100 * (1 - math.Exp(-1.0/42))
	wantATL := 100 * (1 - math.Exp(-1.0/7))
	if math.Abs(snapshots[0].CTL-wantCTL) > 1e-9 {
		t.Errorf("CTL = %v, want %v", snapshots[0].CTL, wantCTL)
	}
	if math.Abs(snapshots[0].ATL-wantATL) > 1e-9 {
		t.Errorf("ATL = %v, want %v", snapshots[0].ATL, wantATL)
	}
}

func TestComputeMetricsThrough(t *testing.T) {
	loads := []DailyLoad{{Date: date(2026, 1, 5), SystemicAU: 400}}

	snapshots := ComputeMetricsThrough(loads, date(2026, 1, 12))
	if len(snapshots) != 8 {
		t.Fatalf("got %d snapshots, want 8", len(snapshots))
	}
	last := snapshots[len(snapshots)-1]
	if !last.Date.Equal(date(2026, 1, 12)) {
		t.Errorf("last snapshot %v, want 2026-01-12", last.Date)
	}
	if last.CTL >= snapshots[0].CTL {
		t.Errorf("CTL should decay without load: %v -> %v", snapshots[0].CTL, last.CTL)
	}
}

func TestFormDescription(t *testing.T) {
	tests := []struct {
		tsb  float64
		want string
	}{
		{30, "Very fresh (possibly detrained)"},
		{15, "Fresh and ready to race"},
		{5, "Neutral - good for training"},
		{-5, "Slightly fatigued"},
		{-15, "Tired but building fitness"},
		{-30, "Very fatigued - rest needed"},
	}
	for _, tt := range tests {
		if got := FormDescription(tt.tsb); got != tt.want {
			t.Errorf("FormDescription(%v) = %q, want %q", tt.tsb, got, tt.want)
		}
	}
}
