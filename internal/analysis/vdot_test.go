package analysis

import (
	"math"
	"testing"
)

func TestCalculateVDOT(t *testing.T) {
	tests := []struct {
		name            string
		distanceMeters  float64
		durationSeconds int
		wantVDOT        float64
		tolerance       float64
	}{
		{"5K at 19:00", Distance5K, 1140, 50.0, 1.0},
		{"5K at 23:42", Distance5K, 1422, 40.0, 1.0},
		{"10K at 39:24", Distance10K, 2364, 50.0, 1.0},
		{"half at 1:25:00", DistanceHalfMara, 5100, 50.0, 1.0},
		{"marathon at 2:54:54", DistanceMarathon, 10494, 50.0, 1.0},
		{"elite 5K at 13:06", Distance5K, 786, 75.0, 2.0},
		{"beginner 5K at 30:06", Distance5K, 1806, 31.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateVDOT(tt.distanceMeters, tt.durationSeconds)
			if math.Abs(got-tt.wantVDOT) > tt.tolerance {
				t.Errorf("CalculateVDOT() = %v, want %v (±%v)", got, tt.wantVDOT, tt.tolerance)
			}
		})
	}
}

func TestCalculateVDOT_EdgeCases(t *testing.T) {
	if got := CalculateVDOT(Distance5K, 0); got != 0 {
		t.Errorf("zero duration = %v, want 0", got)
	}
	if got := CalculateVDOT(0, 1200); got != 0 {
		t.Errorf("zero distance = %v, want 0", got)
	}
	// Slower than the table floor clamps to 30.
	if got := CalculateVDOT(Distance5K, 3600); got != MinVDOT {
		t.Errorf("very slow 5K = %v, want %v", got, MinVDOT)
	}
	// Faster than the table ceiling clamps to 85.
	if got := CalculateVDOT(Distance5K, 600); got != MaxVDOT {
		t.Errorf("impossibly fast 5K = %v, want %v", got, MaxVDOT)
	}
}

func TestPredictTime_RoundTrip(t *testing.T) {
	tests := []struct {
		distance float64
		duration int
	}{
		{Distance5K, 1200},
		{Distance10K, 2400},
		{DistanceHalfMara, 5400},
		{DistanceMarathon, 11400},
	}

	for _, tt := range tests {
		vdot := CalculateVDOT(tt.distance, tt.duration)
		predicted := PredictTime(vdot, tt.distance)
		tolerance := int(float64(tt.duration) * 0.02)
		diff := predicted - tt.duration
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			t.Errorf("round trip %vm/%ds: VDOT %.1f predicted %ds (diff %d)",
				tt.distance, tt.duration, vdot, predicted, diff)
		}
	}
}

func TestVDOTFromQualityPace(t *testing.T) {
	// 3:48/km over 5K is a 19:00 5K, which is VDOT 50 in the table.
	got := vdotFromQualityPace(3.8)
	if math.Abs(got-50) > 1 {
		t.Errorf("vdotFromQualityPace(3.8) = %v, want ~50", got)
	}

	// Faster pace must imply a higher VDOT.
	if vdotFromQualityPace(4.5) >= vdotFromQualityPace(4.0) {
		t.Error("quality-pace VDOT should increase as pace gets faster")
	}
}

func TestVDOTFromEasyPace(t *testing.T) {
	// Monotonic: a faster easy pace implies higher fitness.
	slow := vdotFromEasyPace(7.0)
	mid := vdotFromEasyPace(5.5)
	fast := vdotFromEasyPace(4.5)
	if !(slow < mid && mid < fast) {
		t.Errorf("easy-pace VDOT not monotonic: %v, %v, %v", slow, mid, fast)
	}

	// Out-of-table paces clamp to the bounds.
	if got := vdotFromEasyPace(12.0); got != MinVDOT {
		t.Errorf("very slow easy pace = %v, want %v", got, MinVDOT)
	}
	if got := vdotFromEasyPace(2.5); got != MaxVDOT {
		t.Errorf("very fast easy pace = %v, want %v", got, MaxVDOT)
	}
}

func TestFitnessLabel(t *testing.T) {
	tests := []struct {
		vdot float64
		want string
	}{
		{80, "Elite"},
		{70, "Highly Competitive"},
		{60, "Competitive"},
		{50, "Advanced Recreational"},
		{40, "Intermediate"},
		{32, "Beginner"},
	}
	for _, tt := range tests {
		if got := FitnessLabel(tt.vdot); got != tt.want {
			t.Errorf("FitnessLabel(%v) = %q, want %q", tt.vdot, got, tt.want)
		}
	}
}
