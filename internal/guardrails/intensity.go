package guardrails

import "fmt"

// Quality-intensity caps as fractions of weekly volume (Daniels).
const (
	TPaceVolumeCap = 0.10
	IPaceVolumeCap = 0.08
	RPaceVolumeCap = 0.05
)

// Long-run caps.
const (
	LongRunMaxMinutes   = 150.0
	LongRunVolumeCapPct = 0.30
)

// QualityVolumes is the week's distance at each quality intensity.
type QualityVolumes struct {
	TPaceKm float64 // threshold
	IPaceKm float64 // interval
	RPaceKm float64 // repetition
}

// CheckQualityVolume validates each quality intensity against its cap:
// T-pace at most 10%, I-pace at most 8%, R-pace at most 5% of weekly
// volume. Each breach is a separate named violation.
func CheckQualityVolume(weeklyVolumeKm float64, quality QualityVolumes) GuardrailResult {
	result := GuardrailResult{OK: true}
	if weeklyVolumeKm <= 0 {
		return result
	}

	checks := []struct {
		rule  string
		label string
		km    float64
		cap   float64
	}{
		{"quality_volume_t_pace", "T-pace", quality.TPaceKm, TPaceVolumeCap},
		{"quality_volume_i_pace", "I-pace", quality.IPaceKm, IPaceVolumeCap},
		{"quality_volume_r_pace", "R-pace", quality.RPaceKm, RPaceVolumeCap},
	}

	for _, c := range checks {
		if c.km <= 0 {
			continue
		}
		pct := c.km / weeklyVolumeKm
		if pct > c.cap {
			result.OK = false
			result.Violations = append(result.Violations, Violation{
				Rule: c.rule,
				Message: fmt.Sprintf("%s volume is %.1f%% of the week (%.1f of %.1f km); limit is <=%.0f%%",
					c.label, pct*100, c.km, weeklyVolumeKm, c.cap*100),
				Value: pct * 100,
				Limit: c.cap * 100,
			})
		}
	}

	if result.OK {
		result.Recommendation = "Quality volume within intensity caps"
	} else {
		result.Recommendation = "Trim quality work or grow the easy-volume base first"
	}
	return result
}

// CheckLongRun validates the week's long run: at most 150 minutes and
// at most 30% of weekly volume. Breaching both yields two violations.
func CheckLongRun(durationMinutes, longRunKm, weeklyVolumeKm float64) GuardrailResult {
	result := GuardrailResult{OK: true}

	if durationMinutes > LongRunMaxMinutes {
		result.OK = false
		result.Violations = append(result.Violations, Violation{
			Rule: "long_run_duration",
			Message: fmt.Sprintf("long run of %.0f min exceeds the %.0f min cap; fatigue past this point outweighs the stimulus",
				durationMinutes, LongRunMaxMinutes),
			Value: durationMinutes,
			Limit: LongRunMaxMinutes,
		})
	}

	if weeklyVolumeKm > 0 && longRunKm > 0 {
		pct := longRunKm / weeklyVolumeKm
		if pct > LongRunVolumeCapPct {
			result.OK = false
			result.Violations = append(result.Violations, Violation{
				Rule: "long_run_volume_share",
				Message: fmt.Sprintf("long run is %.0f%% of weekly volume (%.1f of %.1f km); limit is <=%.0f%%",
					pct*100, longRunKm, weeklyVolumeKm, LongRunVolumeCapPct*100),
				Value: pct * 100,
				Limit: LongRunVolumeCapPct * 100,
			})
		}
	}

	if result.OK {
		result.Recommendation = "Long run within duration and volume-share caps"
	} else {
		result.Recommendation = "Shorten the long run or spread volume across the week"
	}
	return result
}
