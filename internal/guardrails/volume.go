package guardrails

import "fmt"

// Weekly volume bands (km).
const (
	lowVolumeMaxKm    = 25.0
	mediumVolumeMaxKm = 50.0
)

// Progression limits.
const (
	// tenPercentRule is the classic weekly progression ceiling, used as
	// the recommended value when a progression is rejected.
	tenPercentRule = 0.10

	// Percent-increase tolerance by previous-volume band. Low-volume
	// runners can absorb proportionally larger jumps.
	lowBandPctLimit    = 20.0
	mediumBandPctLimit = 10.0
	highBandPctLimit   = 8.0

	// perSessionGuidelineKm is the evidence-based safe per-session
	// increase (~1 mile spread across the week's sessions).
	perSessionGuidelineKm = 1.6

	// smallAbsoluteDeltaKm: increases this small are protective on
	// their own regardless of percentage.
	smallAbsoluteDeltaKm = 2.0

	// CTL-derived weekly capacity band: [ctlCapacityFloor x CTL,
	// CTL + ctlCapacityHeadroomKm] km.
	ctlCapacityFloor      = 0.8
	ctlCapacityHeadroomKm = 10.0
)

// VolumeBand classifies a weekly volume as "low", "medium", or "high".
func VolumeBand(weeklyKm float64) string {
	switch {
	case weeklyKm < lowVolumeMaxKm:
		return "low"
	case weeklyKm < mediumVolumeMaxKm:
		return "medium"
	default:
		return "high"
	}
}

// CheckVolumeProgression weighs a proposed week-over-week volume
// increase. Protective factors (small per-session increase, volume
// within the CTL-derived capacity band, small absolute delta) can
// outweigh risk factors (recent injury, masters age, large percent
// increase); otherwise the increase is flagged with the 10%-rule
// ceiling as the recommended value.
func CheckVolumeProgression(prevWeekKm, proposedKm float64, sessionsPerWeek int, ctl float64, risk RiskContext) GuardrailResult {
	result := GuardrailResult{OK: true}

	if proposedKm <= prevWeekKm {
		result.Recommendation = "Volume flat or reduced; no progression risk"
		return result
	}
	if sessionsPerWeek <= 0 {
		sessionsPerWeek = 1
	}

	delta := proposedKm - prevWeekKm
	perSession := delta / float64(sessionsPerWeek)

	var pctIncrease float64
	if prevWeekKm > 0 {
		pctIncrease = delta / prevWeekKm * 100
	} else {
		pctIncrease = 100
	}
	// Cross-multiplied form keeps an exact 10% step from tripping the
	// limit through division rounding.
	overLimit := func(limitPct float64) bool {
		if prevWeekKm <= 0 {
			return true
		}
		return delta*100 > limitPct*prevWeekKm
	}

	if risk.RecentInjury {
		result.RiskFactors = append(result.RiskFactors, "recent injury")
	}
	if risk.Age >= mastersAge {
		result.RiskFactors = append(result.RiskFactors, fmt.Sprintf("masters athlete (age %d)", risk.Age))
	}
	pctLimit := pctLimitForBand(VolumeBand(prevWeekKm))
	if overLimit(pctLimit) {
		result.RiskFactors = append(result.RiskFactors,
			fmt.Sprintf("%.0f%% increase exceeds %.0f%% band tolerance", pctIncrease, pctLimit))
	}

	if perSession <= perSessionGuidelineKm {
		result.ProtectiveFactors = append(result.ProtectiveFactors,
			fmt.Sprintf("+%.1f km/session within %.1f km guideline", perSession, perSessionGuidelineKm))
	}
	if ctl > 0 && proposedKm >= ctlCapacityFloor*ctl && proposedKm <= ctl+ctlCapacityHeadroomKm {
		result.ProtectiveFactors = append(result.ProtectiveFactors,
			fmt.Sprintf("%.1f km within CTL capacity range [%.1f, %.1f]", proposedKm, ctlCapacityFloor*ctl, ctl+ctlCapacityHeadroomKm))
	}
	if delta <= smallAbsoluteDeltaKm {
		result.ProtectiveFactors = append(result.ProtectiveFactors,
			fmt.Sprintf("small absolute increase (+%.1f km)", delta))
	}

	if len(result.ProtectiveFactors) > len(result.RiskFactors) {
		result.Recommendation = fmt.Sprintf("Increase to %.1f km acceptable: protective factors outweigh risk", proposedKm)
		return result
	}

	if !overLimit(pctLimit) {
		result.Recommendation = fmt.Sprintf("Increase of %.0f%% within the %.0f%% tolerance for %s volume", pctIncrease, pctLimit, VolumeBand(prevWeekKm))
		return result
	}

	recommended := prevWeekKm * (1 + tenPercentRule)
	result.OK = false
	result.Violations = append(result.Violations, Violation{
		Rule:    "volume_progression",
		Message: fmt.Sprintf("weekly volume jump of %.0f%% exceeds safe progression; recommend at most %.1f km", pctIncrease, recommended),
		Value:   proposedKm,
		Limit:   recommended,
	})
	result.Recommendation = fmt.Sprintf("Cap next week at %.1f km (10%% rule)", recommended)
	return result
}

func pctLimitForBand(band string) float64 {
	switch band {
	case "low":
		return lowBandPctLimit
	case "medium":
		return mediumBandPctLimit
	default:
		return highBandPctLimit
	}
}

// Peak volume multipliers by goal distance, applied to the starting
// volume ceiling (current CTL in km).
var peakVolumeFactors = map[string][2]float64{
	"5k":            {1.1, 1.3},
	"10k":           {1.2, 1.4},
	"half_marathon": {1.3, 1.5},
	"marathon":      {1.5, 1.8},
}

// VolumeRecommendation is the safe starting and peak weekly volume for
// a training build.
type VolumeRecommendation struct {
	StartLowKm  float64
	StartHighKm float64
	PeakLowKm   float64
	PeakHighKm  float64
	Summary     string
}

// RecommendVolume derives a safe starting volume (80-100% of current
// CTL) and a goal-specific peak range for a new training build.
func RecommendVolume(ctl float64, goal string) VolumeRecommendation {
	rec := VolumeRecommendation{
		StartLowKm:  ctlCapacityFloor * ctl,
		StartHighKm: ctl,
	}

	factors, ok := peakVolumeFactors[goal]
	if !ok {
		factors = peakVolumeFactors["half_marathon"]
	}
	rec.PeakLowKm = factors[0] * ctl
	rec.PeakHighKm = factors[1] * ctl

	rec.Summary = fmt.Sprintf("Start at %.0f-%.0f km/week, build toward a %.0f-%.0f km peak for %s",
		rec.StartLowKm, rec.StartHighKm, rec.PeakLowKm, rec.PeakHighKm, goal)
	return rec
}
