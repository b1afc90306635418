package guardrails

// ACWRZone is one band of the acute:chronic workload ratio table.
// Lower bounds are inclusive.
type ACWRZone struct {
	Name        string
	Min         float64
	Max         float64 // Max of the last zone is +Inf in spirit; 0 means unbounded
	Risk        string
	Description string
}

// acwrZones is ordered by ascending lower bound.
var acwrZones = []ACWRZone{
	{Name: "below_range", Min: 0, Max: 0.5, Risk: "detraining", Description: "Load far below chronic fitness"},
	{Name: "undertraining", Min: 0.5, Max: 0.8, Risk: "detraining", Description: "Losing fitness; load can rise"},
	{Name: "low_normal", Min: 0.8, Max: 1.0, Risk: "baseline", Description: "Maintaining fitness"},
	{Name: "optimal", Min: 1.0, Max: 1.15, Risk: "baseline", Description: "Building fitness at baseline injury risk"},
	{Name: "safe_high", Min: 1.15, Max: 1.3, Risk: "baseline", Description: "Productive overload, still safe"},
	{Name: "caution", Min: 1.3, Max: 1.4, Risk: "~1.5x baseline", Description: "Load spiking ahead of fitness"},
	{Name: "high_caution", Min: 1.4, Max: 1.5, Risk: "~2x baseline", Description: "Marked spike; back off soon"},
	{Name: "danger", Min: 1.5, Max: 0, Risk: "2-4x baseline", Description: "Acute load far above chronic base"},
}

// ClassifyACWR returns the zone for an acute:chronic ratio. Bounds are
// inclusive at the bottom of each zone, except that the danger zone
// starts strictly above 1.5.
func ClassifyACWR(acwr float64) ACWRZone {
	if acwr > 1.5 {
		return acwrZones[len(acwrZones)-1]
	}
	for i := len(acwrZones) - 2; i >= 0; i-- {
		if acwr >= acwrZones[i].Min {
			return acwrZones[i]
		}
	}
	return acwrZones[0]
}

// CheckACWR wraps zone classification as a guardrail verdict. A nil
// ratio (undefined: CTL is zero) is not a breach, just unknown.
func CheckACWR(acwr *float64) GuardrailResult {
	if acwr == nil {
		return GuardrailResult{
			OK:             true,
			Recommendation: "ACWR undefined: no chronic training base yet",
		}
	}

	zone := ClassifyACWR(*acwr)
	result := GuardrailResult{OK: true, Recommendation: zone.Description}

	switch zone.Name {
	case "caution", "high_caution", "danger":
		result.OK = false
		result.Violations = append(result.Violations, Violation{
			Rule:    "acwr_" + zone.Name,
			Message: zone.Description + " (injury risk " + zone.Risk + ")",
			Value:   *acwr,
			Limit:   1.3,
		})
		result.RiskFactors = append(result.RiskFactors, "ACWR "+zone.Name+" ("+zone.Risk+" injury risk)")
	case "optimal", "safe_high":
		result.ProtectiveFactors = append(result.ProtectiveFactors, "ACWR in "+zone.Name+" zone")
	}
	return result
}
