package service

import (
	"time"

	"trainguard/internal/analysis"
	"trainguard/internal/guardrails"
	"trainguard/internal/store"
)

const (
	// chartDays is how much metric history the dashboard charts show
	chartDays = 90
	// weeklyChartWeeks is how many weekly volume bars the dashboard shows
	weeklyChartWeeks = 12
	// recentActivityLimit caps the recent activity list
	recentActivityLimit = 10
)

// DashboardData contains all data needed for the dashboard
type DashboardData struct {
	// Current training state
	Current         analysis.MetricsSnapshot
	FormDescription string
	ACWRZone        string
	ACWRAdvice      string
	ACWRResult      guardrails.GuardrailResult

	// Readiness composite
	Readiness analysis.Readiness

	// Running fitness estimate. VDOTErr holds the reason when no
	// estimate could be made.
	VDOT    *analysis.VDOTEstimate
	VDOTErr error

	// This week
	WeekActivityCount int
	WeekDistanceKm    float64
	WeekMinutes       float64

	// Recent activity list
	RecentActivities []store.Activity

	// Chart series
	CTLHistory    []float64
	ATLHistory    []float64
	MetricDates   []time.Time
	WeeklyVolumes []float64
	WeeklyLabels  []string
}

// GetDashboardData fetches all data needed for the dashboard
func (q *QueryService) GetDashboardData(now time.Time) (*DashboardData, error) {
	activities, rows, err := q.loadActivities()
	if err != nil {
		return nil, err
	}

	ctx := q.athleteContext()
	data := &DashboardData{}

	snapshots, err := metricsThrough(activities, ctx, now)
	if err != nil {
		return nil, err
	}
	if len(snapshots) > 0 {
		data.Current = snapshots[len(snapshots)-1]
		data.FormDescription = analysis.FormDescription(data.Current.TSB)
	}

	data.ACWRResult = guardrails.CheckACWR(data.Current.ACWR)
	if data.Current.ACWR != nil {
		zone := guardrails.ClassifyACWR(*data.Current.ACWR)
		data.ACWRZone = zone.Name
		data.ACWRAdvice = zone.Description
	}

	data.Readiness = analysis.ComputeReadiness(snapshots, activities, now)
	data.VDOT, data.VDOTErr = analysis.EstimateVDOT(activities, ctx, now)

	data.WeekActivityCount, data.WeekDistanceKm, data.WeekMinutes = weekStats(rows, now)
	data.RecentActivities = recentActivities(rows)

	data.CTLHistory, data.ATLHistory, data.MetricDates = metricHistory(snapshots)
	data.WeeklyVolumes, data.WeeklyLabels = weeklyVolumeChart(rows, now)

	return data, nil
}

// weekStats sums up the current Monday-Sunday week
func weekStats(rows []store.Activity, now time.Time) (count int, distanceKm, minutes float64) {
	weekStart := startOfWeek(now)
	for _, a := range rows {
		if a.Date.Before(weekStart) || a.Date.After(now) {
			continue
		}
		count++
		minutes += a.DurationMinutes
		if a.DistanceKm != nil {
			distanceKm += *a.DistanceKm
		}
	}
	return count, distanceKm, minutes
}

// recentActivities returns the newest activities, newest first
func recentActivities(rows []store.Activity) []store.Activity {
	if len(rows) == 0 {
		return nil
	}
	n := len(rows)
	limit := recentActivityLimit
	if n < limit {
		limit = n
	}
	out := make([]store.Activity, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, rows[i])
	}
	return out
}

// metricHistory extracts the chart window from the metric series
func metricHistory(snapshots []analysis.MetricsSnapshot) (ctl, atl []float64, dates []time.Time) {
	start := 0
	if len(snapshots) > chartDays {
		start = len(snapshots) - chartDays
	}
	for _, s := range snapshots[start:] {
		ctl = append(ctl, s.CTL)
		atl = append(atl, s.ATL)
		dates = append(dates, s.Date)
	}
	return ctl, atl, dates
}

// weeklyVolumeChart buckets run distance into Monday-Sunday weeks for
// the last weeklyChartWeeks weeks, oldest first.
func weeklyVolumeChart(rows []store.Activity, now time.Time) ([]float64, []string) {
	currentWeek := startOfWeek(now)
	firstWeek := currentWeek.AddDate(0, 0, -7*(weeklyChartWeeks-1))

	volumes := make([]float64, weeklyChartWeeks)
	labels := make([]string, weeklyChartWeeks)
	for i := range labels {
		labels[i] = firstWeek.AddDate(0, 0, 7*i).Format("Jan 02")
	}

	for _, a := range rows {
		if a.DistanceKm == nil || a.Sport != string(analysis.SportRun) {
			continue
		}
		week := startOfWeek(a.Date)
		if week.Before(firstWeek) || week.After(currentWeek) {
			continue
		}
		idx := int(week.Sub(firstWeek).Hours() / 24 / 7)
		volumes[idx] += *a.DistanceKm
	}
	return volumes, labels
}

// startOfWeek returns the Monday of the week containing t, at midnight UTC
func startOfWeek(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
