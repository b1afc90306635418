package analysis

import "time"

// weekStart returns the Monday 00:00 UTC of the week containing t.
func weekStart(t time.Time) time.Time {
	d := day(t)
	// time.Weekday has Sunday=0; shift so Monday=0.
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// weekEnd returns the Sunday of the week containing t.
func weekEnd(t time.Time) time.Time {
	return weekStart(t).AddDate(0, 0, 6)
}

// DetectBreaks groups activities into Monday-Sunday weeks between from
// and to, and returns each run of consecutive inactive weeks as a
// TrainingBreak.
func DetectBreaks(activities []Activity, from, to time.Time) []TrainingBreak {
	if to.Before(from) {
		return nil
	}

	active := make(map[string]bool)
	for _, a := range activities {
		active[dateKey(weekStart(a.Date))] = true
	}

	var breaks []TrainingBreak
	var inactiveStart time.Time
	inactive := 0

	flush := func() {
		if inactive == 0 {
			return
		}
		breaks = append(breaks, TrainingBreak{
			Start: inactiveStart,
			End:   inactiveStart.AddDate(0, 0, inactive*7-1),
			Days:  inactive * 7,
		})
		inactive = 0
	}

	for w := weekStart(from); !w.After(weekStart(to)); w = w.AddDate(0, 0, 7) {
		if active[dateKey(w)] {
			flush()
			continue
		}
		if inactive == 0 {
			inactiveStart = w
		}
		inactive++
	}
	flush()

	return breaks
}

// Continuity is the fraction of Monday-Sunday weeks in [from, to] with
// at least one recorded activity. Returns 1 for an empty window.
func Continuity(activities []Activity, from, to time.Time) float64 {
	if to.Before(from) {
		return 1
	}

	active := make(map[string]bool)
	for _, a := range activities {
		active[dateKey(weekStart(a.Date))] = true
	}

	total, activeCount := 0, 0
	for w := weekStart(from); !w.After(weekStart(to)); w = w.AddDate(0, 0, 7) {
		total++
		if active[dateKey(w)] {
			activeCount++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(activeCount) / float64(total)
}

// LongestBreak returns the longest break in days, or 0 with no breaks.
func LongestBreak(breaks []TrainingBreak) int {
	longest := 0
	for _, b := range breaks {
		if b.Days > longest {
			longest = b.Days
		}
	}
	return longest
}
