package tui

import (
	"fmt"

	"trainguard/internal/config"
)

const kmPerMile = 1.60934

// Units provides unit conversion and formatting based on user preferences
type Units struct {
	cfg config.DisplayConfig
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	return Units{cfg: cfg}
}

// FormatDistance formats a distance in km to the user's preferred unit
func (u Units) FormatDistance(km float64) string {
	if u.IsMiles() {
		return fmt.Sprintf("%.1f mi", km/kmPerMile)
	}
	return fmt.Sprintf("%.1f km", km)
}

// FormatDistanceValue returns just the numeric distance value (no unit label)
func (u Units) FormatDistanceValue(km float64) string {
	if u.IsMiles() {
		return fmt.Sprintf("%.1f", km/kmPerMile)
	}
	return fmt.Sprintf("%.1f", km)
}

// FormatPace formats a pace given in minutes per km
func (u Units) FormatPace(minPerKm float64) string {
	if minPerKm <= 0 {
		return "-"
	}

	pace := minPerKm
	if u.IsMiles() {
		pace = minPerKm * kmPerMile
	}
	mins := int(pace)
	secs := int((pace - float64(mins)) * 60)
	return fmt.Sprintf("%d:%02d/%s", mins, secs, u.DistanceLabel())
}

// FormatDuration formats minutes as "1h 23m" or "45m"
func (u Units) FormatDuration(minutes float64) string {
	total := int(minutes)
	h := total / 60
	m := total % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// DistanceLabel returns the short unit label ("mi" or "km")
func (u Units) DistanceLabel() string {
	if u.IsMiles() {
		return "mi"
	}
	return "km"
}

// IsMiles returns true if distance unit is miles
func (u Units) IsMiles() bool {
	return u.cfg.DistanceUnit == "mi"
}
