package domain

import (
	"fmt"
	"strings"
	"time"
)

// ExpiredLabel is shown once a listing's pickup window has closed.
const ExpiredLabel = "Expired"

// TimeUntilExpiry renders the remaining pickup window at now, floored to
// whole minutes: "2h 5m left", "45m left" or "Expired".
func TimeUntilExpiry(now, expiry time.Time) string {
	diff := expiry.Sub(now)
	if diff <= 0 {
		return ExpiredLabel
	}
	hours := int(diff / time.Hour)
	mins := int((diff % time.Hour) / time.Minute)
	if hours > 0 {
		return fmt.Sprintf("%dh %dm left", hours, mins)
	}
	return fmt.Sprintf("%dm left", mins)
}

// Layouts accepted for expiry timestamps. The zone-less layouts are what an
// HTML datetime-local input submits.
var expiryLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseExpiry parses an expiry timestamp; zone-less values are read in loc.
func ParseExpiry(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range expiryLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid expiry_time %q", ErrValidation, s)
}
