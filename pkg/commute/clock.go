package commute

import (
	"fmt"
	"time"
)

// ParseClock places an HH:MM wall-clock reading on the day of ref, in ref's location
func ParseClock(value string, ref time.Time) (time.Time, error) {
	t, err := time.Parse(DisplayLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour(), t.Minute(), 0, 0, ref.Location()), nil
}
