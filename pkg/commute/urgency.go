package commute

import (
	"math"
	"time"
)

// DisplayLayout is the clock format used on the board (it-IT, 2-digit hour and minute)
const DisplayLayout = "15:04"

// UrgencyFor buckets the minutes until the scheduled time plus the announced delay
func UrgencyFor(minutesUntil, delay int) Urgency {
	total := minutesUntil + delay
	switch {
	case total <= 3:
		return Urgent
	case total <= 8:
		return Soon
	case total <= 15:
		return Normal
	default:
		return Later
	}
}

// Classify derives the display status of a departure at instant now.
// MinutesUntil is measured to the scheduled time; the delay is kept separate
// and only added when picking the urgency bucket.
func Classify(d Departure, now time.Time, loc *time.Location) DepartureStatus {
	if loc == nil {
		loc = time.Local
	}
	diff := d.ScheduledMillis() - now.UnixMilli()
	minutes := int(math.Round(float64(diff) / 60000))

	delay := d.DelayMinutes
	if delay < 0 {
		delay = 0
	}

	return DepartureStatus{
		Departure:    d,
		MinutesUntil: minutes,
		DelayMinutes: delay,
		Urgency:      UrgencyFor(minutes, delay),
		DisplayTime:  d.Scheduled.In(loc).Format(DisplayLayout),
	}
}

// ClassifyAll classifies every departure against the same instant
func ClassifyAll(deps []Departure, now time.Time, loc *time.Location) []DepartureStatus {
	statuses := make([]DepartureStatus, 0, len(deps))
	for _, d := range deps {
		statuses = append(statuses, Classify(d, now, loc))
	}
	return statuses
}
