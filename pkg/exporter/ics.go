package exporter

import (
	"fmt"
	"io"
	"time"

	"commutectl/pkg/commute"

	ics "github.com/arran4/golang-ical"
)

// eventDuration is how long a departure event blocks the calendar
const eventDuration = time.Minute

// GenerateICS writes one event per departure on the board to the provided writer.
// Events start at the expected departure time (scheduled plus announced delay).
func GenerateICS(board commute.Board, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//commutectl//FL1 departures//IT")

	stamp := board.Now
	if stamp.IsZero() {
		stamp = time.Now()
	}

	for i, st := range board.Statuses {
		d := st.Departure
		start := d.Scheduled.Add(time.Duration(st.DelayMinutes) * time.Minute)

		event := cal.AddEvent(fmt.Sprintf("%s-%s-%d", d.Scheduled.UTC().Format("20060102T150405Z"), board.Leg.StationCode, i))
		event.SetCreatedTime(stamp)
		event.SetDtStampTime(stamp)
		event.SetModifiedAt(stamp)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(eventDuration))
		event.SetSummary(fmt.Sprintf("🚆 %s → %s", d.TrainID, d.Destination))
		event.SetLocation(board.Leg.Origin)

		description := fmt.Sprintf("Scheduled: %s\nDelay: %d min\nUrgency: %s\nSource: %s",
			st.DisplayTime, st.DelayMinutes, st.Urgency, board.Provenance)
		event.SetDescription(description)
	}

	return cal.SerializeTo(w)
}
