package commute

import (
	"sort"
	"time"
)

// FilterDepartures keeps future departures relevant to the leg, ordered by
// scheduled time and clipped to MaxDepartures. Ties keep their feed order.
func FilterDepartures(raw []Departure, leg CommuteLeg, now time.Time) []Departure {
	nowMillis := now.UnixMilli()

	var relevant []Departure
	for _, d := range raw {
		if d.ScheduledMillis() <= nowMillis {
			continue
		}
		if !leg.Matches(d.Destination) {
			continue
		}
		relevant = append(relevant, d)
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].ScheduledMillis() < relevant[j].ScheduledMillis()
	})

	if len(relevant) > MaxDepartures {
		relevant = relevant[:MaxDepartures]
	}
	return relevant
}
