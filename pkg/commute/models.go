package commute

import (
	"strings"
	"time"
)

// MaxDepartures is the most departures a board ever carries
const MaxDepartures = 4

// Direction identifies one leg of the two-way commute
type Direction int

const (
	Outbound Direction = iota
	Inbound
)

func (d Direction) String() string {
	if d == Inbound {
		return "inbound"
	}
	return "outbound"
}

// MarshalText lets directions appear as strings in JSON responses
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// CommuteLeg describes the active leg: where we leave from, where we go,
// which station board to query and which destinations are relevant.
type CommuteLeg struct {
	Direction   Direction `json:"direction"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	StationCode string    `json:"station_code"`
	Filters     []string  `json:"filters"`
	Icon        string    `json:"icon,omitempty"`
}

// Matches reports whether a departure destination contains one of the leg filters
func (l CommuteLeg) Matches(destination string) bool {
	upper := strings.ToUpper(destination)
	for _, f := range l.Filters {
		if strings.Contains(upper, f) {
			return true
		}
	}
	return false
}

// Departure is a single scheduled train run, either live or synthesized
type Departure struct {
	TrainID      string    `json:"train_id"`
	Destination  string    `json:"destination"`
	Scheduled    time.Time `json:"scheduled"`
	DelayMinutes int       `json:"delay_minutes"`
	Kind         string    `json:"kind,omitempty"`
}

// ScheduledMillis returns the scheduled departure as epoch milliseconds
func (d Departure) ScheduledMillis() int64 {
	return d.Scheduled.UnixMilli()
}

// Urgency is the coarse display bucket for a departure
type Urgency int

const (
	Urgent Urgency = iota
	Soon
	Normal
	Later
)

func (u Urgency) String() string {
	switch u {
	case Urgent:
		return "urgent"
	case Soon:
		return "soon"
	case Normal:
		return "normal"
	default:
		return "later"
	}
}

func (u Urgency) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// DepartureStatus is recomputed on every render from a Departure and the render instant
type DepartureStatus struct {
	Departure    Departure `json:"departure"`
	MinutesUntil int       `json:"minutes_until"`
	DelayMinutes int       `json:"delay_minutes"`
	Urgency      Urgency   `json:"urgency"`
	DisplayTime  string    `json:"display_time"`
}

// Provenance tells whether a board shows live or synthesized data
type Provenance int

const (
	Live Provenance = iota
	Synthesized
)

func (p Provenance) String() string {
	if p == Synthesized {
		return "synthesized"
	}
	return "live"
}

func (p Provenance) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// FallbackReason records why live data was replaced
type FallbackReason string

const (
	ReasonNone      FallbackReason = ""
	ReasonFetch     FallbackReason = "fetch-failed"
	ReasonMalformed FallbackReason = "malformed-payload"
	ReasonNoMatches FallbackReason = "no-matches"
)

// Board is the full result of one render cycle
type Board struct {
	Now        time.Time         `json:"now"`
	Leg        CommuteLeg        `json:"leg"`
	Departures []Departure       `json:"-"`
	Statuses   []DepartureStatus `json:"departures"`
	Provenance Provenance        `json:"provenance"`
	Reason     FallbackReason    `json:"fallback_reason,omitempty"`
}
