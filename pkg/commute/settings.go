package commute

import (
	"fmt"
	"strings"
	"time"
)

// MockSettings drives the fallback schedule for one direction
type MockSettings struct {
	PeakStartHour   int // inclusive
	PeakEndHour     int // exclusive
	FirstMinute     int
	BaseTrainNumber int
	TrainPrefix     string
	Destination     string
	Kind            string
}

// InPeak reports whether hour falls within the half-open peak window
func (m MockSettings) InPeak(hour int) bool {
	return hour >= m.PeakStartHour && hour < m.PeakEndHour
}

// LegSettings is the configured description of one commute leg
type LegSettings struct {
	Origin      string
	Destination string
	StationCode string
	Filters     []string
	Icon        string
	Mock        MockSettings
}

// Settings is built once per process and passed to every core component.
// It is never mutated after construction.
type Settings struct {
	MorningCutoff int
	EveningCutoff int
	Location      *time.Location
	Outbound      LegSettings
	Inbound       LegSettings
}

// Validate checks the invariants the core relies on
func (s Settings) Validate() error {
	if s.MorningCutoff < 0 || s.MorningCutoff >= s.EveningCutoff || s.EveningCutoff > 24 {
		return fmt.Errorf("invalid cutoffs: need 0 <= morning (%d) < evening (%d) <= 24", s.MorningCutoff, s.EveningCutoff)
	}
	for _, dir := range []Direction{Outbound, Inbound} {
		ls := s.legSettings(dir)
		if ls.StationCode == "" {
			return fmt.Errorf("%s leg: station code is required", dir)
		}
		if len(normalizeFilters(ls.Filters)) == 0 {
			return fmt.Errorf("%s leg: at least one destination filter is required", dir)
		}
		m := ls.Mock
		if m.PeakStartHour < 0 || m.PeakStartHour > m.PeakEndHour || m.PeakEndHour > 24 {
			return fmt.Errorf("%s leg: invalid peak window %d-%d", dir, m.PeakStartHour, m.PeakEndHour)
		}
		if m.FirstMinute < 0 || m.FirstMinute >= peakInterval {
			return fmt.Errorf("%s leg: first minute must be within [0,%d), got %d", dir, peakInterval, m.FirstMinute)
		}
	}
	return nil
}

// Leg returns the immutable leg descriptor for a direction
func (s Settings) Leg(dir Direction) CommuteLeg {
	ls := s.legSettings(dir)
	return CommuteLeg{
		Direction:   dir,
		Origin:      ls.Origin,
		Destination: ls.Destination,
		StationCode: ls.StationCode,
		Filters:     normalizeFilters(ls.Filters),
		Icon:        ls.Icon,
	}
}

// Loc returns the configured location, defaulting to time.Local
func (s Settings) Loc() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

func (s Settings) legSettings(dir Direction) LegSettings {
	if dir == Inbound {
		return s.Inbound
	}
	return s.Outbound
}

func normalizeFilters(filters []string) []string {
	out := make([]string, 0, len(filters))
	for _, f := range filters {
		f = strings.ToUpper(strings.TrimSpace(f))
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
