package commute

import (
	"time"
)

var rome = mustLocation("Europe/Rome")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("CET", 3600)
	}
	return loc
}

func testSettings() Settings {
	return Settings{
		MorningCutoff: 14,
		EveningCutoff: 22,
		Location:      rome,
		Outbound: LegSettings{
			Origin:      "Roma Tuscolana",
			Destination: "Muratella",
			StationCode: "S08408",
			Filters:     []string{"MURATELLA", "MAGLIANA", "Trastevere", "fiumicino aeroporto"},
			Mock: MockSettings{
				PeakStartHour:   7,
				PeakEndHour:     10,
				FirstMinute:     7,
				BaseTrainNumber: 3270,
				TrainPrefix:     "FL1",
				Destination:     "FIUMICINO AEROPORTO",
				Kind:            "PG",
			},
		},
		Inbound: LegSettings{
			Origin:      "Fiumicino Airport",
			Destination: "Roma Tuscolana",
			StationCode: "S08000",
			Filters:     []string{"ORTE", "FARA SABINA", "ROMA TIBURTINA"},
			Mock: MockSettings{
				PeakStartHour:   17,
				PeakEndHour:     20,
				FirstMinute:     3,
				BaseTrainNumber: 3271,
				TrainPrefix:     "FL1",
				Destination:     "ORTE",
				Kind:            "PG",
			},
		},
	}
}

// fixedRand returns the same draw every time
type fixedRand struct {
	f     float64
	n     int
	calls int
}

func (r *fixedRand) Float64() float64 {
	r.calls++
	return r.f
}

func (r *fixedRand) IntN(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

func at(hour, minute, second int) time.Time {
	return time.Date(2026, 3, 4, hour, minute, second, 0, rome)
}
