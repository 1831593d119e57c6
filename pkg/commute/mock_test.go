package commute

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(ts []Departure) []string {
	var out []string
	for _, d := range ts {
		out = append(out, d.Scheduled.In(rome).Format("15:04"))
	}
	return out
}

func TestGenerate_Schedules(t *testing.T) {
	s := testSettings()

	tests := []struct {
		name     string
		now      time.Time
		want     []string
		interval time.Duration
	}{
		{"outbound peak", at(8, 10, 0), []string{"08:22", "08:37", "08:52", "09:07"}, 15 * time.Minute},
		{"outbound on slot", at(8, 7, 30), []string{"08:22", "08:37", "08:52", "09:07"}, 15 * time.Minute},
		{"outbound peak rollover", at(8, 55, 0), []string{"09:07", "09:22", "09:37", "09:52"}, 15 * time.Minute},
		{"outbound off-peak rollover", at(11, 50, 0), []string{"12:07", "12:27", "12:47", "13:07"}, 20 * time.Minute},
		{"outbound late night", at(23, 55, 0), []string{"00:07", "00:27", "00:47", "01:07"}, 20 * time.Minute},
		{"inbound peak", at(18, 0, 0), []string{"18:03", "18:18", "18:33", "18:48"}, 15 * time.Minute},
		{"inbound off-peak", at(15, 10, 0), []string{"15:23", "15:43", "16:03", "16:23"}, 20 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGenerator(s, &fixedRand{f: 0.99})
			leg := ResolveLeg(s, tt.now.Hour())

			deps := gen.Generate(leg, tt.now)

			require.Len(t, deps, MaxDepartures)
			assert.Equal(t, tt.want, clock(deps))
			for i := 1; i < len(deps); i++ {
				assert.Equal(t, tt.interval, deps[i].Scheduled.Sub(deps[i-1].Scheduled))
			}
			assert.True(t, deps[0].Scheduled.After(tt.now))
			assert.Zero(t, deps[0].Scheduled.Second())
			assert.Zero(t, deps[0].Scheduled.Nanosecond())
		})
	}
}

func TestGenerate_TrainIdentifiers(t *testing.T) {
	s := testSettings()
	gen := NewGenerator(s, &fixedRand{f: 0.99})

	out := gen.Generate(s.Leg(Outbound), at(8, 0, 0))
	in := gen.Generate(s.Leg(Inbound), at(18, 0, 0))

	for i := 0; i < MaxDepartures; i++ {
		assert.Equal(t, fmt.Sprintf("FL1 %d", 3270+2*i), out[i].TrainID)
		assert.Equal(t, "FIUMICINO AEROPORTO", out[i].Destination)
		assert.Equal(t, fmt.Sprintf("FL1 %d", 3271+2*i), in[i].TrainID)
		assert.Equal(t, "ORTE", in[i].Destination)
		assert.Equal(t, "PG", in[i].Kind)
	}
}

func TestGenerate_Delays(t *testing.T) {
	s := testSettings()
	leg := s.Leg(Outbound)

	t.Run("triggered", func(t *testing.T) {
		gen := NewGenerator(s, &fixedRand{f: 0.0, n: 4})
		for _, d := range gen.Generate(leg, at(12, 0, 0)) {
			assert.Equal(t, 5, d.DelayMinutes)
		}
	})

	t.Run("not triggered", func(t *testing.T) {
		gen := NewGenerator(s, &fixedRand{f: 0.99, n: 4})
		for _, d := range gen.Generate(leg, at(8, 0, 0)) {
			assert.Zero(t, d.DelayMinutes)
		}
	})

	t.Run("peak chance only applies inside the peak window", func(t *testing.T) {
		gen := NewGenerator(s, &fixedRand{f: 0.3, n: 7})
		deps := gen.Generate(leg, at(9, 40, 0))

		require.Len(t, deps, MaxDepartures)
		assert.Equal(t, []string{"09:52", "10:07", "10:22", "10:37"}, clock(deps))
		assert.Equal(t, 8, deps[0].DelayMinutes)
		assert.Zero(t, deps[1].DelayMinutes)
		assert.Zero(t, deps[2].DelayMinutes)
		assert.Zero(t, deps[3].DelayMinutes)
	})
}

func TestGenerate_DefaultRandomSource(t *testing.T) {
	s := testSettings()
	gen := NewGenerator(s, nil)

	for i := 0; i < 50; i++ {
		for _, d := range gen.Generate(s.Leg(Inbound), at(17, 30, 0)) {
			assert.GreaterOrEqual(t, d.DelayMinutes, 0)
			assert.LessOrEqual(t, d.DelayMinutes, maxMockDelay)
		}
	}
}
