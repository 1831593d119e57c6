package commute

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	peakInterval    = 15
	peakSlots       = 4
	offPeakInterval = 20
	offPeakSlots    = 3

	peakDelayChance    = 0.4
	offPeakDelayChance = 0.2
	maxMockDelay       = 8
)

// RandomSource is the randomness the generator needs. *rand.Rand from
// math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

// Generator synthesizes a plausible FL1 schedule when live data is unusable
type Generator struct {
	settings Settings

	mu  sync.Mutex
	rnd RandomSource
}

// NewGenerator returns a generator using rnd for delays. A nil rnd gets a
// time-seeded PCG source.
func NewGenerator(settings Settings, rnd RandomSource) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	return &Generator{settings: settings, rnd: rnd}
}

// minuteTable returns the minute-of-hour offsets and their spacing for an hour
func minuteTable(m MockSettings, hour int) ([]int, int) {
	interval, slots := offPeakInterval, offPeakSlots
	if m.InPeak(hour) {
		interval, slots = peakInterval, peakSlots
	}

	table := make([]int, slots)
	for i := range table {
		table[i] = m.FirstMinute + i*interval
	}
	return table, interval
}

// Generate always returns exactly MaxDepartures departures, equally spaced
// and strictly increasing, starting at the next slot after now.
func (g *Generator) Generate(leg CommuteLeg, now time.Time) []Departure {
	loc := g.settings.Loc()
	local := now.In(loc)
	m := g.settings.legSettings(leg.Direction).Mock

	table, interval := minuteTable(m, local.Hour())

	hour := local.Hour()
	next := -1
	for _, minute := range table {
		if minute > local.Minute() {
			next = minute
			break
		}
	}
	if next < 0 {
		hour++
		next = table[0]
	}

	first := time.Date(local.Year(), local.Month(), local.Day(), hour, next, 0, 0, loc)

	g.mu.Lock()
	defer g.mu.Unlock()

	deps := make([]Departure, 0, MaxDepartures)
	for i := 0; i < MaxDepartures; i++ {
		when := first.Add(time.Duration(i*interval) * time.Minute)
		deps = append(deps, Departure{
			TrainID:      fmt.Sprintf("%s %d", m.TrainPrefix, m.BaseTrainNumber+i*2),
			Destination:  m.Destination,
			Scheduled:    when,
			DelayMinutes: g.delayFor(m, when.In(loc).Hour()),
			Kind:         m.Kind,
		})
	}
	return deps
}

func (g *Generator) delayFor(m MockSettings, hour int) int {
	chance := offPeakDelayChance
	if m.InPeak(hour) {
		chance = peakDelayChance
	}
	if g.rnd.Float64() < chance {
		return g.rnd.IntN(maxMockDelay) + 1
	}
	return 0
}
