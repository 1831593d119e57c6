package commute

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUrgencyFor_Boundaries(t *testing.T) {
	cases := map[int]Urgency{
		-2: Urgent,
		3:  Urgent,
		4:  Soon,
		8:  Soon,
		9:  Normal,
		15: Normal,
		16: Later,
	}
	for total, want := range cases {
		assert.Equal(t, want, UrgencyFor(total, 0), "total %d", total)
	}

	// delay is added on top of the minutes until the scheduled time
	assert.Equal(t, Soon, UrgencyFor(2, 2))
	assert.Equal(t, Later, UrgencyFor(10, 6))
}

func TestClassify(t *testing.T) {
	now := at(8, 0, 0)

	d := Departure{TrainID: "FL1 3270", Scheduled: at(8, 12, 0), DelayMinutes: 4}
	st := Classify(d, now, rome)

	assert.Equal(t, 12, st.MinutesUntil)
	assert.Equal(t, 4, st.DelayMinutes)
	assert.Equal(t, Later, st.Urgency)
	assert.Equal(t, "08:12", st.DisplayTime)
	assert.Equal(t, "FL1 3270", st.Departure.TrainID)
}

func TestClassify_Rounding(t *testing.T) {
	now := at(8, 0, 0)

	st := Classify(Departure{Scheduled: now.Add(150 * time.Second)}, now, rome)
	assert.Equal(t, 3, st.MinutesUntil)

	st = Classify(Departure{Scheduled: now.Add(149 * time.Second)}, now, rome)
	assert.Equal(t, 2, st.MinutesUntil)

	st = Classify(Departure{Scheduled: now.Add(-90 * time.Second)}, now, rome)
	assert.Equal(t, -2, st.MinutesUntil)
	assert.Equal(t, Urgent, st.Urgency)
}

func TestClassify_DisplayTimeIsScheduled(t *testing.T) {
	now := at(17, 50, 0)
	st := Classify(Departure{Scheduled: at(18, 3, 0), DelayMinutes: 8}, now, rome)

	assert.Equal(t, "18:03", st.DisplayTime)
	assert.Equal(t, 13, st.MinutesUntil)
	assert.Equal(t, Later, st.Urgency)
}

func TestClassifyAll_SharesInstant(t *testing.T) {
	now := at(8, 0, 0)
	deps := []Departure{
		{Scheduled: now.Add(3 * time.Minute)},
		{Scheduled: now.Add(8 * time.Minute)},
		{Scheduled: now.Add(15 * time.Minute)},
		{Scheduled: now.Add(16 * time.Minute)},
	}

	got := ClassifyAll(deps, now, rome)

	assert.Equal(t, []Urgency{Urgent, Soon, Normal, Later},
		[]Urgency{got[0].Urgency, got[1].Urgency, got[2].Urgency, got[3].Urgency})
}
