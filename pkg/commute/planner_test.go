package commute

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	deps    []Departure
	err     error
	calls   int
	station string
}

func (f *stubFetcher) FetchDepartures(_ context.Context, stationCode string, _ time.Time) ([]Departure, error) {
	f.calls++
	f.station = stationCode
	return f.deps, f.err
}

var outboundMockID = regexp.MustCompile(`^FL1 32(70|72|74|76)$`)

func TestPlanner_EmptyPayloadFallsBack(t *testing.T) {
	s := testSettings()
	fetcher := &stubFetcher{deps: []Departure{}}
	p := NewPlanner(s, fetcher, NewGenerator(s, &fixedRand{f: 0.99}), nil)

	board := p.Build(context.Background(), at(10, 0, 0))

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, "S08408", fetcher.station)
	assert.Equal(t, Synthesized, board.Provenance)
	assert.Equal(t, ReasonNoMatches, board.Reason)
	require.Len(t, board.Departures, MaxDepartures)
	require.Len(t, board.Statuses, MaxDepartures)
	for _, d := range board.Departures {
		assert.Regexp(t, outboundMockID, d.TrainID)
	}
}

func TestPlanner_KeepsOnlyFutureMatching(t *testing.T) {
	s := testSettings()
	now := at(10, 0, 0)
	fetcher := &stubFetcher{deps: []Departure{
		{TrainID: "FL1 2001", Destination: "Fiumicino Aeroporto", Scheduled: now.Add(-5 * time.Minute)},
		{TrainID: "FL1 2003", Destination: "Fiumicino Aeroporto", Scheduled: now.Add(7 * time.Minute), DelayMinutes: 2},
	}}
	p := NewPlanner(s, fetcher, nil, nil)

	board := p.Build(context.Background(), now)

	assert.Equal(t, Live, board.Provenance)
	assert.Equal(t, ReasonNone, board.Reason)
	require.Len(t, board.Statuses, 1)
	st := board.Statuses[0]
	assert.Equal(t, "FL1 2003", st.Departure.TrainID)
	assert.Equal(t, 7, st.MinutesUntil)
	assert.Equal(t, Soon, st.Urgency)
}

func TestPlanner_FailureReasons(t *testing.T) {
	s := testSettings()

	tests := []struct {
		name string
		err  error
		want FallbackReason
	}{
		{"transport", fmt.Errorf("%w: connection refused", ErrFetchFailed), ReasonFetch},
		{"unknown error", errors.New("boom"), ReasonFetch},
		{"malformed", fmt.Errorf("decode: %w", ErrMalformedPayload), ReasonMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlanner(s, &stubFetcher{err: tt.err}, nil, nil)
			board := p.Build(context.Background(), at(18, 0, 0))

			assert.Equal(t, Inbound, board.Leg.Direction)
			assert.Equal(t, Synthesized, board.Provenance)
			assert.Equal(t, tt.want, board.Reason)
			assert.Len(t, board.Statuses, MaxDepartures)
		})
	}
}

func TestPlanner_Offline(t *testing.T) {
	s := testSettings()
	p := NewPlanner(s, nil, nil, nil)

	board := p.Build(context.Background(), at(23, 30, 0))

	assert.Equal(t, Outbound, board.Leg.Direction)
	assert.Equal(t, Synthesized, board.Provenance)
	assert.Equal(t, ReasonFetch, board.Reason)
	assert.Len(t, board.Departures, MaxDepartures)
}

func TestPlanner_UsesConfiguredLocation(t *testing.T) {
	s := testSettings()
	p := NewPlanner(s, nil, nil, nil)

	// 13:30 UTC is 14:30 in Rome in March, past the morning cutoff
	board := p.Build(context.Background(), time.Date(2026, 3, 4, 13, 30, 0, 0, time.UTC))

	assert.Equal(t, Inbound, board.Leg.Direction)
	assert.Equal(t, rome.String(), board.Now.Location().String())
}
