package commute

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Fetcher retrieves raw departures for a station board. Implementations own
// transport details such as timeouts, headers and retries.
type Fetcher interface {
	FetchDepartures(ctx context.Context, stationCode string, now time.Time) ([]Departure, error)
}

// Planner ties the resolver, fetcher, filter, generator and classifier together
type Planner struct {
	settings  Settings
	fetcher   Fetcher
	generator *Generator
	logger    *logrus.Logger
}

// NewPlanner builds a planner. A nil fetcher makes every board synthesized;
// a nil logger discards log output.
func NewPlanner(settings Settings, fetcher Fetcher, generator *Generator, logger *logrus.Logger) *Planner {
	if generator == nil {
		generator = NewGenerator(settings, nil)
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Planner{
		settings:  settings,
		fetcher:   fetcher,
		generator: generator,
		logger:    logger,
	}
}

// Settings returns the immutable settings the planner was built with
func (p *Planner) Settings() Settings {
	return p.settings
}

// Build runs one render cycle for instant now. It never fails: any problem
// with the live data results in a synthesized board.
func (p *Planner) Build(ctx context.Context, now time.Time) Board {
	loc := p.settings.Loc()
	now = now.In(loc)
	leg := ResolveLeg(p.settings, now.Hour())

	log := p.logger.WithFields(logrus.Fields{
		"direction": leg.Direction.String(),
		"station":   leg.StationCode,
	})

	board := Board{Now: now, Leg: leg, Provenance: Live}

	deps, reason := p.liveDepartures(ctx, leg, now, log)
	if reason != ReasonNone {
		log.WithField("reason", string(reason)).Debug("falling back to synthesized schedule")
		deps = p.generator.Generate(leg, now)
		board.Provenance = Synthesized
		board.Reason = reason
	} else {
		log.WithField("count", len(deps)).Debug("using live departures")
	}

	board.Departures = deps
	board.Statuses = ClassifyAll(deps, now, loc)
	return board
}

func (p *Planner) liveDepartures(ctx context.Context, leg CommuteLeg, now time.Time, log *logrus.Entry) ([]Departure, FallbackReason) {
	if p.fetcher == nil {
		return nil, ReasonFetch
	}

	raw, err := p.fetcher.FetchDepartures(ctx, leg.StationCode, now)
	if err != nil {
		log.WithError(err).Warn("live departures unavailable")
		return nil, reasonFor(err)
	}

	deps := FilterDepartures(raw, leg, now)
	if len(deps) == 0 {
		return nil, ReasonNoMatches
	}
	return deps, ReasonNone
}
