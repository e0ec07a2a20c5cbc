package engine

import (
	"strings"
	"time"

	"conviction-radar/internal/domain"
)

// Engine runs the full conviction-signal pipeline: normalize, filter to
// active, group by ticker, gate, score, rank. It is pure and synchronous;
// every invocation allocates fresh intermediates, so concurrent calls are
// safe as long as the input slice itself is not mutated mid-run.
type Engine struct {
	now func() time.Time
}

// New returns an engine using the given clock, or time.Now when nil.
func New(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Run executes the pipeline over one materialized record set. The today
// anchor is computed once, at local midnight, and shared by the activity
// filter, the eligibility gate, and the scorer.
func (e *Engine) Run(records []domain.RawTradeRecord) domain.SignalReport {
	today := LocalMidnight(e.now())

	active := FilterActive(Normalize(records), today)
	groups := GroupByTicker(active)

	candidates := 0
	signals := make([]domain.Signal, 0, len(groups))
	for _, g := range groups {
		if len(g.Puts) > 0 && len(g.Calls) > 0 {
			candidates++
		}
		if !Eligible(g, today) {
			continue
		}
		signals = append(signals, ScoreGroup(g, today))
	}

	return domain.SignalReport{
		Signals:        Rank(signals),
		QualifiedCount: len(signals),
		CandidateCount: candidates,
		GeneratedAt:    e.now(),
	}
}

// ActivePositions returns the currently active positions for one ticker,
// in input order. This is the feed the chart renderer consumes.
func (e *Engine) ActivePositions(records []domain.RawTradeRecord, ticker string) []domain.Position {
	today := LocalMidnight(e.now())
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	var out []domain.Position
	for _, p := range FilterActive(Normalize(records), today) {
		if p.Ticker == ticker {
			out = append(out, p)
		}
	}
	return out
}
