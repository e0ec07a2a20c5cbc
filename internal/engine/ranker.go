package engine

import (
	"sort"

	"conviction-radar/internal/domain"
)

const (
	// MaxSignals caps the ranked output.
	MaxSignals = 8

	// Badge thresholds are absolute, not percentile based: a badge
	// communicates conviction magnitude, not rank within the batch. Tuned
	// jointly with the weight constants in scorer.go.
	strongThreshold  = 150_000.0
	notableThreshold = 75_000.0
)

// Rank sorts signals by score descending (stable, so equal scores keep
// their upstream first-seen order), truncates to the cap, and badges the
// survivors. The input slice is not modified.
func Rank(signals []domain.Signal) []domain.Signal {
	ranked := make([]domain.Signal, len(signals))
	copy(ranked, signals)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > MaxSignals {
		ranked = ranked[:MaxSignals]
	}
	for i := range ranked {
		ranked[i].Badge = BadgeFor(ranked[i].Score)
	}
	return ranked
}

// BadgeFor maps a score to its conviction tier. Boundaries are exclusive:
// a score sitting exactly on a threshold takes the lower tier.
func BadgeFor(score float64) domain.Badge {
	switch {
	case score > strongThreshold:
		return domain.BadgeStrong
	case score > notableThreshold:
		return domain.BadgeNotable
	default:
		return domain.BadgeWatch
	}
}
