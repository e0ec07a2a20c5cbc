package engine

import (
	"math"
	"time"

	"conviction-radar/internal/domain"
)

// Weighting constants. These are tuned jointly with the badge thresholds
// in ranker.go: moving any weight shifts every badge boundary.
const (
	// confluenceMultiplier scales every score uniformly. Confluence is a
	// precondition to reach scoring, so this is a pure scale factor kept
	// for score-value compatibility with earlier report generations.
	confluenceMultiplier = 1.5

	longDTE  = 180
	midDTE   = 90
	shortDTE = 30

	richPremium = 5.0
	fairPremium = 1.0
)

func dteWeight(dte int) float64 {
	switch {
	case dte >= longDTE:
		return 3
	case dte >= midDTE:
		return 2
	case dte >= shortDTE:
		return 1.5
	default:
		return 1
	}
}

func premiumWeight(premium float64) float64 {
	// Non-finite or exactly-zero premium means "not yet observed": score
	// with the neutral weight instead of penalizing the position.
	if math.IsNaN(premium) || math.IsInf(premium, 0) || premium == 0 {
		return 1.5
	}
	switch {
	case premium > richPremium:
		return 2
	case premium >= fairPremium:
		return 1.5
	default:
		return 1
	}
}

// ScoreGroup computes the conviction signal for one eligible ticker group.
// Puts are weighted by tenor, calls by observed premium, and the group
// keeps its position lists so downstream collaborators (chart renderer,
// narrative generator) can show the per-position breakdown.
func ScoreGroup(g domain.TickerGroup, today time.Time) domain.Signal {
	putScore := 0.0
	totalPuts := 0
	for _, p := range g.Puts {
		putScore += float64(p.Contracts) * dteWeight(DaysToExpiry(p, today))
		totalPuts += p.Contracts
	}

	callScore := 0.0
	totalCalls := 0
	for _, c := range g.Calls {
		callScore += float64(c.Contracts) * premiumWeight(c.OriginalPremium)
		totalCalls += c.Contracts
	}

	minTrade, maxExpiry := span(g)

	daysActive := daysBetween(minTrade, today)
	if daysActive < 1 {
		daysActive = 1
	}

	return domain.Signal{
		Ticker:             g.Ticker,
		TotalPutContracts:  totalPuts,
		TotalCallContracts: totalCalls,
		TotalContracts:     totalPuts + totalCalls,
		PutScore:           putScore,
		CallScore:          callScore,
		Score:              (putScore + callScore) * confluenceMultiplier,
		DaysActive:         daysActive,
		MinTradeDate:       minTrade,
		MaxExpiry:          maxExpiry,
		Puts:               g.Puts,
		Calls:              g.Calls,
	}
}

func span(g domain.TickerGroup) (minTrade, maxExpiry time.Time) {
	for _, list := range [][]domain.Position{g.Puts, g.Calls} {
		for _, p := range list {
			if minTrade.IsZero() || p.TradeDate.Before(minTrade) {
				minTrade = p.TradeDate
			}
			if p.Expiry.After(maxExpiry) {
				maxExpiry = p.Expiry
			}
		}
	}
	return minTrade, maxExpiry
}
