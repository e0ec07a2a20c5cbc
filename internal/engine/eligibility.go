package engine

import (
	"time"

	"conviction-radar/internal/domain"
)

// MinPutDTE is the minimum days-to-expiry at least one put must carry for
// the ticker to qualify. Short-dated puts alone don't signal accumulation.
const MinPutDTE = 90

// Eligible is the hard qualification gate. Criteria run in order and
// short-circuit on the first failure:
//  1. both puts and calls present
//  2. put/call confluence within the 7-day window
//  3. activity on at least 2 distinct calendar dates
//  4. at least one put with DTE >= 90
func Eligible(g domain.TickerGroup, today time.Time) bool {
	if len(g.Puts) == 0 || len(g.Calls) == 0 {
		return false
	}
	if !HasConfluence(g) {
		return false
	}
	if distinctTradeDates(g) < 2 {
		return false
	}
	return hasLongDatedPut(g, today)
}

func distinctTradeDates(g domain.TickerGroup) int {
	seen := make(map[string]struct{}, len(g.Puts)+len(g.Calls))
	for _, p := range g.Puts {
		seen[p.TradeDate.Format("2006-01-02")] = struct{}{}
	}
	for _, c := range g.Calls {
		seen[c.TradeDate.Format("2006-01-02")] = struct{}{}
	}
	return len(seen)
}

func hasLongDatedPut(g domain.TickerGroup, today time.Time) bool {
	for _, p := range g.Puts {
		if DaysToExpiry(p, today) >= MinPutDTE {
			return true
		}
	}
	return false
}

// DaysToExpiry computes DTE from the pipeline's today anchor.
func DaysToExpiry(p domain.Position, today time.Time) int {
	return daysBetween(today, p.Expiry)
}
