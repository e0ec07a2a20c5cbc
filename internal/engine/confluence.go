package engine

import (
	"math"
	"time"

	"conviction-radar/internal/domain"
)

// ConfluenceWindowDays is the maximum trade-date gap, in calendar days,
// between a sold put and a bought call for the pair to count as coordinated.
const ConfluenceWindowDays = 7

// HasConfluence reports whether at least one (put, call) pair traded within
// the confluence window. Per-ticker position counts stay in the tens, so
// the plain cross-product scan is fine; it short-circuits on first match.
func HasConfluence(g domain.TickerGroup) bool {
	for _, put := range g.Puts {
		for _, call := range g.Calls {
			if daysApart(put.TradeDate, call.TradeDate) <= ConfluenceWindowDays {
				return true
			}
		}
	}
	return false
}

// Gap identifies the closest put/call pair for diagnostics and labeling.
// Anchor is the earlier of the winning pair's two trade dates.
type Gap struct {
	Put    domain.Position
	Call   domain.Position
	Days   int
	Anchor time.Time
}

// ClosestGap locates the minimum absolute trade-date gap across all
// put×call pairs. On equal gaps the pair with the earlier anchor wins.
func ClosestGap(g domain.TickerGroup) (Gap, bool) {
	best := Gap{Days: math.MaxInt}
	found := false

	for _, put := range g.Puts {
		for _, call := range g.Calls {
			days := daysApart(put.TradeDate, call.TradeDate)
			anchor := put.TradeDate
			if call.TradeDate.Before(anchor) {
				anchor = call.TradeDate
			}
			if days < best.Days || (days == best.Days && anchor.Before(best.Anchor)) {
				best = Gap{Put: put, Call: call, Days: days, Anchor: anchor}
				found = true
			}
		}
	}

	return best, found
}

// daysBetween counts calendar days from a to b. Both sides of every call
// are local midnights, so rounding absorbs DST-shortened days.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

func daysApart(a, b time.Time) int {
	d := daysBetween(a, b)
	if d < 0 {
		return -d
	}
	return d
}
