package engine

import "conviction-radar/internal/domain"

// GroupByTicker partitions positions into one group per distinct ticker.
// Blank tickers are dropped; everything else lands in exactly one group.
// Group order follows first appearance in the input, which keeps the full
// pipeline deterministic for a fixed input sequence.
func GroupByTicker(positions []domain.Position) []domain.TickerGroup {
	index := make(map[string]int)
	groups := make([]domain.TickerGroup, 0)

	for _, p := range positions {
		if p.Ticker == "" {
			continue
		}
		i, ok := index[p.Ticker]
		if !ok {
			i = len(groups)
			index[p.Ticker] = i
			groups = append(groups, domain.TickerGroup{Ticker: p.Ticker})
		}
		switch p.Type {
		case domain.OptionCall:
			groups[i].Calls = append(groups[i].Calls, p)
		default:
			groups[i].Puts = append(groups[i].Puts, p)
		}
	}

	return groups
}
