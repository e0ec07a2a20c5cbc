package engine

import (
	"testing"

	"conviction-radar/internal/domain"
)

func eligibleGroup() domain.TickerGroup {
	put := pos("XYZ", domain.OptionPut, -10)
	put.Expiry = testToday.AddDate(0, 0, 120)
	call := pos("XYZ", domain.OptionCall, -8)
	call.Expiry = testToday.AddDate(0, 0, 60)
	return domain.TickerGroup{Ticker: "XYZ", Puts: []domain.Position{put}, Calls: []domain.Position{call}}
}

func TestEligiblePasses(t *testing.T) {
	t.Parallel()

	if !Eligible(eligibleGroup(), testToday) {
		t.Fatal("expected the reference group to qualify")
	}
}

func TestEligibleRequiresBothSides(t *testing.T) {
	t.Parallel()

	g := eligibleGroup()
	g.Calls = nil
	if Eligible(g, testToday) {
		t.Fatal("puts-only group must not qualify")
	}

	g = eligibleGroup()
	g.Puts = nil
	if Eligible(g, testToday) {
		t.Fatal("calls-only group must not qualify")
	}
}

func TestEligibleRequiresConfluence(t *testing.T) {
	t.Parallel()

	g := eligibleGroup()
	g.Calls[0].TradeDate = testToday.AddDate(0, 0, -30)
	if Eligible(g, testToday) {
		t.Fatal("30-day gap must fail the confluence gate")
	}
}

func TestEligibleRequiresMultiDayActivity(t *testing.T) {
	t.Parallel()

	g := eligibleGroup()
	g.Calls[0].TradeDate = g.Puts[0].TradeDate
	if Eligible(g, testToday) {
		t.Fatal("single-day activity must not qualify")
	}
}

func TestEligibleRequiresLongDatedPut(t *testing.T) {
	t.Parallel()

	g := eligibleGroup()
	g.Puts[0].Expiry = testToday.AddDate(0, 0, MinPutDTE-1)
	if Eligible(g, testToday) {
		t.Fatal("DTE 89 put must not satisfy the tenor gate")
	}

	g.Puts[0].Expiry = testToday.AddDate(0, 0, MinPutDTE)
	if !Eligible(g, testToday) {
		t.Fatal("DTE exactly 90 must satisfy the tenor gate")
	}
}

func TestDistinctTradeDatesUnionsBothSides(t *testing.T) {
	t.Parallel()

	g := eligibleGroup()
	extra := pos("XYZ", domain.OptionPut, -8) // same date as the call
	extra.Expiry = testToday.AddDate(0, 0, 120)
	g.Puts = append(g.Puts, extra)

	if got := distinctTradeDates(g); got != 2 {
		t.Fatalf("expected 2 distinct dates, got %d", got)
	}
}
