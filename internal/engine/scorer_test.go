package engine

import (
	"math"
	"testing"

	"conviction-radar/internal/domain"
)

func TestDteWeightBuckets(t *testing.T) {
	t.Parallel()

	cases := []struct {
		dte  int
		want float64
	}{
		{365, 3}, {180, 3}, {179, 2}, {90, 2}, {89, 1.5}, {30, 1.5}, {29, 1}, {0, 1},
	}
	for _, c := range cases {
		if got := dteWeight(c.dte); got != c.want {
			t.Fatalf("dteWeight(%d) = %v, want %v", c.dte, got, c.want)
		}
	}
}

func TestPremiumWeightBuckets(t *testing.T) {
	t.Parallel()

	cases := []struct {
		premium float64
		want    float64
	}{
		{math.NaN(), 1.5},
		{math.Inf(1), 1.5},
		{0, 1.5}, // not yet observed: neutral, not punitive
		{5.01, 2},
		{5, 1.5},
		{1, 1.5},
		{0.5, 1},
	}
	for _, c := range cases {
		if got := premiumWeight(c.premium); got != c.want {
			t.Fatalf("premiumWeight(%v) = %v, want %v", c.premium, got, c.want)
		}
	}
}

func TestScoreGroupAggregates(t *testing.T) {
	t.Parallel()

	put1 := pos("XYZ", domain.OptionPut, -10)
	put1.Expiry = testToday.AddDate(0, 0, 200) // weight 3
	put1.Contracts = 100
	put2 := pos("XYZ", domain.OptionPut, -3)
	put2.Expiry = testToday.AddDate(0, 0, 45) // weight 1.5
	put2.Contracts = 10
	call := pos("XYZ", domain.OptionCall, -5)
	call.Expiry = testToday.AddDate(0, 0, 60)
	call.Contracts = 20
	call.OriginalPremium = 6.0 // weight 2

	sig := ScoreGroup(domain.TickerGroup{
		Ticker: "XYZ",
		Puts:   []domain.Position{put1, put2},
		Calls:  []domain.Position{call},
	}, testToday)

	if sig.PutScore != 100*3+10*1.5 {
		t.Fatalf("unexpected put score %v", sig.PutScore)
	}
	if sig.CallScore != 20*2 {
		t.Fatalf("unexpected call score %v", sig.CallScore)
	}
	if sig.Score != (sig.PutScore+sig.CallScore)*1.5 {
		t.Fatalf("score must be raw score times the confluence multiplier, got %v", sig.Score)
	}
	if sig.DaysActive != 10 {
		t.Fatalf("expected 10 days active, got %d", sig.DaysActive)
	}
	if !sig.MinTradeDate.Equal(put1.TradeDate) {
		t.Fatalf("unexpected min trade date %v", sig.MinTradeDate)
	}
	if !sig.MaxExpiry.Equal(put1.Expiry) {
		t.Fatalf("unexpected max expiry %v", sig.MaxExpiry)
	}
	if sig.TotalPutContracts != 110 || sig.TotalCallContracts != 20 || sig.TotalContracts != 130 {
		t.Fatalf("unexpected totals: %+v", sig)
	}
}

func TestScoreGroupDaysActiveFloor(t *testing.T) {
	t.Parallel()

	put := pos("XYZ", domain.OptionPut, 0)
	put.Expiry = testToday.AddDate(0, 0, 120)
	call := pos("XYZ", domain.OptionCall, 0)
	call.Expiry = testToday.AddDate(0, 0, 60)

	sig := ScoreGroup(domain.TickerGroup{Ticker: "XYZ", Puts: []domain.Position{put}, Calls: []domain.Position{call}}, testToday)
	if sig.DaysActive != 1 {
		t.Fatalf("same-day activity must floor at 1, got %d", sig.DaysActive)
	}
}
