package engine

import (
	"math"
	"testing"
	"time"

	"conviction-radar/internal/domain"
)

func TestParseDateSlashShapes(t *testing.T) {
	t.Parallel()

	got, ok := ParseDate("6/15/2025")
	if !ok {
		t.Fatal("expected M/D/YYYY to parse")
	}
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got, ok = ParseDate("06/15/25")
	if !ok || !got.Equal(want) {
		t.Fatalf("two-digit year should map to 2025, got %v ok=%v", got, ok)
	}
}

func TestParseDateISOIsLocal(t *testing.T) {
	t.Parallel()

	got, ok := ParseDate("2025-06-15")
	if !ok {
		t.Fatal("expected YYYY-MM-DD to parse")
	}
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("ISO date must be a local calendar date, got %v", got)
	}
}

func TestParseDateFallbackNormalizesToMidnight(t *testing.T) {
	t.Parallel()

	got, ok := ParseDate("2025/06/15")
	if !ok {
		t.Fatal("expected fallback layout to parse")
	}
	h, m, s := got.Clock()
	if h != 0 || m != 0 || s != 0 {
		t.Fatalf("fallback parse must land on midnight, got %v", got)
	}
}

func TestParseDateRejects(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "not-a-date", "2/30/2025", "13/1/2025", "x/y/z"} {
		if _, ok := ParseDate(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestNormalizeDefaultsToPut(t *testing.T) {
	t.Parallel()

	positions := Normalize([]domain.RawTradeRecord{
		{Symbol: " xyz ", Strike: 100, Expiry: dateStr(120), Contracts: 5, TradeDate: dateStr(-1), Premium: fptr(1.0)},
	})
	if len(positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(positions))
	}
	if positions[0].Type != domain.OptionPut {
		t.Fatalf("missing type should default to put, got %s", positions[0].Type)
	}
	if positions[0].Ticker != "XYZ" {
		t.Fatalf("ticker should be trimmed and upper-cased, got %q", positions[0].Ticker)
	}
}

func TestNormalizePremiumPrecedence(t *testing.T) {
	t.Parallel()

	r := rec("XYZ", "call", 5, -1, 120, fptr(9.0))
	r.CurrentPremium = fptr(4.0)
	r.Premium = fptr(1.0)

	positions := Normalize([]domain.RawTradeRecord{r})
	if len(positions) != 1 || positions[0].OriginalPremium != 9.0 {
		t.Fatalf("original_premium should win, got %+v", positions)
	}

	r.OriginalPremium = nil
	positions = Normalize([]domain.RawTradeRecord{r})
	if len(positions) != 1 || positions[0].OriginalPremium != 4.0 {
		t.Fatalf("current_premium should be the first fallback, got %+v", positions)
	}

	r.CurrentPremium = fptr(math.NaN())
	positions = Normalize([]domain.RawTradeRecord{r})
	if len(positions) != 1 || positions[0].OriginalPremium != 1.0 {
		t.Fatalf("non-finite premium should be skipped, got %+v", positions)
	}
}

func TestNormalizeDropsInvalidRecords(t *testing.T) {
	t.Parallel()

	valid := rec("XYZ", "put", 5, -1, 120, fptr(1.0))

	badExpiry := valid
	badExpiry.Expiry = "soon"

	badTrade := valid
	badTrade.TradeDate = "yesterday-ish"

	zeroContracts := valid
	zeroContracts.Contracts = 0

	fractionalContracts := valid
	fractionalContracts.Contracts = 2.5

	noPremium := valid
	noPremium.OriginalPremium = nil

	expiredBeforeTrade := valid
	expiredBeforeTrade.Expiry = dateStr(-10)

	zeroStrike := valid
	zeroStrike.Strike = 0

	positions := Normalize([]domain.RawTradeRecord{
		badExpiry, badTrade, zeroContracts, fractionalContracts,
		noPremium, expiredBeforeTrade, zeroStrike, valid,
	})
	if len(positions) != 1 {
		t.Fatalf("expected only the valid record to survive, got %d", len(positions))
	}
}

func TestFilterActive(t *testing.T) {
	t.Parallel()

	positions := []domain.Position{
		{Ticker: "OLD", Expiry: testToday.AddDate(0, 0, -1)},
		{Ticker: "TODAY", Expiry: testToday},
		{Ticker: "FUTURE", Expiry: testToday.AddDate(0, 0, 30)},
	}

	active := FilterActive(positions, testToday)
	if len(active) != 2 {
		t.Fatalf("expected 2 active positions, got %d", len(active))
	}
	if active[0].Ticker != "TODAY" || active[1].Ticker != "FUTURE" {
		t.Fatalf("unexpected active set: %+v", active)
	}
}
