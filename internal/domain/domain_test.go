package domain

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestBadgeIsValid(t *testing.T) {
	t.Parallel()

	for _, b := range []Badge{BadgeStrong, BadgeNotable, BadgeWatch} {
		if !b.IsValid() {
			t.Fatalf("expected %s to be valid", b)
		}
	}
	if Badge("GOLD").IsValid() {
		t.Fatal("unknown badge should be invalid")
	}
}

func TestPositionMarshalUnobservedPremium(t *testing.T) {
	t.Parallel()

	p := Position{Ticker: "XYZ", Type: OptionPut, Strike: 100, Contracts: 5, OriginalPremium: math.NaN()}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal with NaN premium: %v", err)
	}
	if !strings.Contains(string(data), `"original_premium":0`) {
		t.Fatalf("expected premium rendered as 0, got %s", data)
	}
}

func TestPositionPremiumObserved(t *testing.T) {
	t.Parallel()

	if (Position{OriginalPremium: math.NaN()}).PremiumObserved() {
		t.Fatal("NaN premium should not count as observed")
	}
	if (Position{OriginalPremium: 0}).PremiumObserved() {
		t.Fatal("zero premium should not count as observed")
	}
	if !(Position{OriginalPremium: 2.5}).PremiumObserved() {
		t.Fatal("finite non-zero premium should count as observed")
	}
}
