package domain

import (
	"encoding/json"
	"math"
	"time"
)

type OptionType string

const (
	OptionPut  OptionType = "put"
	OptionCall OptionType = "call"
)

// RawTradeRecord is one trade row exactly as the position data provider
// delivers it. Dates stay as strings and the three premium fields stay
// optional until normalization; contracts is a float so that non-integral
// payload values can be rejected instead of silently truncated.
type RawTradeRecord struct {
	Symbol          string   `json:"symbol"`
	Strike          float64  `json:"strike"`
	Expiry          string   `json:"expiry"`
	Contracts       float64  `json:"contracts"`
	TradeDate       string   `json:"trade_date"`
	OriginalPremium *float64 `json:"original_premium,omitempty"`
	CurrentPremium  *float64 `json:"current_premium,omitempty"`
	Premium         *float64 `json:"premium,omitempty"`
	Type            string   `json:"type,omitempty"`
}

// Position is one validated options trade (a sold put or a bought call)
// tied to one ticker. Positions are value objects: built once by the
// normalizer, never mutated downstream.
type Position struct {
	Ticker          string     `json:"ticker"`
	Type            OptionType `json:"type"`
	Strike          float64    `json:"strike"`
	Expiry          time.Time  `json:"expiry"`
	TradeDate       time.Time  `json:"trade_date"`
	Contracts       int        `json:"contracts"`
	OriginalPremium float64    `json:"original_premium"`
}

// PremiumObserved reports whether the position carries a usable premium.
// An unobserved premium is stored as NaN internally and rendered as 0.
func (p Position) PremiumObserved() bool {
	return !math.IsNaN(p.OriginalPremium) && !math.IsInf(p.OriginalPremium, 0) && p.OriginalPremium != 0
}

// MarshalJSON maps the NaN premium sentinel to 0 so reports stay valid JSON.
func (p Position) MarshalJSON() ([]byte, error) {
	type alias Position
	out := alias(p)
	if math.IsNaN(out.OriginalPremium) || math.IsInf(out.OriginalPremium, 0) {
		out.OriginalPremium = 0
	}
	return json.Marshal(out)
}

// TickerGroup holds one ticker's active positions split by option type.
// Insertion order within Puts and Calls follows input order.
type TickerGroup struct {
	Ticker string
	Puts   []Position
	Calls  []Position
}
