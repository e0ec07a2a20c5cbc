package domain

import "time"

type Badge string

const (
	BadgeStrong  Badge = "STRONG"
	BadgeNotable Badge = "NOTABLE"
	BadgeWatch   Badge = "WATCH"
)

func (b Badge) IsValid() bool {
	return b == BadgeStrong || b == BadgeNotable || b == BadgeWatch
}

// Signal is one qualifying ticker's scored conviction entry. Created once
// during scoring and frozen after the badge is assigned.
type Signal struct {
	Ticker             string     `json:"ticker"`
	TotalPutContracts  int        `json:"total_put_contracts"`
	TotalCallContracts int        `json:"total_call_contracts"`
	TotalContracts     int        `json:"total_contracts"`
	PutScore           float64    `json:"put_score"`
	CallScore          float64    `json:"call_score"`
	Score              float64    `json:"score"`
	DaysActive         int        `json:"days_active"`
	MinTradeDate       time.Time  `json:"min_trade_date"`
	MaxExpiry          time.Time  `json:"max_expiry"`
	Badge              Badge      `json:"badge"`
	Puts               []Position `json:"puts"`
	Calls              []Position `json:"calls"`
}

// SignalReport is the capped, ordered output of one pipeline run plus the
// pipeline metadata a caller needs to render "N of M tickers qualified".
type SignalReport struct {
	Signals        []Signal  `json:"signals"`
	QualifiedCount int       `json:"qualified_count"`
	CandidateCount int       `json:"candidate_count"`
	GeneratedAt    time.Time `json:"generated_at"`
}
