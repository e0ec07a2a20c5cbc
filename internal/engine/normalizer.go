package engine

import (
	"math"
	"strconv"
	"strings"
	"time"

	"conviction-radar/internal/domain"
)

// Normalize turns raw trade records into canonical positions. Records that
// fail validation are dropped silently: malformed input is filtering, not
// failure, so no per-record error is surfaced.
func Normalize(records []domain.RawTradeRecord) []domain.Position {
	positions := make([]domain.Position, 0, len(records))
	for _, r := range records {
		p, ok := normalizeRecord(r)
		if !ok {
			continue
		}
		positions = append(positions, p)
	}
	return positions
}

// FilterActive keeps positions whose expiry is on or after the today
// anchor. Expired positions never reach grouping.
func FilterActive(positions []domain.Position, today time.Time) []domain.Position {
	active := make([]domain.Position, 0, len(positions))
	for _, p := range positions {
		if !p.Expiry.Before(today) {
			active = append(active, p)
		}
	}
	return active
}

func normalizeRecord(r domain.RawTradeRecord) (domain.Position, bool) {
	expiry, ok := ParseDate(r.Expiry)
	if !ok {
		return domain.Position{}, false
	}
	tradeDate, ok := ParseDate(r.TradeDate)
	if !ok {
		return domain.Position{}, false
	}
	if !expiry.After(tradeDate) {
		return domain.Position{}, false
	}
	if r.Strike <= 0 || math.IsNaN(r.Strike) || math.IsInf(r.Strike, 0) {
		return domain.Position{}, false
	}
	if r.Contracts <= 0 || r.Contracts != math.Trunc(r.Contracts) {
		return domain.Position{}, false
	}
	premium, ok := resolvePremium(r)
	if !ok {
		return domain.Position{}, false
	}

	return domain.Position{
		Ticker:          strings.ToUpper(strings.TrimSpace(r.Symbol)),
		Type:            optionType(r.Type),
		Strike:          r.Strike,
		Expiry:          expiry,
		TradeDate:       tradeDate,
		Contracts:       int(r.Contracts),
		OriginalPremium: premium,
	}, true
}

// resolvePremium picks the first finite premium in precedence order:
// original_premium, then current_premium, then premium.
func resolvePremium(r domain.RawTradeRecord) (float64, bool) {
	for _, v := range []*float64{r.OriginalPremium, r.CurrentPremium, r.Premium} {
		if v == nil {
			continue
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		return *v, true
	}
	return 0, false
}

// A missing or unrecognized type field means a sold put; only an explicit
// "call" marks the directional leg.
func optionType(raw string) domain.OptionType {
	if strings.EqualFold(strings.TrimSpace(raw), string(domain.OptionCall)) {
		return domain.OptionCall
	}
	return domain.OptionPut
}

var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate accepts the three supported textual date shapes in precedence
// order: M/D/YYYY (two-digit years read as 2000+), YYYY-MM-DD as a LOCAL
// calendar date (UTC parsing would shift the day for western timezones),
// then a best-effort generic parse. The result is always local midnight.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if t, ok := parseSlashDate(s); ok {
		return t, true
	}

	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return LocalMidnight(t), true
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return LocalMidnight(t.In(time.Local)), true
		}
	}

	return time.Time{}, false
}

func parseSlashDate(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil || year < 0 {
		return time.Time{}, false
	}
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes overflow (2/30 becomes 3/2); reject those.
	if int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// LocalMidnight truncates a time to its local calendar date.
func LocalMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
