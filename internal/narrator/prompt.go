package narrator

import (
	"fmt"
	"strings"
	"time"

	"conviction-radar/internal/domain"
)

const narrationPhilosophy = `You are an options-flow analyst. Your role is to interpret a pre-computed conviction signal, NOT to recompute or second-guess its score.

The signal describes bullish confluence on one ticker: sold puts (income, downside conviction) and bought calls (upside participation) placed within days of each other.

Rules:
- Treat the provided score, badge, and totals as ground truth. Never invent numbers.
- Lead with the badge and what it implies about signal strength.
- Point out what drives the score: long-dated puts carry the most weight, rich call premiums next.
- Mention the confluence window: how tightly the put and call trades cluster.
- Keep it under 120 words. This renders in a terminal dashboard.
- No financial advice disclaimers. The reader understands this is flow interpretation.`

func BuildSystemPrompt() string {
	var sb strings.Builder
	sb.WriteString(narrationPhilosophy)
	sb.WriteString("\n\n(Briefing generated ")
	sb.WriteString(time.Now().UTC().Format(time.RFC822))
	sb.WriteString(")")
	return sb.String()
}

// FormatSignalContext renders one signal as the user prompt, with a
// per-position breakdown so the model can point at concrete strikes.
func FormatSignalContext(s *domain.Signal) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Ticker: %s\nBadge: %s\nScore: %.0f (puts %.0f, calls %.0f)\n",
		s.Ticker, s.Badge, s.Score, s.PutScore, s.CallScore))
	sb.WriteString(fmt.Sprintf("Contracts: %d puts, %d calls, %d total\n",
		s.TotalPutContracts, s.TotalCallContracts, s.TotalContracts))
	sb.WriteString(fmt.Sprintf("Days active: %d (first trade %s, last expiry %s)\n",
		s.DaysActive, s.MinTradeDate.Format("2006-01-02"), s.MaxExpiry.Format("2006-01-02")))

	if len(s.Puts) > 0 {
		sb.WriteString("\nSold puts:\n")
		for _, p := range s.Puts {
			sb.WriteString(formatPosition(p))
		}
	}
	if len(s.Calls) > 0 {
		sb.WriteString("\nBought calls:\n")
		for _, c := range s.Calls {
			sb.WriteString(formatPosition(c))
		}
	}
	return sb.String()
}

func formatPosition(p domain.Position) string {
	premium := "premium n/a"
	if p.PremiumObserved() {
		premium = fmt.Sprintf("premium $%.2f", p.OriginalPremium)
	}
	return fmt.Sprintf("  %d contracts @ $%.2f strike, traded %s, expires %s, %s\n",
		p.Contracts, p.Strike,
		p.TradeDate.Format("2006-01-02"), p.Expiry.Format("2006-01-02"),
		premium)
}
