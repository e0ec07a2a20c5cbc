package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"conviction-radar/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// SignalReader is the slice of the signal service the bot needs.
type SignalReader interface {
	GetSignalReport(ctx context.Context) (*domain.SignalReport, error)
	GetSignal(ctx context.Context, ticker string) (*domain.Signal, error)
}

func StartTelegramBot(signals SignalReader) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/signals", func(c tele.Context) error {
		report, err := signals.GetSignalReport(context.Background())
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching signals: %v", err))
		}
		if len(report.Signals) == 0 {
			return c.Send(fmt.Sprintf("No qualifying signals (%d candidates screened)", report.CandidateCount))
		}
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Conviction signals (%d of %d candidates qualified):\n",
			report.QualifiedCount, report.CandidateCount))
		for i, s := range report.Signals {
			sb.WriteString(fmt.Sprintf("%d. %s [%s] score %.0f, %d contracts\n",
				i+1, s.Ticker, s.Badge, s.Score, s.TotalContracts))
		}
		return c.Send(sb.String())
	})

	b.Handle("/ticker", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /ticker XYZ")
		}
		ticker := strings.ToUpper(args[0])
		sig, err := signals.GetSignal(context.Background(), ticker)
		if err != nil {
			return c.Send(fmt.Sprintf("No signal for %s", ticker))
		}
		msg := fmt.Sprintf(
			"%s [%s]\nScore: %.0f (puts %.0f, calls %.0f)\nContracts: %d puts / %d calls\nActive %d days, last expiry %s",
			sig.Ticker, sig.Badge, sig.Score, sig.PutScore, sig.CallScore,
			sig.TotalPutContracts, sig.TotalCallContracts,
			sig.DaysActive, sig.MaxExpiry.Format("2006-01-02"),
		)
		return c.Send(msg)
	})

	log.Println("Telegram bot started")
	go b.Start()
}
