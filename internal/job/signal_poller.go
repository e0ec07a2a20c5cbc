package job

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type SignalRefresher interface {
	RefreshSignals(ctx context.Context) error
}

// SignalPoller periodically pulls a fresh dataset and recomputes the
// report so the cache stays warm between manual refreshes.
type SignalPoller struct {
	tracer       trace.Tracer
	signals      SignalRefresher
	pollInterval time.Duration
}

func NewSignalPoller(tracer trace.Tracer, signals SignalRefresher, pollIntervalSecs int) *SignalPoller {
	return &SignalPoller{
		tracer:       tracer,
		signals:      signals,
		pollInterval: time.Duration(pollIntervalSecs) * time.Second,
	}
}

// Start blocks until ctx is cancelled.
func (p *SignalPoller) Start(ctx context.Context) {
	log.Println("Signal poller starting...")

	// Run immediately so the first report is ready before the first tick.
	p.refresh(ctx)

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Signal poller stopped")
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *SignalPoller) refresh(ctx context.Context) {
	ctx, span := p.tracer.Start(ctx, "signal-poller.refresh")
	defer span.End()

	if err := p.signals.RefreshSignals(ctx); err != nil {
		span.RecordError(err)
		log.Printf("signal refresh error: %v", err)
	}
}
