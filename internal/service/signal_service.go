package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"conviction-radar/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const reportCacheKey = "signals:report"

// PositionProvider fetches the raw trade-record dataset from its source
// (HTTP feed or local file).
type PositionProvider interface {
	FetchPositions(ctx context.Context) ([]domain.RawTradeRecord, error)
}

type PositionRepository interface {
	UpsertRecords(ctx context.Context, records []domain.RawTradeRecord) error
	ListTradeRecords(ctx context.Context) ([]domain.RawTradeRecord, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

type SignalEngine interface {
	Run(records []domain.RawTradeRecord) domain.SignalReport
	ActivePositions(records []domain.RawTradeRecord, ticker string) []domain.Position
}

// SignalService orchestrates dataset loading, scoring, and report
// caching. Scoring is pure and cheap; the cache exists to spare the
// upstream feed, not the engine.
type SignalService struct {
	tracer    trace.Tracer
	provider  PositionProvider
	repo      PositionRepository
	redis     RedisClient
	engine    SignalEngine
	reportTTL time.Duration
}

func NewSignalService(
	tracer trace.Tracer,
	provider PositionProvider,
	repo PositionRepository,
	redisClient RedisClient,
	engine SignalEngine,
	reportTTL time.Duration,
) *SignalService {
	return &SignalService{
		tracer:    tracer,
		provider:  provider,
		repo:      repo,
		redis:     redisClient,
		engine:    engine,
		reportTTL: reportTTL,
	}
}

// GetSignalReport returns the current ranked report, serving from Redis
// when a fresh copy exists and recomputing from the dataset otherwise.
func (s *SignalService) GetSignalReport(ctx context.Context) (*domain.SignalReport, error) {
	_, span := s.tracer.Start(ctx, "signal-service.get-signal-report")
	defer span.End()

	if s.redis != nil {
		cached, err := s.getReportCache(ctx)
		if err != nil {
			log.Printf("redis cache read error: %v", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}

	report := s.engine.Run(records)
	if s.redis != nil {
		_ = s.setReportCache(ctx, &report)
	}
	return &report, nil
}

// RefreshSignals pulls a fresh dataset from the feed, persists the raw
// records when a store is configured, and replaces the cached report.
func (s *SignalService) RefreshSignals(ctx context.Context) error {
	_, span := s.tracer.Start(ctx, "signal-service.refresh-signals")
	defer span.End()

	records, err := s.provider.FetchPositions(ctx)
	if err != nil {
		return err
	}

	if s.repo != nil {
		if err := s.repo.UpsertRecords(ctx, records); err != nil {
			log.Printf("position store write error: %v", err)
		}
	}

	report := s.engine.Run(records)
	if s.redis != nil {
		if err := s.setReportCache(ctx, &report); err != nil {
			log.Printf("redis cache write error: %v", err)
		}
	}

	log.Printf("Refreshed signals: %d qualified of %d candidates", report.QualifiedCount, report.CandidateCount)
	return nil
}

// GetSignal returns the ranked signal for one ticker, or an error when
// the ticker did not qualify.
func (s *SignalService) GetSignal(ctx context.Context, ticker string) (*domain.Signal, error) {
	report, err := s.GetSignalReport(ctx)
	if err != nil {
		return nil, err
	}
	for i := range report.Signals {
		if report.Signals[i].Ticker == ticker {
			return &report.Signals[i], nil
		}
	}
	return nil, fmt.Errorf("no signal for %s", ticker)
}

// GetPositionsByTicker returns the normalized, still-active positions
// for one ticker, qualified or not. Chart rendering uses this.
func (s *SignalService) GetPositionsByTicker(ctx context.Context, ticker string) ([]domain.Position, error) {
	_, span := s.tracer.Start(ctx, "signal-service.get-positions-by-ticker")
	defer span.End()

	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.ActivePositions(records, ticker), nil
}

// loadRecords prefers the position store and falls back to the live
// feed when the store is absent or empty.
func (s *SignalService) loadRecords(ctx context.Context) ([]domain.RawTradeRecord, error) {
	if s.repo != nil {
		records, err := s.repo.ListTradeRecords(ctx)
		if err != nil {
			log.Printf("position store read error: %v", err)
		}
		if len(records) > 0 {
			return records, nil
		}
	}
	return s.provider.FetchPositions(ctx)
}

func (s *SignalService) setReportCache(ctx context.Context, report *domain.SignalReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, reportCacheKey, data, s.reportTTL).Err()
}

func (s *SignalService) getReportCache(ctx context.Context) (*domain.SignalReport, error) {
	data, err := s.redis.Get(ctx, reportCacheKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report domain.SignalReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
