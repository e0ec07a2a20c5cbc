package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"conviction-radar/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// PositionFeedProvider fetches the raw trade-record dataset over HTTP.
// The engine never performs I/O itself; this collaborator owns fetch,
// absence handling, and rate limiting.
type PositionFeedProvider struct {
	client  *http.Client
	url     string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewPositionFeedProvider creates a feed provider with built-in rate
// limiting (12 requests per minute, one token every 5 seconds).
func NewPositionFeedProvider(tracer trace.Tracer, url string) *PositionFeedProvider {
	return &PositionFeedProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		url:     url,
		tracer:  tracer,
		limiter: NewRateLimiter(12, 5*time.Second),
	}
}

// FetchPositions downloads and decodes the record set. A 404 means the
// dataset has not been published yet: that is an empty dataset, not an
// error, so rendering collaborators can show their "no signals" state.
func (p *PositionFeedProvider) FetchPositions(ctx context.Context) ([]domain.RawTradeRecord, error) {
	ctx, span := p.tracer.Start(ctx, "position-feed.fetch")
	defer span.End()

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch positions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		log.Printf("position feed not published at %s", p.url)
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("position feed error %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	records, err := decodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("parse positions: %w", err)
	}
	span.SetAttributes(attribute.Int("positions.count", len(records)))
	return records, nil
}

// decodeRecords accepts either a bare JSON array or the wrapped
// {"positions": [...]} shape older datasets used.
func decodeRecords(body []byte) ([]domain.RawTradeRecord, error) {
	var records []domain.RawTradeRecord
	if err := json.Unmarshal(body, &records); err == nil {
		return records, nil
	}

	var wrapped struct {
		Positions []domain.RawTradeRecord `json:"positions"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Positions, nil
}
