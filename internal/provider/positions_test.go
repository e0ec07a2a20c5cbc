package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

const feedBody = `[
	{"symbol": "XYZ", "strike": 100, "expiry": "2025-10-17", "contracts": 500, "trade_date": "2025-05-23", "original_premium": 3.5, "type": "put"},
	{"symbol": "XYZ", "strike": 110, "expiry": "2025-08-15", "contracts": 300, "trade_date": "2025-05-25", "premium": 2.0, "type": "call"}
]`

func TestFeedProviderFetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feedBody))
	}))
	defer srv.Close()

	p := NewPositionFeedProvider(testTracer, srv.URL)
	records, err := p.FetchPositions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Symbol != "XYZ" || records[0].OriginalPremium == nil || *records[0].OriginalPremium != 3.5 {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[1].Premium == nil || *records[1].Premium != 2.0 {
		t.Fatalf("premium fallback field not decoded: %+v", records[1])
	}
}

func TestFeedProviderWrappedShape(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"positions": ` + feedBody + `}`))
	}))
	defer srv.Close()

	p := NewPositionFeedProvider(testTracer, srv.URL)
	records, err := p.FetchPositions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records from wrapped payload, got %d", len(records))
	}
}

func TestFeedProviderNotFoundMeansEmpty(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	p := NewPositionFeedProvider(testTracer, srv.URL)
	records, err := p.FetchPositions(context.Background())
	if err != nil {
		t.Fatalf("404 must not be an error, got %v", err)
	}
	if records != nil {
		t.Fatalf("expected empty dataset, got %+v", records)
	}
}

func TestFeedProviderServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewPositionFeedProvider(testTracer, srv.URL)
	if _, err := p.FetchPositions(context.Background()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestFileProviderReads(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "positions.json")
	if err := os.WriteFile(path, []byte(feedBody), 0o600); err != nil {
		t.Fatal(err)
	}

	p := NewPositionFileProvider(testTracer, path)
	records, err := p.FetchPositions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestFileProviderMissingFileMeansEmpty(t *testing.T) {
	t.Parallel()

	p := NewPositionFileProvider(testTracer, filepath.Join(t.TempDir(), "nope.json"))
	records, err := p.FetchPositions(context.Background())
	if err != nil {
		t.Fatalf("missing file must not be an error, got %v", err)
	}
	if records != nil {
		t.Fatalf("expected empty dataset, got %+v", records)
	}
}
