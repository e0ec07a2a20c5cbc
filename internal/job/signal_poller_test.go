package job

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

func TestNewSignalPollerInterval(t *testing.T) {
	tracer := trace.NewNoopTracerProvider().Tracer("test")
	poller := NewSignalPoller(tracer, &stubRefresher{}, 2)
	if poller.pollInterval != 2*time.Second {
		t.Fatalf("expected 2s interval, got %v", poller.pollInterval)
	}
}

func TestSignalPollerRunsImmediately(t *testing.T) {
	t.Parallel()

	tracer := trace.NewNoopTracerProvider().Tracer("test")
	stub := &stubRefresher{}
	poller := NewSignalPoller(tracer, stub, 60)

	ctx, cancel := context.WithCancel(context.Background())
	go poller.Start(ctx)

	eventually(t, func() bool { return stub.calls.Load() > 0 })
	cancel()
}

func TestSignalPollerSurvivesRefreshErrors(t *testing.T) {
	t.Parallel()

	tracer := trace.NewNoopTracerProvider().Tracer("test")
	stub := &stubRefresher{err: errors.New("feed down")}
	poller := NewSignalPoller(tracer, stub, 1)

	ctx, cancel := context.WithCancel(context.Background())
	go poller.Start(ctx)

	eventually(t, func() bool { return stub.calls.Load() > 1 })
	cancel()
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met")
}

type stubRefresher struct {
	calls atomic.Int32
	err   error
}

func (s *stubRefresher) RefreshSignals(ctx context.Context) error {
	s.calls.Add(1)
	return s.err
}
