package main

import (
	"context"
	"os"
	"testing"
	"time"

	"conviction-radar/internal/config"
	"conviction-radar/internal/engine"
	"conviction-radar/internal/narrator"
	"conviction-radar/internal/repository"
	"conviction-radar/internal/service"

	"github.com/charmbracelet/ssh"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestMainBootstrap(t *testing.T) {
	restore := stubSSHDeps()
	defer restore()

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}
}

func stubSSHDeps() func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origInitPostgres := initPostgresFunc
	origInitRedis := initRedisFunc
	origInitTracer := initTracerFunc
	origNewPositionRepo := newPositionRepoFunc
	origNewSSHUserRepo := newSSHUserRepoFunc
	origNewProvider := newProviderFunc
	origNewEngine := newEngineFunc
	origNewSignalService := newSignalServiceFunc
	origNewOpenAIClient := newOpenAIClientFunc
	origNewNarrator := newNarratorFunc
	origNewWishServer := newWishServerFunc
	origSetupSignal := setupSignalNotify
	origWait := waitForSignalFunc

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{
			RedisURL:       "",
			DatabaseURL:    "",
			SSHPort:        2222,
			SSHHostKeyPath: ".ssh/test_key",
		}
	}
	initPostgresFunc = func(context.Context) {}
	initRedisFunc = func(context.Context) {}
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	newPositionRepoFunc = func(repository.PgxPool, trace.Tracer) *repository.PositionRepository {
		return nil
	}
	newSSHUserRepoFunc = func(repository.PgxPool, trace.Tracer) *repository.SSHUserRepository {
		return nil
	}
	newProviderFunc = func(trace.Tracer, *config.Config) service.PositionProvider { return nil }
	newEngineFunc = func(func() time.Time) *engine.Engine { return engine.New(nil) }
	newSignalServiceFunc = func(
		trace.Tracer,
		service.PositionProvider,
		service.PositionRepository,
		service.RedisClient,
		service.SignalEngine,
		time.Duration,
	) *service.SignalService {
		return nil
	}
	newOpenAIClientFunc = func(string) narrator.LLMClient { return nil }
	newNarratorFunc = func(
		trace.Tracer, narrator.LLMClient, narrator.SignalQuerier, narrator.RedisClient,
		string, time.Duration,
	) *narrator.NarratorService {
		return nil
	}
	newWishServerFunc = func(ops ...ssh.Option) (*ssh.Server, error) {
		return nil, nil
	}
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		initPostgresFunc = origInitPostgres
		initRedisFunc = origInitRedis
		initTracerFunc = origInitTracer
		newPositionRepoFunc = origNewPositionRepo
		newSSHUserRepoFunc = origNewSSHUserRepo
		newProviderFunc = origNewProvider
		newEngineFunc = origNewEngine
		newSignalServiceFunc = origNewSignalService
		newOpenAIClientFunc = origNewOpenAIClient
		newNarratorFunc = origNewNarrator
		newWishServerFunc = origNewWishServer
		setupSignalNotify = origSetupSignal
		waitForSignalFunc = origWait
	}
}
