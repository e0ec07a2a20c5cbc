package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"conviction-radar/internal/bot"
	"conviction-radar/internal/cache"
	"conviction-radar/internal/config"
	"conviction-radar/internal/db"
	"conviction-radar/internal/engine"
	"conviction-radar/internal/handler"
	"conviction-radar/internal/job"
	"conviction-radar/internal/narrator"
	"conviction-radar/internal/provider"
	"conviction-radar/internal/repository"
	"conviction-radar/internal/service"
	"conviction-radar/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "conviction-radar/docs"
)

var (
	loadEnvFunc         = godotenv.Load
	loadConfigFunc      = config.Load
	initPostgresFunc    = db.InitPostgres
	initRedisFunc       = cache.InitRedis
	initTracerFunc      = tracing.InitTracer
	newPositionRepoFunc = repository.NewPositionRepository
	newProviderFunc     = func(tracer trace.Tracer, cfg *config.Config) service.PositionProvider {
		if cfg.PositionFile != "" {
			return provider.NewPositionFileProvider(tracer, cfg.PositionFile)
		}
		return provider.NewPositionFeedProvider(tracer, cfg.PositionFeedURL)
	}
	newEngineFunc          = engine.New
	newSignalServiceFunc   = service.NewSignalService
	newSignalPollerFunc    = job.NewSignalPoller
	startPollerFunc        = func(p *job.SignalPoller, ctx context.Context) { go p.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Conviction Radar API
// @version         1.0
// @description     Ranks bullish options-flow confluence signals from whale position data.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Postgres and Redis
	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initPostgresFunc(ctx)
	initRedisFunc(ctx)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Create repository and run migrations
	var positionRepo service.PositionRepository
	if db.Pool != nil {
		repo := newPositionRepoFunc(db.Pool, tracer)
		if err := repo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		positionRepo = repo
	}

	var redisClient service.RedisClient
	if cache.Client != nil {
		redisClient = cache.Client
	}

	// Create provider, engine, and signal service
	positionProvider := newProviderFunc(tracer, cfg)
	signalEngine := newEngineFunc(nil)
	signalService := newSignalServiceFunc(tracer, positionProvider, positionRepo, redisClient,
		signalEngine, time.Duration(cfg.ReportTTLSecs)*time.Second)

	// Narrator (optional, needs an OpenAI key)
	var narratorSvc handler.Narrator
	if cfg.OpenAIAPIKey != "" {
		llmClient := narrator.NewOpenAIClient(cfg.OpenAIAPIKey)
		narratorSvc = narrator.NewNarratorService(tracer, llmClient, signalService, redisClient,
			cfg.OpenAIModel, time.Duration(cfg.NarrativeTTLSecs)*time.Second)
		log.Println("Narrator service enabled")
	}

	// Start signal poller (background goroutine, stopped by ctx cancel)
	poller := newSignalPollerFunc(tracer, signalService, cfg.RefreshPollSecs)
	startPollerFunc(poller, ctx)

	// Start Telegram bot
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	startTelegramBotFunc(signalService)

	// Create handlers and routes
	h := newHandlerFunc(tracer, signalService, narratorSvc)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("conviction-radar"))

	h.RegisterRoutes(r, cfg.APIKey)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
