package main

import (
	"context"
	"fmt"
	"log"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"conviction-radar/internal/cache"
	"conviction-radar/internal/config"
	"conviction-radar/internal/db"
	"conviction-radar/internal/engine"
	"conviction-radar/internal/narrator"
	"conviction-radar/internal/provider"
	"conviction-radar/internal/repository"
	"conviction-radar/internal/service"
	"conviction-radar/internal/tui"
	"conviction-radar/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
	gossh "golang.org/x/crypto/ssh"
)

// ctxKey is a typed context key to avoid collisions.
type ctxKey string

const sshUserKey ctxKey = "ssh_user"

var (
	loadEnvFunc         = godotenv.Load
	loadConfigFunc      = config.Load
	initPostgresFunc    = db.InitPostgres
	initRedisFunc       = cache.InitRedis
	initTracerFunc      = tracing.InitTracer
	newPositionRepoFunc = repository.NewPositionRepository
	newSSHUserRepoFunc  = repository.NewSSHUserRepository
	newProviderFunc     = func(tracer trace.Tracer, cfg *config.Config) service.PositionProvider {
		if cfg.PositionFile != "" {
			return provider.NewPositionFileProvider(tracer, cfg.PositionFile)
		}
		return provider.NewPositionFeedProvider(tracer, cfg.PositionFeedURL)
	}
	newEngineFunc        = engine.New
	newSignalServiceFunc = service.NewSignalService
	newOpenAIClientFunc  = narrator.NewOpenAIClient
	newNarratorFunc      = narrator.NewNarratorService
	newWishServerFunc    = wish.NewServer
	setupSignalNotify    = ossignal.Notify
	waitForSignalFunc    = func(quit <-chan os.Signal) { <-quit }
)

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initPostgresFunc(ctx)
	initRedisFunc(ctx)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	var positionRepo service.PositionRepository
	var sshUserRepo *repository.SSHUserRepository
	if db.Pool != nil {
		positionRepo = newPositionRepoFunc(db.Pool, tracer)
		sshUserRepo = newSSHUserRepoFunc(db.Pool, tracer)
	}

	var redisClient service.RedisClient
	if cache.Client != nil {
		redisClient = cache.Client
	}

	positionProvider := newProviderFunc(tracer, cfg)
	signalEngine := newEngineFunc(nil)
	signalService := newSignalServiceFunc(tracer, positionProvider, positionRepo, redisClient,
		signalEngine, time.Duration(cfg.ReportTTLSecs)*time.Second)

	// Narrator (optional)
	var narratorSvc *narrator.NarratorService
	if cfg.OpenAIAPIKey != "" {
		llmClient := newOpenAIClientFunc(cfg.OpenAIAPIKey)
		narratorSvc = newNarratorFunc(tracer, llmClient, signalService, redisClient,
			cfg.OpenAIModel, time.Duration(cfg.NarrativeTTLSecs)*time.Second)
		log.Println("SSH narrator service enabled")
	}

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.SSHPort)

	srv, err := newWishServerFunc(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			fingerprint := gossh.FingerprintSHA256(key)
			if sshUserRepo == nil {
				// No user store: open dashboard, log the key.
				log.Printf("SSH auth (open mode): fingerprint=%s", fingerprint)
				return true
			}
			user, err := sshUserRepo.FindByFingerprint(context.Background(), fingerprint)
			if err != nil || user == nil {
				log.Printf("SSH auth denied: fingerprint=%s err=%v", fingerprint, err)
				return false
			}
			ctx.SetValue(sshUserKey, user)
			_ = sshUserRepo.UpdateLastLogin(context.Background(), user.ID)
			log.Printf("SSH auth accepted: user=%s fingerprint=%s", user.Username, fingerprint)
			return true
		}),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				user, _ := s.Context().Value(sshUserKey).(*repository.SSHUser)

				username := ""
				if user != nil {
					username = user.Username
				}

				var narratorQ tui.Narrator
				if narratorSvc != nil {
					narratorQ = narratorSvc
				}

				svc := tui.Services{
					Signals:  signalService,
					Narrator: narratorQ,
					Username: username,
				}

				model := tui.NewAppModel(svc)
				pty, _, _ := s.Pty()
				model.SetSize(pty.Window.Width, pty.Window.Height)

				return model, []tea.ProgramOption{tea.WithAltScreen()}
			}),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("failed to create SSH server: %v", err)
	}

	if srv != nil {
		go func() {
			log.Printf("SSH server listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil {
				log.Printf("SSH server stopped: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down SSH server...")

	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("SSH server shutdown error: %v", err)
		}
	}

	log.Println("SSH server exited")
}
