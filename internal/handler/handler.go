package handler

import (
	"context"

	"conviction-radar/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// SignalSource is the slice of the signal service the HTTP surface needs.
type SignalSource interface {
	GetSignalReport(ctx context.Context) (*domain.SignalReport, error)
	GetSignal(ctx context.Context, ticker string) (*domain.Signal, error)
	GetPositionsByTicker(ctx context.Context, ticker string) ([]domain.Position, error)
	RefreshSignals(ctx context.Context) error
}

type Narrator interface {
	Narrate(ctx context.Context, ticker string) (string, error)
}

type Handler struct {
	tracer   trace.Tracer
	signals  SignalSource
	narrator Narrator
}

func New(tracer trace.Tracer, signals SignalSource, narrator Narrator) *Handler {
	return &Handler{
		tracer:   tracer,
		signals:  signals,
		narrator: narrator,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string) {
	r.GET("/health", h.Health)
	r.GET("/api/signals", h.GetSignals)
	r.GET("/api/signals/:ticker", h.GetSignal)
	r.GET("/api/signals/:ticker/narrative", h.GetNarrative)
	r.GET("/api/positions/:ticker", h.GetPositions)
	r.POST("/api/signals/refresh", APIKeyAuth(apiKey), h.RefreshSignals)
}
