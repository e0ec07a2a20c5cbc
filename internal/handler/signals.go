package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetSignals godoc
// @Summary      Get the ranked conviction signal report
// @Description  Returns up to 8 qualifying tickers ordered by score, with badge and pipeline counts
// @Tags         signals
// @Produce      json
// @Success      200  {object}  domain.SignalReport
// @Failure      500  {object}  map[string]string
// @Router       /api/signals [get]
func (h *Handler) GetSignals(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-signals")
	defer span.End()

	report, err := h.signals.GetSignalReport(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetSignal godoc
// @Summary      Get one ticker's conviction signal
// @Description  Returns the scored signal for a single ranked ticker
// @Tags         signals
// @Produce      json
// @Param        ticker  path  string  true  "Ticker symbol (e.g., XYZ)"
// @Success      200  {object}  domain.Signal
// @Failure      404  {object}  map[string]string
// @Router       /api/signals/{ticker} [get]
func (h *Handler) GetSignal(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-signal")
	defer span.End()

	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	span.SetAttributes(attribute.String("ticker", ticker))

	sig, err := h.signals.GetSignal(ctx, ticker)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sig)
}

// GetNarrative godoc
// @Summary      Get an LLM briefing for a ranked ticker
// @Description  Returns a short prose interpretation of the ticker's signal
// @Tags         signals
// @Produce      json
// @Param        ticker  path  string  true  "Ticker symbol (e.g., XYZ)"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/signals/{ticker}/narrative [get]
func (h *Handler) GetNarrative(c *gin.Context) {
	if h.narrator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "narrator unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-narrative")
	defer span.End()

	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	span.SetAttributes(attribute.String("ticker", ticker))

	narrative, err := h.narrator.Narrate(ctx, ticker)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ticker": ticker, "narrative": narrative})
}

// RefreshSignals godoc
// @Summary      Refresh the dataset and recompute signals
// @Description  Pulls a fresh dataset from the position feed, persists it, and replaces the cached report
// @Tags         signals
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/signals/refresh [post]
func (h *Handler) RefreshSignals(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.refresh-signals")
	defer span.End()

	if err := h.signals.RefreshSignals(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}
