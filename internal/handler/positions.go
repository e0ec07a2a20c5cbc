package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetPositions godoc
// @Summary      Get a ticker's active positions
// @Description  Returns the normalized, unexpired positions for one ticker, ranked or not
// @Tags         positions
// @Produce      json
// @Param        ticker  path  string  true  "Ticker symbol (e.g., XYZ)"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /api/positions/{ticker} [get]
func (h *Handler) GetPositions(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-positions")
	defer span.End()

	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	span.SetAttributes(attribute.String("ticker", ticker))

	positions, err := h.signals.GetPositionsByTicker(ctx, ticker)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ticker":    ticker,
		"positions": positions,
	})
}
