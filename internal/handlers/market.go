package handlers

import (
	"net/http"

	"realty-marketplace/internal/market"

	"github.com/gin-gonic/gin"
)

// MarketHandler serves the public market aggregates
type MarketHandler struct {
	svc *market.Service
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(svc *market.Service) *MarketHandler {
	return &MarketHandler{svc: svc}
}

// Stats returns city aggregates, optionally narrowed to one city.
// Public: the aggregates contain nothing identifying.
func (h *MarketHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Query("city"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
		"count": len(stats),
	})
}
