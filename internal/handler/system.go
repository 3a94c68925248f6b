package handler

import (
	"context"
	"net/http"
	"time"

	"marketmate-be/internal/logger"
	"marketmate-be/internal/metrics"
	"marketmate-be/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthPingTimeout = 2 * time.Second

type SystemHandler struct {
	ping     func(ctx context.Context) error
	counters *metrics.Registry
}

func NewSystemHandler(ping func(ctx context.Context) error, counters *metrics.Registry) *SystemHandler {
	return &SystemHandler{ping: ping, counters: counters}
}

func (h *SystemHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to MarketMate API"})
}

func (h *SystemHandler) Health(c *gin.Context) {
	status, code := "healthy", http.StatusOK

	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()

		if err := h.ping(ctx); err != nil {
			logger.FromCtx(ctx).Warn("store ping failed", zap.Error(err))
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{
		"status":   status,
		"counters": h.counters.Snapshot(),
	})
}

func (h *SystemHandler) ShopTest(c *gin.Context) {
	a, _ := middleware.AccountFrom(c)
	c.JSON(http.StatusOK, gin.H{"message": "Shop routes working", "shop": a.ShopName})
}
