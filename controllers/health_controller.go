package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	ping func(ctx context.Context) error
}

// NewHealthController takes the store's ping so it can be faked in tests.
func NewHealthController(ping func(ctx context.Context) error) *HealthController {
	return &HealthController{ping: ping}
}

// Health reports 200 when the database answers a ping and 503 otherwise. It
// is mounted at /health, outside the /api document, next to /metrics.
func (hc *HealthController) Health(c *gin.Context) {
	if err := hc.ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
