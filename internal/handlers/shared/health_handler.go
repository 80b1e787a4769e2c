package shared

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/utils"

	"github.com/gin-gonic/gin"
)

// Pinger is implemented by the database and cache clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	version string
	checks  map[string]Pinger
}

func NewHealthHandler(version string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{version: version, checks: checks}
}

// Health reports 503 when any dependency fails its ping.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	components := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			components[name] = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		components[name] = "healthy"
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status":     overall,
		"version":    h.version,
		"components": components,
		"timestamp":  time.Now().UTC(),
	})
}

// NoRoute answers unmatched paths with the standard envelope.
func NoRoute(c *gin.Context) {
	utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", "route not found")
}
