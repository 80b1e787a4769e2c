package routes

import (
	"storefront/internal/handlers/shared"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupSystemRoutes registers health and metrics outside the versioned API.
func SetupSystemRoutes(r *gin.Engine, healthHandler *shared.HealthHandler, gatherer prometheus.Gatherer) {
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	r.NoRoute(shared.NoRoute)
}
