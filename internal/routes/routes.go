package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"portfolio/internal/handlers"
)

type Handlers struct {
	Page    *handlers.Page
	Auth    *handlers.AuthHandler
	Project *handlers.ProjectHandler
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
}

// RegisterRoutes mounts the HTML pages behind session and the operational
// endpoints without it. A nil gatherer disables /metrics.
func RegisterRoutes(router *gin.Engine, session gin.HandlerFunc, h Handlers, gatherer prometheus.Gatherer) {
	site := router.Group("/", session)
	NewAuthRoutes(h.Auth).RegisterRoutes(site)
	NewProjectRoutes(h.Project).RegisterRoutes(site)
	NewContactRoutes(h.Contact).RegisterRoutes(site)

	router.GET("/health", h.Health.Health)
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	router.NoRoute(session, h.Page.NotFound)
}
