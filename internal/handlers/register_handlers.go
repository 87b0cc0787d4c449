package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/financeflow/internal/core/ports/services"
	"github.com/SscSPs/financeflow/internal/middleware"
	"github.com/SscSPs/financeflow/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", getHealth(services.Book))

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")
	if cfg.AuthEnabled() {
		v1.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	}

	RegisterJournalRoutes(v1, services.Book)
	RegisterLedgerRoutes(v1, services.Book)
	RegisterReportingRoutes(v1, services.Book)
}
