package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/snapbill/snapbill_backend/internal/core/ports/services"
	"github.com/snapbill/snapbill_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// uploadMiddleware is applied only to the image upload route (rate limiting).
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	uploadMiddleware ...gin.HandlerFunc,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services, uploadMiddleware...)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	uploadMiddleware ...gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1")

	registerReceiptRoutes(v1, services, cfg.DefaultAccountID, cfg.MaxUploadBytes, uploadMiddleware...)
	registerBalanceRoutes(v1, services.Rewards, cfg.DefaultAccountID)
}
