package routes

import (
	"github.com/gin-gonic/gin"

	"skywrench/internal/interfaces/http/handlers"
	"skywrench/internal/interfaces/http/middleware"
)

// IntegrationRouteConfig holds dependencies for integration routes.
type IntegrationRouteConfig struct {
	IntegrationHandler   *handlers.IntegrationHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupIntegrationRoutes configures the external connector routes. The
// /runs listing is registered before /:name so it is not captured as a
// connector name.
func SetupIntegrationRoutes(api *gin.RouterGroup, cfg *IntegrationRouteConfig) {
	integrations := api.Group("/integrations")
	integrations.Use(cfg.AuthMiddleware.RequireAuth())
	{
		integrations.GET("", cfg.PermissionMiddleware.RequirePermission("integration", "read"), cfg.IntegrationHandler.ListConnectors)
		integrations.GET("/runs", cfg.PermissionMiddleware.RequirePermission("integration", "read"), cfg.IntegrationHandler.ListSyncRuns)

		integrations.POST("/:name/test", cfg.PermissionMiddleware.RequirePermission("integration", "execute"), cfg.IntegrationHandler.TestConnection)
		integrations.POST("/:name/sync", cfg.PermissionMiddleware.RequirePermission("integration", "execute"), cfg.IntegrationHandler.RunSync)
	}
}
