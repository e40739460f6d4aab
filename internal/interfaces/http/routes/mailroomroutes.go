package routes

import (
	"github.com/gin-gonic/gin"

	"skywrench/internal/interfaces/http/handlers"
	"skywrench/internal/interfaces/http/middleware"
)

// MailroomRouteConfig holds dependencies for mailroom routes.
type MailroomRouteConfig struct {
	MailroomHandler      *handlers.MailroomHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupMailroomRoutes configures inbound rule management and the
// processed email audit listing.
func SetupMailroomRoutes(api *gin.RouterGroup, cfg *MailroomRouteConfig) {
	rules := api.Group("/mailroom/rules")
	rules.Use(cfg.AuthMiddleware.RequireAuth())
	{
		rules.GET("", cfg.PermissionMiddleware.RequirePermission("mailroom", "read"), cfg.MailroomHandler.ListRules)
		rules.POST("", cfg.PermissionMiddleware.RequirePermission("mailroom", "write"), cfg.MailroomHandler.CreateRule)
		rules.PATCH("/:id/status", cfg.PermissionMiddleware.RequirePermission("mailroom", "write"), cfg.MailroomHandler.SetRuleActive)
		rules.DELETE("/:id", cfg.PermissionMiddleware.RequirePermission("mailroom", "write"), cfg.MailroomHandler.DeleteRule)
	}

	processed := api.Group("/mailroom/processed")
	processed.Use(cfg.AuthMiddleware.RequireAuth())
	processed.Use(cfg.PermissionMiddleware.RequirePermission("mailroom", "read"))
	{
		processed.GET("", cfg.MailroomHandler.ListProcessed)
	}
}
