package routes

import (
	"github.com/gin-gonic/gin"

	"skywrench/internal/interfaces/http/handlers"
	"skywrench/internal/interfaces/http/middleware"
)

// AssignmentRouteConfig holds dependencies for assignment routes.
type AssignmentRouteConfig struct {
	AssignmentHandler    *handlers.AssignmentHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupAssignmentRoutes configures the routing rule and group routes.
func SetupAssignmentRoutes(api *gin.RouterGroup, cfg *AssignmentRouteConfig) {
	rules := api.Group("/assignment/rules")
	rules.Use(cfg.AuthMiddleware.RequireAuth())
	{
		rules.GET("", cfg.PermissionMiddleware.RequirePermission("assignment_rule", "read"), cfg.AssignmentHandler.ListRules)
		rules.POST("", cfg.PermissionMiddleware.RequirePermission("assignment_rule", "write"), cfg.AssignmentHandler.CreateRule)
		rules.PUT("/:id", cfg.PermissionMiddleware.RequirePermission("assignment_rule", "write"), cfg.AssignmentHandler.UpdateRule)
		rules.DELETE("/:id", cfg.PermissionMiddleware.RequirePermission("assignment_rule", "write"), cfg.AssignmentHandler.DeleteRule)
	}

	groups := api.Group("/assignment/groups")
	groups.Use(cfg.AuthMiddleware.RequireAuth())
	{
		groups.GET("", cfg.PermissionMiddleware.RequirePermission("assignment_group", "read"), cfg.AssignmentHandler.ListGroups)
		groups.POST("", cfg.PermissionMiddleware.RequirePermission("assignment_group", "write"), cfg.AssignmentHandler.CreateGroup)
		groups.PUT("/:id", cfg.PermissionMiddleware.RequirePermission("assignment_group", "write"), cfg.AssignmentHandler.UpdateGroup)
	}
}
