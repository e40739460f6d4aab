package routes

import (
	"github.com/gin-gonic/gin"

	"skywrench/internal/interfaces/http/handlers"
	"skywrench/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for user management routes.
type UserRouteConfig struct {
	UserHandler          *handlers.UserHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupUserRoutes configures the user management routes.
func SetupUserRoutes(api *gin.RouterGroup, cfg *UserRouteConfig) {
	users := api.Group("/users")
	users.Use(cfg.AuthMiddleware.RequireAuth())
	{
		users.GET("", cfg.PermissionMiddleware.RequirePermission("user", "read"), cfg.UserHandler.ListUsers)
		users.GET("/:id", cfg.PermissionMiddleware.RequirePermission("user", "read"), cfg.UserHandler.GetUser)

		users.POST("", cfg.PermissionMiddleware.RequirePermission("user", "write"), cfg.UserHandler.CreateUser)
		users.PUT("/:id", cfg.PermissionMiddleware.RequirePermission("user", "write"), cfg.UserHandler.UpdateUser)
	}
}
