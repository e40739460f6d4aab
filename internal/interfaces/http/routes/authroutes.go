package routes

import (
	"github.com/gin-gonic/gin"

	"skywrench/internal/interfaces/http/handlers"
	"skywrench/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupAuthRoutes configures the authentication routes.
func SetupAuthRoutes(api *gin.RouterGroup, cfg *AuthRouteConfig) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", cfg.AuthHandler.Login)

		authProtected := auth.Group("")
		authProtected.Use(cfg.AuthMiddleware.RequireAuth())
		{
			authProtected.GET("/me", cfg.AuthHandler.Me)
			authProtected.POST("/password", cfg.AuthHandler.ChangePassword)
		}
	}
}
