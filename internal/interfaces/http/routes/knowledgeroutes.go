package routes

import (
	"github.com/gin-gonic/gin"

	"skywrench/internal/interfaces/http/handlers"
	"skywrench/internal/interfaces/http/middleware"
)

// KnowledgeRouteConfig holds dependencies for knowledge base routes.
type KnowledgeRouteConfig struct {
	KnowledgeHandler     *handlers.KnowledgeHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupKnowledgeRoutes configures the knowledge base routes. Articles are
// addressed by slug; writes are staff only.
func SetupKnowledgeRoutes(api *gin.RouterGroup, cfg *KnowledgeRouteConfig) {
	articles := api.Group("/knowledge/articles")
	articles.Use(cfg.AuthMiddleware.RequireAuth())
	{
		articles.GET("", cfg.PermissionMiddleware.RequirePermission("knowledge", "read"), cfg.KnowledgeHandler.ListArticles)
		articles.GET("/:slug", cfg.PermissionMiddleware.RequirePermission("knowledge", "read"), cfg.KnowledgeHandler.GetArticle)

		articles.POST("", cfg.PermissionMiddleware.RequirePermission("knowledge", "write"), cfg.KnowledgeHandler.CreateArticle)
		articles.PUT("/:slug", cfg.PermissionMiddleware.RequirePermission("knowledge", "write"), cfg.KnowledgeHandler.UpdateArticle)
		articles.DELETE("/:slug", cfg.PermissionMiddleware.RequirePermission("knowledge", "write"), cfg.KnowledgeHandler.DeleteArticle)
	}
}
