package routes

import (
	"github.com/gin-gonic/gin"

	"skywrench/internal/interfaces/http/handlers"
	"skywrench/internal/interfaces/http/middleware"
)

// InventoryRouteConfig holds dependencies for inventory routes.
type InventoryRouteConfig struct {
	InventoryHandler     *handlers.InventoryHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupInventoryRoutes configures the spare parts inventory routes.
func SetupInventoryRoutes(api *gin.RouterGroup, cfg *InventoryRouteConfig) {
	items := api.Group("/inventory/items")
	items.Use(cfg.AuthMiddleware.RequireAuth())
	{
		items.GET("", cfg.PermissionMiddleware.RequirePermission("inventory", "read"), cfg.InventoryHandler.ListItems)
		items.GET("/:id", cfg.PermissionMiddleware.RequirePermission("inventory", "read"), cfg.InventoryHandler.GetItem)
		items.GET("/:id/transactions", cfg.PermissionMiddleware.RequirePermission("inventory", "read"), cfg.InventoryHandler.ListTransactions)

		items.POST("", cfg.PermissionMiddleware.RequirePermission("inventory", "write"), cfg.InventoryHandler.CreateItem)
		items.PUT("/:id", cfg.PermissionMiddleware.RequirePermission("inventory", "write"), cfg.InventoryHandler.UpdateItem)
		items.POST("/:id/restock", cfg.PermissionMiddleware.RequirePermission("inventory", "write"), cfg.InventoryHandler.RestockItem)
		items.POST("/:id/adjust", cfg.PermissionMiddleware.RequirePermission("inventory", "write"), cfg.InventoryHandler.AdjustStock)
	}
}
