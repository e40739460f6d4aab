package routes

import (
	"github.com/gin-gonic/gin"

	"skywrench/internal/interfaces/http/handlers"
	"skywrench/internal/interfaces/http/middleware"
)

// ProductRouteConfig holds dependencies for catalog routes.
type ProductRouteConfig struct {
	ProductHandler       *handlers.ProductHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupProductRoutes configures the product catalog routes. Companies and
// categories ride along as catalog reference data.
func SetupProductRoutes(api *gin.RouterGroup, cfg *ProductRouteConfig) {
	products := api.Group("/products")
	products.Use(cfg.AuthMiddleware.RequireAuth())
	{
		products.GET("", cfg.PermissionMiddleware.RequirePermission("product", "read"), cfg.ProductHandler.ListProducts)
		products.GET("/:id", cfg.PermissionMiddleware.RequirePermission("product", "read"), cfg.ProductHandler.GetProduct)

		products.POST("", cfg.PermissionMiddleware.RequirePermission("product", "write"), cfg.ProductHandler.CreateProduct)
		products.PUT("/:id", cfg.PermissionMiddleware.RequirePermission("product", "write"), cfg.ProductHandler.UpdateProduct)
		products.DELETE("/:id", cfg.PermissionMiddleware.RequirePermission("product", "write"), cfg.ProductHandler.DeleteProduct)
		products.POST("/:id/service", cfg.PermissionMiddleware.RequirePermission("product", "write"), cfg.ProductHandler.RecordService)
	}

	companies := api.Group("/companies")
	companies.Use(cfg.AuthMiddleware.RequireAuth())
	{
		companies.GET("", cfg.PermissionMiddleware.RequirePermission("product", "read"), cfg.ProductHandler.ListCompanies)
		companies.POST("", cfg.PermissionMiddleware.RequirePermission("product", "write"), cfg.ProductHandler.CreateCompany)
		companies.PUT("/:id", cfg.PermissionMiddleware.RequirePermission("product", "write"), cfg.ProductHandler.UpdateCompany)
	}

	categories := api.Group("/product-categories")
	categories.Use(cfg.AuthMiddleware.RequireAuth())
	{
		categories.GET("", cfg.PermissionMiddleware.RequirePermission("product", "read"), cfg.ProductHandler.ListCategories)
		categories.POST("", cfg.PermissionMiddleware.RequirePermission("product", "write"), cfg.ProductHandler.CreateCategory)
	}
}
