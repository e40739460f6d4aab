package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skywrench/internal/infrastructure/config"
	"skywrench/internal/interfaces/http/handlers"
	"skywrench/internal/interfaces/http/middleware"
	"skywrench/internal/interfaces/http/routes"
	"skywrench/internal/shared/logger"
)

// routerDeps carries the middleware and handlers the route tree needs.
type routerDeps struct {
	authMW      *middleware.AuthMiddleware
	permMW      *middleware.PermissionMiddleware
	rateLimitMW *middleware.RateLimitMiddleware

	authHandler        *handlers.AuthHandler
	userHandler        *handlers.UserHandler
	incidentHandler    *handlers.IncidentHandler
	workOrderHandler   *handlers.WorkOrderHandler
	inventoryHandler   *handlers.InventoryHandler
	assignmentHandler  *handlers.AssignmentHandler
	maintenanceHandler *handlers.MaintenanceHandler
	productHandler     *handlers.ProductHandler
	knowledgeHandler   *handlers.KnowledgeHandler
	mailroomHandler    *handlers.MailroomHandler
	integrationHandler *handlers.IntegrationHandler
}

// buildRouter assembles the gin engine: global middleware, the health
// probe, and every context's routes under /api/v1.
func buildRouter(cfg *config.Config, deps routerDeps) *gin.Engine {
	engine := gin.New()
	log := logger.NewLogger()

	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := engine.Group("/api/v1")
	api.Use(deps.rateLimitMW.Limit())

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    deps.authHandler,
		AuthMiddleware: deps.authMW,
	})
	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		UserHandler:          deps.userHandler,
		AuthMiddleware:       deps.authMW,
		PermissionMiddleware: deps.permMW,
	})
	routes.SetupIncidentRoutes(api, &routes.IncidentRouteConfig{
		IncidentHandler:      deps.incidentHandler,
		WorkOrderHandler:     deps.workOrderHandler,
		AuthMiddleware:       deps.authMW,
		PermissionMiddleware: deps.permMW,
	})
	routes.SetupInventoryRoutes(api, &routes.InventoryRouteConfig{
		InventoryHandler:     deps.inventoryHandler,
		AuthMiddleware:       deps.authMW,
		PermissionMiddleware: deps.permMW,
	})
	routes.SetupAssignmentRoutes(api, &routes.AssignmentRouteConfig{
		AssignmentHandler:    deps.assignmentHandler,
		AuthMiddleware:       deps.authMW,
		PermissionMiddleware: deps.permMW,
	})
	routes.SetupMaintenanceRoutes(api, &routes.MaintenanceRouteConfig{
		MaintenanceHandler:   deps.maintenanceHandler,
		AuthMiddleware:       deps.authMW,
		PermissionMiddleware: deps.permMW,
	})
	routes.SetupProductRoutes(api, &routes.ProductRouteConfig{
		ProductHandler:       deps.productHandler,
		AuthMiddleware:       deps.authMW,
		PermissionMiddleware: deps.permMW,
	})
	routes.SetupKnowledgeRoutes(api, &routes.KnowledgeRouteConfig{
		KnowledgeHandler:     deps.knowledgeHandler,
		AuthMiddleware:       deps.authMW,
		PermissionMiddleware: deps.permMW,
	})
	routes.SetupMailroomRoutes(api, &routes.MailroomRouteConfig{
		MailroomHandler:      deps.mailroomHandler,
		AuthMiddleware:       deps.authMW,
		PermissionMiddleware: deps.permMW,
	})
	routes.SetupIntegrationRoutes(api, &routes.IntegrationRouteConfig{
		IntegrationHandler:   deps.integrationHandler,
		AuthMiddleware:       deps.authMW,
		PermissionMiddleware: deps.permMW,
	})

	return engine
}
