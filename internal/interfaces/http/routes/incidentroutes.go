package routes

import (
	"github.com/gin-gonic/gin"

	"skywrench/internal/interfaces/http/handlers"
	"skywrench/internal/interfaces/http/middleware"
)

// IncidentRouteConfig holds dependencies for incident routes.
type IncidentRouteConfig struct {
	IncidentHandler      *handlers.IncidentHandler
	WorkOrderHandler     *handlers.WorkOrderHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupIncidentRoutes configures the incident workflow routes. Stage
// transitions are separate POST actions so the policy layer can gate each
// one independently.
func SetupIncidentRoutes(api *gin.RouterGroup, cfg *IncidentRouteConfig) {
	incidents := api.Group("/incidents")
	incidents.Use(cfg.AuthMiddleware.RequireAuth())
	{
		incidents.POST("", cfg.PermissionMiddleware.RequirePermission("incident", "create"), cfg.IncidentHandler.RaiseIncident)
		incidents.GET("", cfg.PermissionMiddleware.RequirePermission("incident", "read"), cfg.IncidentHandler.ListIncidents)
		incidents.GET("/:id", cfg.PermissionMiddleware.RequirePermission("incident", "read"), cfg.IncidentHandler.GetIncident)
		incidents.GET("/:id/activities", cfg.PermissionMiddleware.RequirePermission("incident", "read"), cfg.IncidentHandler.ListActivities)

		incidents.POST("/:id/assign", cfg.PermissionMiddleware.RequirePermission("incident", "assign"), cfg.IncidentHandler.AssignTechnician)
		incidents.POST("/:id/diagnosis", cfg.PermissionMiddleware.RequirePermission("incident", "advance"), cfg.IncidentHandler.CompleteDiagnosis)
		incidents.POST("/:id/approval", cfg.PermissionMiddleware.RequirePermission("incident", "approve"), cfg.IncidentHandler.DecideApproval)
		incidents.POST("/:id/repair", cfg.PermissionMiddleware.RequirePermission("incident", "advance"), cfg.IncidentHandler.CompleteRepair)
		incidents.POST("/:id/quality-check", cfg.PermissionMiddleware.RequirePermission("incident", "advance"), cfg.IncidentHandler.PassQualityCheck)
		incidents.POST("/:id/preventive", cfg.PermissionMiddleware.RequirePermission("incident", "advance"), cfg.IncidentHandler.SchedulePreventive)
		incidents.POST("/:id/close", cfg.PermissionMiddleware.RequirePermission("incident", "advance"), cfg.IncidentHandler.CloseIncident)
		incidents.POST("/:id/parts", cfg.PermissionMiddleware.RequirePermission("inventory", "consume"), cfg.IncidentHandler.ConsumeParts)
	}

	workOrders := api.Group("/work-orders")
	workOrders.Use(cfg.AuthMiddleware.RequireAuth())
	workOrders.Use(cfg.PermissionMiddleware.RequirePermission("workorder", "read"))
	{
		workOrders.GET("", cfg.WorkOrderHandler.ListWorkOrders)
		workOrders.GET("/:id", cfg.WorkOrderHandler.GetWorkOrder)
	}
}
