package routes

import (
	"github.com/gin-gonic/gin"

	"skywrench/internal/interfaces/http/handlers"
	"skywrench/internal/interfaces/http/middleware"
)

// MaintenanceRouteConfig holds dependencies for maintenance routes.
type MaintenanceRouteConfig struct {
	MaintenanceHandler   *handlers.MaintenanceHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupMaintenanceRoutes configures the preventive maintenance routes.
// The /due route is registered before /:id so gin does not treat "due" as
// a schedule id.
func SetupMaintenanceRoutes(api *gin.RouterGroup, cfg *MaintenanceRouteConfig) {
	schedules := api.Group("/maintenance/schedules")
	schedules.Use(cfg.AuthMiddleware.RequireAuth())
	{
		schedules.GET("/due", cfg.PermissionMiddleware.RequirePermission("maintenance", "read"), cfg.MaintenanceHandler.ListDue)
		schedules.GET("", cfg.PermissionMiddleware.RequirePermission("maintenance", "read"), cfg.MaintenanceHandler.ListSchedules)

		schedules.POST("", cfg.PermissionMiddleware.RequirePermission("maintenance", "write"), cfg.MaintenanceHandler.CreateSchedule)
		schedules.PUT("/:id", cfg.PermissionMiddleware.RequirePermission("maintenance", "write"), cfg.MaintenanceHandler.UpdateSchedule)
		schedules.POST("/:id/flight-hours", cfg.PermissionMiddleware.RequirePermission("maintenance", "write"), cfg.MaintenanceHandler.RecordFlightHours)
		schedules.POST("/:id/performed", cfg.PermissionMiddleware.RequirePermission("maintenance", "write"), cfg.MaintenanceHandler.MarkPerformed)
	}
}
