package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skywrench/internal/application/maintenance/usecases"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type MaintenanceHandler struct {
	createScheduleUC    *usecases.CreateScheduleUseCase
	updateScheduleUC    *usecases.UpdateScheduleUseCase
	recordFlightHoursUC *usecases.RecordFlightHoursUseCase
	markPerformedUC     *usecases.MarkPerformedUseCase
	listSchedulesUC     *usecases.ListSchedulesUseCase
	listDueUC           *usecases.ListDueSchedulesUseCase
	logger              logger.Interface
}

func NewMaintenanceHandler(
	createScheduleUC *usecases.CreateScheduleUseCase,
	updateScheduleUC *usecases.UpdateScheduleUseCase,
	recordFlightHoursUC *usecases.RecordFlightHoursUseCase,
	markPerformedUC *usecases.MarkPerformedUseCase,
	listSchedulesUC *usecases.ListSchedulesUseCase,
	listDueUC *usecases.ListDueSchedulesUseCase,
) *MaintenanceHandler {
	return &MaintenanceHandler{
		createScheduleUC:    createScheduleUC,
		updateScheduleUC:    updateScheduleUC,
		recordFlightHoursUC: recordFlightHoursUC,
		markPerformedUC:     markPerformedUC,
		listSchedulesUC:     listSchedulesUC,
		listDueUC:           listDueUC,
		logger:              logger.NewLogger(),
	}
}

type CreateScheduleRequest struct {
	UAVModel            string  `json:"uav_model" binding:"required"`
	UAVSerial           string  `json:"uav_serial" binding:"required"`
	CustomerID          uint    `json:"customer_id" binding:"required"`
	IntervalType        string  `json:"interval_type" binding:"required,oneof=FLIGHT_HOURS TIME_BASED BOTH"`
	FlightHoursInterval float64 `json:"flight_hours_interval"`
	DayInterval         int     `json:"day_interval"`
	CurrentFlightHours  float64 `json:"current_flight_hours"`
	Description         string  `json:"description"`
}

type UpdateScheduleRequest struct {
	IntervalType        string  `json:"interval_type" binding:"omitempty,oneof=FLIGHT_HOURS TIME_BASED BOTH"`
	FlightHoursInterval float64 `json:"flight_hours_interval"`
	DayInterval         int     `json:"day_interval"`
	Description         string  `json:"description"`
	Active              *bool   `json:"active"`
}

type RecordFlightHoursRequest struct {
	TotalHours float64 `json:"total_hours" binding:"required,min=0"`
}

type MarkPerformedRequest struct {
	PerformedAt *time.Time `json:"performed_at"`
}

type ScheduleResponse struct {
	ID                  uint       `json:"id"`
	UAVModel            string     `json:"uav_model"`
	UAVSerial           string     `json:"uav_serial"`
	CustomerID          uint       `json:"customer_id"`
	IntervalType        string     `json:"interval_type"`
	FlightHoursInterval float64    `json:"flight_hours_interval,omitempty"`
	DayInterval         int        `json:"day_interval,omitempty"`
	CurrentFlightHours  float64    `json:"current_flight_hours"`
	LastFlightHours     float64    `json:"last_flight_hours"`
	Description         string     `json:"description,omitempty"`
	Active              bool       `json:"active"`
	Due                 bool       `json:"due"`
	LastPerformedAt     *time.Time `json:"last_performed_at,omitempty"`
	NextDueAt           *time.Time `json:"next_due_at,omitempty"`
	IncidentID          *uint      `json:"incident_id,omitempty"`
}

func scheduleToResponse(r *usecases.ScheduleResult) ScheduleResponse {
	return ScheduleResponse{
		ID:                  r.ID,
		UAVModel:            r.UAVModel,
		UAVSerial:           r.UAVSerial,
		CustomerID:          r.CustomerID,
		IntervalType:        r.IntervalType,
		FlightHoursInterval: r.FlightHoursInterval,
		DayInterval:         r.DayInterval,
		CurrentFlightHours:  r.CurrentFlightHours,
		LastFlightHours:     r.LastFlightHours,
		Description:         r.Description,
		Active:              r.Active,
		Due:                 r.Due,
		LastPerformedAt:     r.LastPerformedAt,
		NextDueAt:           r.NextDueAt,
		IncidentID:          r.IncidentID,
	}
}

func (h *MaintenanceHandler) CreateSchedule(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create schedule", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.createScheduleUC.Execute(c.Request.Context(), usecases.CreateScheduleCommand{
		UAVModel:            req.UAVModel,
		UAVSerial:           req.UAVSerial,
		CustomerID:          req.CustomerID,
		IntervalType:        req.IntervalType,
		FlightHoursInterval: req.FlightHoursInterval,
		DayInterval:         req.DayInterval,
		CurrentFlightHours:  req.CurrentFlightHours,
		Description:         req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, scheduleToResponse(result), "maintenance schedule created")
}

func (h *MaintenanceHandler) UpdateSchedule(c *gin.Context) {
	scheduleID, err := utils.ParseUintParam(c, "id", "maintenance schedule")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update schedule", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.updateScheduleUC.Execute(c.Request.Context(), usecases.UpdateScheduleCommand{
		ScheduleID:          scheduleID,
		IntervalType:        req.IntervalType,
		FlightHoursInterval: req.FlightHoursInterval,
		DayInterval:         req.DayInterval,
		Description:         req.Description,
		Active:              req.Active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "maintenance schedule updated", scheduleToResponse(result))
}

func (h *MaintenanceHandler) RecordFlightHours(c *gin.Context) {
	scheduleID, err := utils.ParseUintParam(c, "id", "maintenance schedule")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RecordFlightHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for record flight hours", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "total_hours is required")
		return
	}

	result, err := h.recordFlightHoursUC.Execute(c.Request.Context(), usecases.RecordFlightHoursCommand{
		ScheduleID: scheduleID,
		TotalHours: req.TotalHours,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "flight hours recorded", scheduleToResponse(result))
}

func (h *MaintenanceHandler) MarkPerformed(c *gin.Context) {
	scheduleID, err := utils.ParseUintParam(c, "id", "maintenance schedule")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req MarkPerformedRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.logger.Warnw("invalid request body for mark performed", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid payload")
		return
	}

	result, err := h.markPerformedUC.Execute(c.Request.Context(), usecases.MarkPerformedCommand{
		ScheduleID:  scheduleID,
		PerformedAt: req.PerformedAt,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "maintenance performed", scheduleToResponse(result))
}

func (h *MaintenanceHandler) ListSchedules(c *gin.Context) {
	p := utils.ParsePagination(c)

	q := usecases.ListSchedulesQuery{
		ActiveOnly: c.Query("active") == "true",
		Pagination: p,
	}
	if currentUserRole(c).IsStaff() {
		q.CustomerID = queryUint(c, "customer_id")
	} else {
		q.CustomerID = utils.CurrentUserID(c)
	}

	result, err := h.listSchedulesUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	schedules := make([]ScheduleResponse, 0, len(result.Schedules))
	for i := range result.Schedules {
		schedules = append(schedules, scheduleToResponse(&result.Schedules[i]))
	}

	utils.ListSuccessResponse(c, schedules, result.Total, p.Page, p.PageSize)
}

func (h *MaintenanceHandler) ListDue(c *gin.Context) {
	results, err := h.listDueUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	schedules := make([]ScheduleResponse, 0, len(results))
	for i := range results {
		schedules = append(schedules, scheduleToResponse(&results[i]))
	}

	utils.SuccessResponse(c, http.StatusOK, "", schedules)
}
