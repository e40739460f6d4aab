package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"skywrench/internal/application/incident/usecases"
	"skywrench/internal/shared/authorization"
	"skywrench/internal/shared/constants"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type IncidentHandler struct {
	raiseIncidentUC      *usecases.RaiseIncidentUseCase
	getIncidentUC        *usecases.GetIncidentUseCase
	listIncidentsUC      *usecases.ListIncidentsUseCase
	assignTechnicianUC   *usecases.AssignTechnicianUseCase
	completeDiagnosisUC  *usecases.CompleteDiagnosisUseCase
	approveWorkOrderUC   *usecases.ApproveWorkOrderUseCase
	rejectWorkOrderUC    *usecases.RejectWorkOrderUseCase
	completeRepairUC     *usecases.CompleteRepairUseCase
	passQualityCheckUC   *usecases.PassQualityCheckUseCase
	schedulePreventiveUC *usecases.SchedulePreventiveUseCase
	closeIncidentUC      *usecases.CloseIncidentUseCase
	listActivitiesUC     *usecases.ListActivitiesUseCase
	partsConsumer        usecases.PartsConsumer
	logger               logger.Interface
}

func NewIncidentHandler(
	raiseIncidentUC *usecases.RaiseIncidentUseCase,
	getIncidentUC *usecases.GetIncidentUseCase,
	listIncidentsUC *usecases.ListIncidentsUseCase,
	assignTechnicianUC *usecases.AssignTechnicianUseCase,
	completeDiagnosisUC *usecases.CompleteDiagnosisUseCase,
	approveWorkOrderUC *usecases.ApproveWorkOrderUseCase,
	rejectWorkOrderUC *usecases.RejectWorkOrderUseCase,
	completeRepairUC *usecases.CompleteRepairUseCase,
	passQualityCheckUC *usecases.PassQualityCheckUseCase,
	schedulePreventiveUC *usecases.SchedulePreventiveUseCase,
	closeIncidentUC *usecases.CloseIncidentUseCase,
	listActivitiesUC *usecases.ListActivitiesUseCase,
	partsConsumer usecases.PartsConsumer,
) *IncidentHandler {
	return &IncidentHandler{
		raiseIncidentUC:      raiseIncidentUC,
		getIncidentUC:        getIncidentUC,
		listIncidentsUC:      listIncidentsUC,
		assignTechnicianUC:   assignTechnicianUC,
		completeDiagnosisUC:  completeDiagnosisUC,
		approveWorkOrderUC:   approveWorkOrderUC,
		rejectWorkOrderUC:    rejectWorkOrderUC,
		completeRepairUC:     completeRepairUC,
		passQualityCheckUC:   passQualityCheckUC,
		schedulePreventiveUC: schedulePreventiveUC,
		closeIncidentUC:      closeIncidentUC,
		listActivitiesUC:     listActivitiesUC,
		partsConsumer:        partsConsumer,
		logger:               logger.NewLogger(),
	}
}

type RaiseIncidentRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description" binding:"required"`
	Category      string `json:"category" binding:"required"`
	Priority      string `json:"priority"`
	SLACategory   string `json:"sla_category"`
	Department    string `json:"department"`
	UAVModel      string `json:"uav_model" binding:"required"`
	UAVSerial     string `json:"uav_serial" binding:"required"`
	UnderWarranty bool   `json:"under_warranty"`
	CustomerID    uint   `json:"customer_id"`
}

type AssignTechnicianRequest struct {
	TechnicianID uint  `json:"technician_id" binding:"required"`
	GroupID      *uint `json:"group_id"`
}

type PartLineRequest struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

type CompleteDiagnosisRequest struct {
	Notes         string            `json:"notes" binding:"required"`
	WorkOrderType string            `json:"work_order_type" binding:"required,oneof=REPAIR REPLACE MAINTENANCE"`
	EstimatedCost decimal.Decimal   `json:"estimated_cost"`
	Parts         []PartLineRequest `json:"parts"`
}

type ApprovalDecisionRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
	Comment  string `json:"comment"`
}

type CompleteRepairRequest struct {
	Notes      string            `json:"notes" binding:"required"`
	LaborHours decimal.Decimal   `json:"labor_hours"`
	ActualCost decimal.Decimal   `json:"actual_cost"`
	Parts      []PartLineRequest `json:"parts"`
}

type QualityCheckRequest struct {
	Notes                  string `json:"notes"`
	QAVerified             bool   `json:"qa_verified"`
	AirworthinessCertified bool   `json:"airworthiness_certified"`
	SchedulePreventive     bool   `json:"schedule_preventive"`
}

type SchedulePreventiveRequest struct {
	IntervalType        string  `json:"interval_type" binding:"required,oneof=FLIGHT_HOURS TIME_BASED BOTH"`
	FlightHoursInterval float64 `json:"flight_hours_interval"`
	DayInterval         int     `json:"day_interval"`
	Description         string  `json:"description"`
}

type CloseIncidentRequest struct {
	Notes string `json:"notes"`
}

type IncidentResponse struct {
	ID              uint            `json:"id"`
	Number          string          `json:"number"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Priority        string          `json:"priority"`
	SLACategory     string          `json:"sla_category"`
	SLAStatus       string          `json:"sla_status"`
	Status          string          `json:"status"`
	StepNumber      int             `json:"step_number"`
	StepName        string          `json:"step_name"`
	ProgressPercent float64         `json:"progress_percent"`
	Department      string          `json:"department,omitempty"`
	UAVModel        string          `json:"uav_model"`
	UAVSerial       string          `json:"uav_serial"`
	UnderWarranty   bool            `json:"under_warranty"`
	CustomerID      uint            `json:"customer_id"`
	TechnicianID    *uint           `json:"technician_id,omitempty"`
	GroupID         *uint           `json:"group_id,omitempty"`
	WorkOrderType   string          `json:"work_order_type,omitempty"`
	DiagnosisNotes  string          `json:"diagnosis_notes,omitempty"`
	RepairNotes     string          `json:"repair_notes,omitempty"`
	QualityNotes    string          `json:"quality_notes,omitempty"`
	LaborHours      decimal.Decimal `json:"labor_hours"`
	EstimatedCost   decimal.Decimal `json:"estimated_cost"`
	ActualCost      decimal.Decimal `json:"actual_cost"`
	RaisedAt        time.Time       `json:"raised_at"`
	ClosedAt        *time.Time      `json:"closed_at,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type IncidentSummaryResponse struct {
	ID           uint   `json:"id"`
	Number       string `json:"number"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	Priority     string `json:"priority"`
	SLACategory  string `json:"sla_category"`
	SLAStatus    string `json:"sla_status"`
	Status       string `json:"status"`
	StepNumber   int    `json:"step_number"`
	CustomerID   uint   `json:"customer_id"`
	TechnicianID *uint  `json:"technician_id,omitempty"`
	RaisedAt     string `json:"raised_at"`
}

type ActivityResponse struct {
	ID              uint      `json:"id"`
	ActorID         *uint     `json:"actor_id,omitempty"`
	Action          string    `json:"action"`
	Detail          string    `json:"detail,omitempty"`
	CustomerVisible bool      `json:"customer_visible"`
	CreatedAt       time.Time `json:"created_at"`
}

func (h *IncidentHandler) RaiseIncident(c *gin.Context) {
	var req RaiseIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for raise incident", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	// Customers always raise incidents for themselves. Staff may raise on
	// behalf of a customer by passing customer_id.
	customerID := utils.CurrentUserID(c)
	if req.CustomerID != 0 && currentUserRole(c).IsStaff() {
		customerID = req.CustomerID
	}

	result, err := h.raiseIncidentUC.Execute(c.Request.Context(), usecases.RaiseIncidentCommand{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Priority:      req.Priority,
		SLACategory:   req.SLACategory,
		Department:    req.Department,
		UAVModel:      req.UAVModel,
		UAVSerial:     req.UAVSerial,
		UnderWarranty: req.UnderWarranty,
		CustomerID:    customerID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"id":            result.IncidentID,
		"number":        result.Number,
		"status":        result.Status,
		"technician_id": result.TechnicianID,
		"group_id":      result.GroupID,
		"raised_at":     result.RaisedAt,
	}, "incident raised")
}

func (h *IncidentHandler) GetIncident(c *gin.Context) {
	incidentID, err := utils.ParseUintParam(c, "id", "incident")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	details, err := h.getIncidentUC.Execute(c.Request.Context(), usecases.GetIncidentQuery{IncidentID: incidentID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	// Customers only see their own incidents. Respond with not found so
	// incident numbers cannot be probed.
	if !currentUserRole(c).IsStaff() && details.CustomerID != utils.CurrentUserID(c) {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("incident not found"))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", incidentToResponse(details))
}

func (h *IncidentHandler) ListIncidents(c *gin.Context) {
	p := utils.ParsePagination(c)

	q := usecases.ListIncidentsQuery{
		Status:     c.Query("status"),
		Category:   c.Query("category"),
		Priority:   c.Query("priority"),
		Search:     c.Query("search"),
		Pagination: p,
		OrderBy:    c.Query("order_by"),
	}

	if currentUserRole(c).IsStaff() {
		q.CustomerID = queryUint(c, "customer_id")
		q.TechnicianID = queryUint(c, "technician_id")
		q.GroupID = queryUint(c, "group_id")
	} else {
		q.CustomerID = utils.CurrentUserID(c)
	}

	result, err := h.listIncidentsUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	incidents := make([]IncidentSummaryResponse, 0, len(result.Incidents))
	for _, s := range result.Incidents {
		incidents = append(incidents, IncidentSummaryResponse{
			ID:           s.ID,
			Number:       s.Number,
			Title:        s.Title,
			Category:     s.Category,
			Priority:     s.Priority,
			SLACategory:  s.SLACategory,
			SLAStatus:    s.SLAStatus,
			Status:       s.Status,
			StepNumber:   s.StepNumber,
			CustomerID:   s.CustomerID,
			TechnicianID: s.TechnicianID,
			RaisedAt:     s.RaisedAt,
		})
	}

	utils.ListSuccessResponse(c, incidents, result.Total, p.Page, p.PageSize)
}

func (h *IncidentHandler) AssignTechnician(c *gin.Context) {
	incidentID, err := utils.ParseUintParam(c, "id", "incident")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for assign technician", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "technician_id is required")
		return
	}

	result, err := h.assignTechnicianUC.Execute(c.Request.Context(), usecases.AssignTechnicianCommand{
		IncidentID:   incidentID,
		TechnicianID: req.TechnicianID,
		GroupID:      req.GroupID,
		ActorID:      utils.CurrentUserID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "technician assigned", gin.H{
		"id":            result.IncidentID,
		"status":        result.Status,
		"technician_id": result.TechnicianID,
	})
}

func (h *IncidentHandler) CompleteDiagnosis(c *gin.Context) {
	incidentID, err := utils.ParseUintParam(c, "id", "incident")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CompleteDiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for complete diagnosis", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.completeDiagnosisUC.Execute(c.Request.Context(), usecases.CompleteDiagnosisCommand{
		IncidentID:    incidentID,
		ActorID:       utils.CurrentUserID(c),
		Notes:         req.Notes,
		WorkOrderType: req.WorkOrderType,
		EstimatedCost: req.EstimatedCost,
		Parts:         toPartLines(req.Parts),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "diagnosis completed", gin.H{
		"id":                result.IncidentID,
		"status":            result.Status,
		"work_order_id":     result.WorkOrderID,
		"requires_approval": result.RequiresApproval,
		"parts_cost":        result.PartsCost,
	})
}

func (h *IncidentHandler) DecideApproval(c *gin.Context) {
	incidentID, err := utils.ParseUintParam(c, "id", "incident")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ApprovalDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for approval decision", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "decision must be approve or reject")
		return
	}

	approverID := utils.CurrentUserID(c)

	if req.Decision == "approve" {
		result, err := h.approveWorkOrderUC.Execute(c.Request.Context(), usecases.ApproveWorkOrderCommand{
			IncidentID: incidentID,
			ApproverID: approverID,
			Comment:    req.Comment,
		})
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "work order approved", gin.H{
			"id":     result.IncidentID,
			"status": result.Status,
		})
		return
	}

	result, err := h.rejectWorkOrderUC.Execute(c.Request.Context(), usecases.RejectWorkOrderCommand{
		IncidentID: incidentID,
		ApproverID: approverID,
		Reason:     req.Comment,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "work order rejected", gin.H{
		"id":     result.IncidentID,
		"status": result.Status,
	})
}

func (h *IncidentHandler) CompleteRepair(c *gin.Context) {
	incidentID, err := utils.ParseUintParam(c, "id", "incident")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CompleteRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for complete repair", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid repair payload")
		return
	}

	result, err := h.completeRepairUC.Execute(c.Request.Context(), usecases.CompleteRepairCommand{
		IncidentID: incidentID,
		ActorID:    utils.CurrentUserID(c),
		Notes:      req.Notes,
		LaborHours: req.LaborHours,
		ActualCost: req.ActualCost,
		Parts:      toPartLines(req.Parts),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "repair completed", gin.H{
		"id":         result.IncidentID,
		"status":     result.Status,
		"parts_cost": result.PartsCost,
		"total_cost": result.TotalCost,
	})
}

func (h *IncidentHandler) PassQualityCheck(c *gin.Context) {
	incidentID, err := utils.ParseUintParam(c, "id", "incident")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req QualityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for quality check", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid quality check payload")
		return
	}

	result, err := h.passQualityCheckUC.Execute(c.Request.Context(), usecases.PassQualityCheckCommand{
		IncidentID:             incidentID,
		ActorID:                utils.CurrentUserID(c),
		Notes:                  req.Notes,
		QAVerified:             req.QAVerified,
		AirworthinessCertified: req.AirworthinessCertified,
		SchedulePreventive:     req.SchedulePreventive,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "quality check passed", gin.H{
		"id":     result.IncidentID,
		"status": result.Status,
	})
}

func (h *IncidentHandler) SchedulePreventive(c *gin.Context) {
	incidentID, err := utils.ParseUintParam(c, "id", "incident")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SchedulePreventiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for schedule preventive", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.schedulePreventiveUC.Execute(c.Request.Context(), usecases.SchedulePreventiveCommand{
		IncidentID:          incidentID,
		ActorID:             utils.CurrentUserID(c),
		IntervalType:        req.IntervalType,
		FlightHoursInterval: req.FlightHoursInterval,
		DayInterval:         req.DayInterval,
		Description:         req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "preventive maintenance scheduled", gin.H{
		"id":          result.IncidentID,
		"schedule_id": result.ScheduleID,
		"status":      result.Status,
	})
}

func (h *IncidentHandler) CloseIncident(c *gin.Context) {
	incidentID, err := utils.ParseUintParam(c, "id", "incident")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CloseIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.logger.Warnw("invalid request body for close incident", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid close payload")
		return
	}

	result, err := h.closeIncidentUC.Execute(c.Request.Context(), usecases.CloseIncidentCommand{
		IncidentID: incidentID,
		ActorID:    utils.CurrentUserID(c),
		Notes:      req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "incident closed", gin.H{
		"id":     result.IncidentID,
		"status": result.Status,
	})
}

type ConsumePartsRequest struct {
	Parts []PartLineRequest `json:"parts" binding:"required,min=1,dive"`
}

// ConsumeParts deducts stock for an incident outside the diagnosis and
// repair transitions, e.g. replacement parts logged after the fact.
func (h *IncidentHandler) ConsumeParts(c *gin.Context) {
	incidentID, err := utils.ParseUintParam(c, "id", "incident")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ConsumePartsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for consume parts", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "at least one part line is required")
		return
	}

	actorID := utils.CurrentUserID(c)
	total, err := h.partsConsumer.ConsumeForIncident(c.Request.Context(), incidentID, toPartLines(req.Parts), &actorID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "parts consumed", gin.H{
		"incident_id": incidentID,
		"parts_cost":  total,
	})
}

func (h *IncidentHandler) ListActivities(c *gin.Context) {
	incidentID, err := utils.ParseUintParam(c, "id", "incident")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	isStaff := currentUserRole(c).IsStaff()
	if !isStaff {
		details, err := h.getIncidentUC.Execute(c.Request.Context(), usecases.GetIncidentQuery{IncidentID: incidentID})
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		if details.CustomerID != utils.CurrentUserID(c) {
			utils.ErrorResponseWithError(c, errors.NewNotFoundError("incident not found"))
			return
		}
	}

	entries, err := h.listActivitiesUC.Execute(c.Request.Context(), usecases.ListActivitiesQuery{
		IncidentID:   incidentID,
		CustomerView: !isStaff,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	activities := make([]ActivityResponse, 0, len(entries))
	for _, e := range entries {
		activities = append(activities, ActivityResponse{
			ID:              e.ID,
			ActorID:         e.ActorID,
			Action:          e.Action,
			Detail:          e.Detail,
			CustomerVisible: e.CustomerVisible,
			CreatedAt:       e.CreatedAt,
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "", activities)
}

func incidentToResponse(d *usecases.IncidentDetails) IncidentResponse {
	return IncidentResponse{
		ID:              d.ID,
		Number:          d.Number,
		Title:           d.Title,
		Description:     d.Description,
		Category:        d.Category,
		Priority:        d.Priority,
		SLACategory:     d.SLACategory,
		SLAStatus:       d.SLAStatus,
		Status:          d.Status,
		StepNumber:      d.StepNumber,
		StepName:        d.StepName,
		ProgressPercent: d.ProgressPercent,
		Department:      d.Department,
		UAVModel:        d.UAVModel,
		UAVSerial:       d.UAVSerial,
		UnderWarranty:   d.UnderWarranty,
		CustomerID:      d.CustomerID,
		TechnicianID:    d.TechnicianID,
		GroupID:         d.GroupID,
		WorkOrderType:   d.WorkOrderType,
		DiagnosisNotes:  d.DiagnosisNotes,
		RepairNotes:     d.RepairNotes,
		QualityNotes:    d.QualityNotes,
		LaborHours:      d.LaborHours,
		EstimatedCost:   d.EstimatedCost,
		ActualCost:      d.ActualCost,
		RaisedAt:        d.RaisedAt,
		ClosedAt:        d.ClosedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func toPartLines(parts []PartLineRequest) []usecases.PartLine {
	if len(parts) == 0 {
		return nil
	}
	lines := make([]usecases.PartLine, 0, len(parts))
	for _, p := range parts {
		lines = append(lines, usecases.PartLine{ItemID: p.ItemID, Quantity: p.Quantity})
	}
	return lines
}

func currentUserRole(c *gin.Context) authorization.UserRole {
	if v, ok := c.Get(constants.ContextKeyUserRole); ok {
		if role, ok := v.(string); ok {
			return authorization.ParseUserRole(role)
		}
	}
	return authorization.RoleCustomer
}

func queryUint(c *gin.Context, key string) uint {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
