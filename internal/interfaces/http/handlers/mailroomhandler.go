package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skywrench/internal/application/mailroom/usecases"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type MailroomHandler struct {
	createRuleUC    *usecases.CreateInboundRuleUseCase
	setRuleActiveUC *usecases.SetRuleActiveUseCase
	deleteRuleUC    *usecases.DeleteInboundRuleUseCase
	listRulesUC     *usecases.ListInboundRulesUseCase
	listProcessedUC *usecases.ListProcessedEmailsUseCase
	logger          logger.Interface
}

func NewMailroomHandler(
	createRuleUC *usecases.CreateInboundRuleUseCase,
	setRuleActiveUC *usecases.SetRuleActiveUseCase,
	deleteRuleUC *usecases.DeleteInboundRuleUseCase,
	listRulesUC *usecases.ListInboundRulesUseCase,
	listProcessedUC *usecases.ListProcessedEmailsUseCase,
) *MailroomHandler {
	return &MailroomHandler{
		createRuleUC:    createRuleUC,
		setRuleActiveUC: setRuleActiveUC,
		deleteRuleUC:    deleteRuleUC,
		listRulesUC:     listRulesUC,
		listProcessedUC: listProcessedUC,
		logger:          logger.NewLogger(),
	}
}

type CreateInboundRuleRequest struct {
	Name               string `json:"name" binding:"required"`
	Priority           int    `json:"priority"`
	FromPattern        string `json:"from_pattern"`
	ToPattern          string `json:"to_pattern"`
	SubjectPattern     string `json:"subject_pattern"`
	BodyKeywords       string `json:"body_keywords"`
	RequireAttachment  bool   `json:"require_attachment"`
	DefaultPriority    string `json:"default_priority"`
	DefaultCategory    string `json:"default_category"`
	DefaultSLACategory string `json:"default_sla_category"`
	AutoAssignUserID   *uint  `json:"auto_assign_user_id"`
}

type SetRuleActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type InboundRuleResponse struct {
	ID                 uint       `json:"id"`
	Name               string     `json:"name"`
	Priority           int        `json:"priority"`
	Active             bool       `json:"active"`
	FromPattern        string     `json:"from_pattern,omitempty"`
	ToPattern          string     `json:"to_pattern,omitempty"`
	SubjectPattern     string     `json:"subject_pattern,omitempty"`
	BodyKeywords       string     `json:"body_keywords,omitempty"`
	RequireAttachment  bool       `json:"require_attachment"`
	DefaultPriority    string     `json:"default_priority,omitempty"`
	DefaultCategory    string     `json:"default_category,omitempty"`
	DefaultSLACategory string     `json:"default_sla_category,omitempty"`
	AutoAssignUserID   *uint      `json:"auto_assign_user_id,omitempty"`
	EmailsProcessed    int        `json:"emails_processed"`
	IncidentsCreated   int        `json:"incidents_created"`
	LastProcessedAt    *time.Time `json:"last_processed_at,omitempty"`
}

type ProcessedEmailResponse struct {
	ID              uint      `json:"id"`
	MessageID       string    `json:"message_id"`
	From            string    `json:"from"`
	To              string    `json:"to,omitempty"`
	Subject         string    `json:"subject"`
	BodyPreview     string    `json:"body_preview,omitempty"`
	AttachmentCount int       `json:"attachment_count"`
	RuleID          *uint     `json:"rule_id,omitempty"`
	Outcome         string    `json:"outcome"`
	ErrorDetail     string    `json:"error_detail,omitempty"`
	IncidentID      *uint     `json:"incident_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func inboundRuleToResponse(r *usecases.InboundRuleResult) InboundRuleResponse {
	return InboundRuleResponse{
		ID:                 r.ID,
		Name:               r.Name,
		Priority:           r.Priority,
		Active:             r.Active,
		FromPattern:        r.FromPattern,
		ToPattern:          r.ToPattern,
		SubjectPattern:     r.SubjectPattern,
		BodyKeywords:       r.BodyKeywords,
		RequireAttachment:  r.RequireAttachment,
		DefaultPriority:    r.DefaultPriority,
		DefaultCategory:    r.DefaultCategory,
		DefaultSLACategory: r.DefaultSLACategory,
		AutoAssignUserID:   r.AutoAssignUserID,
		EmailsProcessed:    r.EmailsProcessed,
		IncidentsCreated:   r.IncidentsCreated,
		LastProcessedAt:    r.LastProcessedAt,
	}
}

func (h *MailroomHandler) CreateRule(c *gin.Context) {
	var req CreateInboundRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create inbound rule", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid rule payload")
		return
	}

	result, err := h.createRuleUC.Execute(c.Request.Context(), usecases.CreateInboundRuleCommand{
		Name:               req.Name,
		Priority:           req.Priority,
		FromPattern:        req.FromPattern,
		ToPattern:          req.ToPattern,
		SubjectPattern:     req.SubjectPattern,
		BodyKeywords:       req.BodyKeywords,
		RequireAttachment:  req.RequireAttachment,
		DefaultPriority:    req.DefaultPriority,
		DefaultCategory:    req.DefaultCategory,
		DefaultSLACategory: req.DefaultSLACategory,
		AutoAssignUserID:   req.AutoAssignUserID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, inboundRuleToResponse(result), "inbound rule created")
}

func (h *MailroomHandler) SetRuleActive(c *gin.Context) {
	ruleID, err := utils.ParseUintParam(c, "id", "inbound rule")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetRuleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		h.logger.Warnw("invalid request body for set rule active", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "active is required")
		return
	}

	result, err := h.setRuleActiveUC.Execute(c.Request.Context(), ruleID, *req.Active)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "inbound rule updated", inboundRuleToResponse(result))
}

func (h *MailroomHandler) DeleteRule(c *gin.Context) {
	ruleID, err := utils.ParseUintParam(c, "id", "inbound rule")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteRuleUC.Execute(c.Request.Context(), ruleID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "inbound rule deleted", nil)
}

func (h *MailroomHandler) ListRules(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listRulesUC.Execute(c.Request.Context(), usecases.ListInboundRulesQuery{Pagination: p})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	rules := make([]InboundRuleResponse, 0, len(result.Rules))
	for i := range result.Rules {
		rules = append(rules, inboundRuleToResponse(&result.Rules[i]))
	}

	utils.ListSuccessResponse(c, rules, result.Total, p.Page, p.PageSize)
}

func (h *MailroomHandler) ListProcessed(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listProcessedUC.Execute(c.Request.Context(), usecases.ListProcessedEmailsQuery{
		Outcome:    c.Query("outcome"),
		Pagination: p,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	emails := make([]ProcessedEmailResponse, 0, len(result.Emails))
	for _, e := range result.Emails {
		emails = append(emails, ProcessedEmailResponse{
			ID:              e.ID,
			MessageID:       e.MessageID,
			From:            e.From,
			To:              e.To,
			Subject:         e.Subject,
			BodyPreview:     e.BodyPreview,
			AttachmentCount: e.AttachmentCount,
			RuleID:          e.RuleID,
			Outcome:         e.Outcome,
			ErrorDetail:     e.ErrorDetail,
			IncidentID:      e.IncidentID,
			CreatedAt:       e.CreatedAt,
		})
	}

	utils.ListSuccessResponse(c, emails, result.Total, p.Page, p.PageSize)
}
