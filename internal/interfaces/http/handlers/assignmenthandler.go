package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skywrench/internal/application/assignment/usecases"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type AssignmentHandler struct {
	createRuleUC  *usecases.CreateRuleUseCase
	updateRuleUC  *usecases.UpdateRuleUseCase
	deleteRuleUC  *usecases.DeleteRuleUseCase
	listRulesUC   *usecases.ListRulesUseCase
	createGroupUC *usecases.CreateGroupUseCase
	updateGroupUC *usecases.UpdateGroupUseCase
	listGroupsUC  *usecases.ListGroupsUseCase
	logger        logger.Interface
}

func NewAssignmentHandler(
	createRuleUC *usecases.CreateRuleUseCase,
	updateRuleUC *usecases.UpdateRuleUseCase,
	deleteRuleUC *usecases.DeleteRuleUseCase,
	listRulesUC *usecases.ListRulesUseCase,
	createGroupUC *usecases.CreateGroupUseCase,
	updateGroupUC *usecases.UpdateGroupUseCase,
	listGroupsUC *usecases.ListGroupsUseCase,
) *AssignmentHandler {
	return &AssignmentHandler{
		createRuleUC:  createRuleUC,
		updateRuleUC:  updateRuleUC,
		deleteRuleUC:  deleteRuleUC,
		listRulesUC:   listRulesUC,
		createGroupUC: createGroupUC,
		updateGroupUC: updateGroupUC,
		listGroupsUC:  listGroupsUC,
		logger:        logger.NewLogger(),
	}
}

type CreateAssignmentRuleRequest struct {
	Name                string `json:"name" binding:"required"`
	Description         string `json:"description"`
	Priority            int    `json:"priority"`
	ConditionCategory   string `json:"condition_category"`
	ConditionPriority   string `json:"condition_priority"`
	ConditionDepartment string `json:"condition_department"`
	Action              string `json:"action" binding:"required,oneof=specific_user assignment_group round_robin"`
	TargetUserID        *uint  `json:"target_user_id"`
	GroupID             *uint  `json:"group_id"`
}

type UpdateAssignmentRuleRequest struct {
	Name                string `json:"name"`
	Description         string `json:"description"`
	Priority            int    `json:"priority"`
	ConditionCategory   string `json:"condition_category"`
	ConditionPriority   string `json:"condition_priority"`
	ConditionDepartment string `json:"condition_department"`
	Active              *bool  `json:"active"`
}

type CreateGroupRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	MemberIDs   []uint `json:"member_ids"`
}

type UpdateGroupRequest struct {
	Active        *bool  `json:"active"`
	AddMembers    []uint `json:"add_members"`
	RemoveMembers []uint `json:"remove_members"`
}

type AssignmentRuleResponse struct {
	ID                  uint   `json:"id"`
	Name                string `json:"name"`
	Description         string `json:"description,omitempty"`
	Priority            int    `json:"priority"`
	Active              bool   `json:"active"`
	ConditionCategory   string `json:"condition_category,omitempty"`
	ConditionPriority   string `json:"condition_priority,omitempty"`
	ConditionDepartment string `json:"condition_department,omitempty"`
	Action              string `json:"action"`
	TargetUserID        *uint  `json:"target_user_id,omitempty"`
	GroupID             *uint  `json:"group_id,omitempty"`
	TimesTriggered      int    `json:"times_triggered"`
}

type GroupResponse struct {
	ID          uint   `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
	MemberIDs   []uint `json:"member_ids"`
}

func ruleToResponse(r *usecases.RuleResult) AssignmentRuleResponse {
	return AssignmentRuleResponse{
		ID:                  r.ID,
		Name:                r.Name,
		Description:         r.Description,
		Priority:            r.Priority,
		Active:              r.Active,
		ConditionCategory:   r.ConditionCategory,
		ConditionPriority:   r.ConditionPriority,
		ConditionDepartment: r.ConditionDepartment,
		Action:              r.Action,
		TargetUserID:        r.TargetUserID,
		GroupID:             r.GroupID,
		TimesTriggered:      r.TimesTriggered,
	}
}

func groupToResponse(g *usecases.GroupResult) GroupResponse {
	return GroupResponse{
		ID:          g.ID,
		Code:        g.Code,
		Name:        g.Name,
		Description: g.Description,
		Active:      g.Active,
		MemberIDs:   g.MemberIDs,
	}
}

func (h *AssignmentHandler) CreateRule(c *gin.Context) {
	var req CreateAssignmentRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create assignment rule", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.createRuleUC.Execute(c.Request.Context(), usecases.CreateRuleCommand{
		Name:                req.Name,
		Description:         req.Description,
		Priority:            req.Priority,
		ConditionCategory:   req.ConditionCategory,
		ConditionPriority:   req.ConditionPriority,
		ConditionDepartment: req.ConditionDepartment,
		Action:              req.Action,
		TargetUserID:        req.TargetUserID,
		GroupID:             req.GroupID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, ruleToResponse(result), "assignment rule created")
}

func (h *AssignmentHandler) UpdateRule(c *gin.Context) {
	ruleID, err := utils.ParseUintParam(c, "id", "assignment rule")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateAssignmentRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update assignment rule", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.updateRuleUC.Execute(c.Request.Context(), usecases.UpdateRuleCommand{
		RuleID:              ruleID,
		Name:                req.Name,
		Description:         req.Description,
		Priority:            req.Priority,
		ConditionCategory:   req.ConditionCategory,
		ConditionPriority:   req.ConditionPriority,
		ConditionDepartment: req.ConditionDepartment,
		Active:              req.Active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "assignment rule updated", ruleToResponse(result))
}

func (h *AssignmentHandler) DeleteRule(c *gin.Context) {
	ruleID, err := utils.ParseUintParam(c, "id", "assignment rule")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteRuleUC.Execute(c.Request.Context(), ruleID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "assignment rule deleted", nil)
}

func (h *AssignmentHandler) ListRules(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listRulesUC.Execute(c.Request.Context(), usecases.ListRulesQuery{Pagination: p})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	rules := make([]AssignmentRuleResponse, 0, len(result.Rules))
	for i := range result.Rules {
		rules = append(rules, ruleToResponse(&result.Rules[i]))
	}

	utils.ListSuccessResponse(c, rules, result.Total, p.Page, p.PageSize)
}

func (h *AssignmentHandler) CreateGroup(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create group", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid group payload")
		return
	}

	result, err := h.createGroupUC.Execute(c.Request.Context(), usecases.CreateGroupCommand{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, groupToResponse(result), "assignment group created")
}

func (h *AssignmentHandler) UpdateGroup(c *gin.Context) {
	groupID, err := utils.ParseUintParam(c, "id", "assignment group")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update group", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid group payload")
		return
	}

	result, err := h.updateGroupUC.Execute(c.Request.Context(), usecases.UpdateGroupCommand{
		GroupID:       groupID,
		Active:        req.Active,
		AddMembers:    req.AddMembers,
		RemoveMembers: req.RemoveMembers,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "assignment group updated", groupToResponse(result))
}

func (h *AssignmentHandler) ListGroups(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listGroupsUC.Execute(c.Request.Context(), usecases.ListGroupsQuery{Pagination: p})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	groups := make([]GroupResponse, 0, len(result.Groups))
	for i := range result.Groups {
		groups = append(groups, groupToResponse(&result.Groups[i]))
	}

	utils.ListSuccessResponse(c, groups, result.Total, p.Page, p.PageSize)
}
