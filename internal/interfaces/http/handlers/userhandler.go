package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skywrench/internal/application/user/usecases"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type UserHandler struct {
	createUserUC *usecases.CreateUserUseCase
	updateUserUC *usecases.UpdateUserUseCase
	getUserUC    *usecases.GetUserUseCase
	listUsersUC  *usecases.ListUsersUseCase
	logger       logger.Interface
}

func NewUserHandler(
	createUserUC *usecases.CreateUserUseCase,
	updateUserUC *usecases.UpdateUserUseCase,
	getUserUC *usecases.GetUserUseCase,
	listUsersUC *usecases.ListUsersUseCase,
) *UserHandler {
	return &UserHandler{
		createUserUC: createUserUC,
		updateUserUC: updateUserUC,
		getUserUC:    getUserUC,
		listUsersUC:  listUsersUC,
		logger:       logger.NewLogger(),
	}
}

type CreateUserRequest struct {
	Username   string `json:"username" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	FullName   string `json:"full_name" binding:"required"`
	Role       string `json:"role" binding:"required,oneof=admin service_manager technician customer"`
	Department string `json:"department"`
}

type UpdateUserRequest struct {
	FullName   string `json:"full_name"`
	Department string `json:"department"`
	Role       string `json:"role" binding:"omitempty,oneof=admin service_manager technician customer"`
	Active     *bool  `json:"active"`
}

type UserResponse struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	Department  string     `json:"department,omitempty"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func userToResponse(r *usecases.UserResult) UserResponse {
	return UserResponse{
		ID:          r.ID,
		Username:    r.Username,
		Email:       r.Email,
		FullName:    r.FullName,
		Role:        r.Role,
		Department:  r.Department,
		Active:      r.Active,
		LastLoginAt: r.LastLoginAt,
		CreatedAt:   r.CreatedAt,
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create user", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.createUserUC.Execute(c.Request.Context(), usecases.CreateUserCommand{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		Role:       req.Role,
		Department: req.Department,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, userToResponse(result), "user created")
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update user", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.updateUserUC.Execute(c.Request.Context(), usecases.UpdateUserCommand{
		UserID:     userID,
		FullName:   req.FullName,
		Department: req.Department,
		Role:       req.Role,
		Active:     req.Active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "user updated", userToResponse(result))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUserUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", userToResponse(result))
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listUsersUC.Execute(c.Request.Context(), usecases.ListUsersQuery{
		Search:     c.Query("search"),
		ActiveOnly: c.Query("active") == "true",
		Pagination: p,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	users := make([]UserResponse, 0, len(result.Users))
	for i := range result.Users {
		users = append(users, userToResponse(&result.Users[i]))
	}

	utils.ListSuccessResponse(c, users, result.Total, p.Page, p.PageSize)
}
