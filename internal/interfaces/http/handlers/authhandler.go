package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skywrench/internal/application/user/usecases"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type AuthHandler struct {
	authenticateUC   *usecases.AuthenticateUseCase
	getUserUC        *usecases.GetUserUseCase
	changePasswordUC *usecases.ChangePasswordUseCase
	logger           logger.Interface
}

func NewAuthHandler(
	authenticateUC *usecases.AuthenticateUseCase,
	getUserUC *usecases.GetUserUseCase,
	changePasswordUC *usecases.ChangePasswordUseCase,
) *AuthHandler {
	return &AuthHandler{
		authenticateUC:   authenticateUC,
		getUserUC:        getUserUC,
		changePasswordUC: changePasswordUC,
		logger:           logger.NewLogger(),
	}
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid login request body", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "login and password are required")
		return
	}

	result, err := h.authenticateUC.Execute(c.Request.Context(), usecases.AuthenticateCommand{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", LoginResponse{
		UserID:    result.UserID,
		Username:  result.Username,
		FullName:  result.FullName,
		Role:      result.Role,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	if userID == 0 {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.getUserUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", userToResponse(result))
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	if userID == 0 {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid change password request body", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "current and new password are required")
		return
	}

	err := h.changePasswordUC.Execute(c.Request.Context(), usecases.ChangePasswordCommand{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "password changed", nil)
}
