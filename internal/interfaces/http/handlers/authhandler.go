package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"lumen/internal/application/identity"
	"lumen/internal/shared/logger"
	"lumen/internal/shared/utils"
)

type identityService interface {
	Login(ctx context.Context, req identity.LoginRequest) (*identity.LoginResponse, error)
	Refresh(ctx context.Context, req identity.RefreshRequest) (*identity.TokenResponse, error)
}

type AuthHandler struct {
	service identityService
	logger  logger.Interface
}

func NewAuthHandler(service identityService, log logger.Interface) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  log,
	}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for login", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", resp)
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identity.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "token refreshed", resp)
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so logout is
// client-side discard; the endpoint exists so clients have a uniform flow.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "logged out", nil)
}
