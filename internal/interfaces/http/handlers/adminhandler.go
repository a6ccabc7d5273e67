package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lumen/internal/application/admin"
	"lumen/internal/shared/logger"
	"lumen/internal/shared/utils"
)

type adminVerifier interface {
	VerifyAdmin(ctx context.Context, token string) admin.Result
}

type AdminHandler struct {
	verifier adminVerifier
	logger   logger.Interface
}

func NewAdminHandler(verifier adminVerifier, log logger.Interface) *AdminHandler {
	return &AdminHandler{
		verifier: verifier,
		logger:   log,
	}
}

// VerifyResponse is the verdict payload for a completed admin check.
type VerifyResponse struct {
	IsAdmin bool `json:"is_admin"`
	UserID  uint `json:"user_id"`
}

// Verify handles GET /api/admin/verify. A completed check always returns
// 200 with the verdict, admin or not; only identity and store failures
// map to error statuses.
func (h *AdminHandler) Verify(c *gin.Context) {
	token := ""
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			token = parts[1]
		}
	}

	result := h.verifier.VerifyAdmin(c.Request.Context(), token)

	switch result.Decision {
	case admin.DecisionCompleted:
		utils.SuccessResponse(c, http.StatusOK, "", VerifyResponse{
			IsAdmin: result.IsAdmin,
			UserID:  result.UserID,
		})
	case admin.DecisionIdentityFailed:
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or missing credentials")
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "verification failed")
	}
}
