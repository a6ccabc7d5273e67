package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"lumen/internal/application/contact"
	"lumen/internal/interfaces/http/middleware"
	"lumen/internal/shared/fingerprint"
	"lumen/internal/shared/logger"
	"lumen/internal/shared/utils"
)

type contactService interface {
	Submit(ctx context.Context, req contact.SubmitRequest, identity contact.Identity) (*contact.SubmitResponse, error)
}

type ContactHandler struct {
	service contactService
	logger  logger.Interface
}

func NewContactHandler(service contactService, log logger.Interface) *ContactHandler {
	return &ContactHandler{
		service: service,
		logger:  log,
	}
}

// Submit handles POST /api/contact. Works for both authenticated and
// anonymous callers; anonymous requests are throttled by browser
// fingerprint signals instead of user ID.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contact.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for contact submission", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	identity := contact.Identity{
		UserID:  middleware.UserIDFromContext(c),
		Signals: fingerprint.FromRequest(c.Request),
	}

	resp, err := h.service.Submit(c.Request.Context(), req, identity)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, resp.Message, nil)
}
