package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lumen/internal/application/post"
	"lumen/internal/interfaces/http/middleware"
	"lumen/internal/shared/logger"
	"lumen/internal/shared/utils"
)

type postService interface {
	ListPublished(ctx context.Context, req post.ListRequest) ([]post.Summary, int64, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*post.Detail, error)
	ListAll(ctx context.Context, req post.ListRequest) ([]post.Summary, int64, error)
	GetByID(ctx context.Context, id uint) (*post.Detail, error)
	Create(ctx context.Context, req post.CreateRequest, authorID uint) (*post.Detail, error)
	Update(ctx context.Context, id uint, req post.UpdateRequest) (*post.Detail, error)
	SetPublished(ctx context.Context, id uint, published bool) (*post.Detail, error)
	Delete(ctx context.Context, id uint) error
}

type PostHandler struct {
	service postService
	logger  logger.Interface
}

func NewPostHandler(service postService, log logger.Interface) *PostHandler {
	return &PostHandler{
		service: service,
		logger:  log,
	}
}

func bindListRequest(c *gin.Context) post.ListRequest {
	var req post.ListRequest
	req.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	req.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return req
}

// ListPublished handles GET /api/posts.
func (h *PostHandler) ListPublished(c *gin.Context) {
	req := bindListRequest(c)

	items, total, err := h.service.ListPublished(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, items, total, req.Page, req.PageSize)
}

// GetBySlug handles GET /api/posts/:slug.
func (h *PostHandler) GetBySlug(c *gin.Context) {
	detail, err := h.service.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", detail)
}

// ListAll handles GET /api/admin/posts, drafts included.
func (h *PostHandler) ListAll(c *gin.Context) {
	req := bindListRequest(c)

	items, total, err := h.service.ListAll(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, items, total, req.Page, req.PageSize)
}

// GetByID handles GET /api/admin/posts/:id.
func (h *PostHandler) GetByID(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", detail)
}

// Create handles POST /api/admin/posts.
func (h *PostHandler) Create(c *gin.Context) {
	var req post.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create post", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	detail, err := h.service.Create(c.Request.Context(), req, middleware.UserIDFromContext(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, detail)
}

// Update handles PUT /api/admin/posts/:id.
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	var req post.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	detail, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "post updated", detail)
}

type publishRequest struct {
	Published bool `json:"published"`
}

// SetPublished handles PATCH /api/admin/posts/:id/publish.
func (h *PostHandler) SetPublished(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	detail, err := h.service.SetPublished(c.Request.Context(), id, req.Published)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "post updated", detail)
}

// Delete handles DELETE /api/admin/posts/:id.
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *PostHandler) postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid post id")
		return 0, false
	}
	return uint(id), true
}
