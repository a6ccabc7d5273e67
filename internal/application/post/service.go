// Package post exposes the blog surface: public reads of published posts
// rendered to sanitized HTML, and the admin authoring operations.
package post

import (
	"context"
	stderrors "errors"
	"time"

	domain "lumen/internal/domain/post"
	"lumen/internal/shared/errors"
	"lumen/internal/shared/logger"
	"lumen/internal/shared/services/markdown"
	"lumen/internal/shared/utils"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type Service struct {
	posts    domain.Repository
	renderer markdown.Service
	logger   logger.Interface
}

func NewService(posts domain.Repository, renderer markdown.Service, log logger.Interface) *Service {
	return &Service{
		posts:    posts,
		renderer: renderer,
		logger:   log,
	}
}

// ListPublished returns published posts for the public site, newest first.
func (s *Service) ListPublished(ctx context.Context, req ListRequest) ([]Summary, int64, error) {
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)
	posts, total, err := s.posts.List(ctx, domain.ListFilter{
		PublishedOnly: true,
		Page:          page,
		PageSize:      pageSize,
	})
	if err != nil {
		s.logger.Errorw("post listing failed", "error", err)
		return nil, 0, errors.NewInternalError("failed to list posts")
	}

	summaries := make([]Summary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, toSummary(p))
	}
	return summaries, total, nil
}

// GetPublishedBySlug serves one published post with its markdown rendered
// and sanitized. Unpublished posts are indistinguishable from missing ones.
func (s *Service) GetPublishedBySlug(ctx context.Context, slug string) (*Detail, error) {
	p, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		if stderrors.Is(err, domain.ErrNotFound) {
			return nil, errors.NewNotFoundError("post not found")
		}
		s.logger.Errorw("post lookup failed", "error", err, "slug", slug)
		return nil, errors.NewInternalError("failed to load post")
	}
	if !p.Published {
		return nil, errors.NewNotFoundError("post not found")
	}

	html, err := s.renderer.ToHTMLSanitized(p.Content)
	if err != nil {
		s.logger.Errorw("post rendering failed", "error", err, "slug", slug)
		return nil, errors.NewInternalError("failed to render post")
	}

	detail := &Detail{
		Summary:   toSummary(p),
		HTML:      html,
		UpdatedAt: p.UpdatedAt,
	}
	return detail, nil
}

// ListAll returns every post, drafts included, for the admin dashboard.
func (s *Service) ListAll(ctx context.Context, req ListRequest) ([]Summary, int64, error) {
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)
	posts, total, err := s.posts.List(ctx, domain.ListFilter{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		s.logger.Errorw("post listing failed", "error", err)
		return nil, 0, errors.NewInternalError("failed to list posts")
	}

	summaries := make([]Summary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, toSummary(p))
	}
	return summaries, total, nil
}

// GetByID serves one post, draft or published, with its markdown source
// for the admin editor.
func (s *Service) GetByID(ctx context.Context, id uint) (*Detail, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, domain.ErrNotFound) {
			return nil, errors.NewNotFoundError("post not found")
		}
		s.logger.Errorw("post lookup failed", "error", err, "post_id", id)
		return nil, errors.NewInternalError("failed to load post")
	}

	html, err := s.renderer.ToHTMLSanitized(p.Content)
	if err != nil {
		return nil, errors.NewInternalError("failed to render post")
	}

	return &Detail{
		Summary:   toSummary(p),
		HTML:      html,
		Content:   p.Content,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

// Create authors a new post. The slug is derived from the title and must
// be unique.
func (s *Service) Create(ctx context.Context, req CreateRequest, authorID uint) (*Detail, error) {
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, err
	}

	slug := domain.Slugify(req.Title)
	if slug == "" {
		return nil, errors.NewValidationError("Validation failed", "title must contain at least one letter or digit")
	}

	taken, err := s.posts.ExistsBySlug(ctx, slug)
	if err != nil {
		s.logger.Errorw("slug check failed", "error", err, "slug", slug)
		return nil, errors.NewInternalError("failed to create post")
	}
	if taken {
		return nil, errors.NewConflictError("a post with this title already exists")
	}

	p := &domain.Post{
		Slug:       slug,
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		AuthorID:   authorID,
	}
	if req.Publish {
		p.Publish(time.Now().UTC())
	}

	if err := s.posts.Create(ctx, p); err != nil {
		if stderrors.Is(err, domain.ErrSlugTaken) {
			return nil, errors.NewConflictError("a post with this title already exists")
		}
		s.logger.Errorw("post creation failed", "error", err, "slug", slug)
		return nil, errors.NewInternalError("failed to create post")
	}

	s.logger.Infow("post created", "post_id", p.ID, "slug", p.Slug, "published", p.Published)
	return s.GetByID(ctx, p.ID)
}

// Update edits title, excerpt, content and cover image. The slug is stable:
// retitling never breaks published URLs.
func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest) (*Detail, error) {
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, err
	}

	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, domain.ErrNotFound) {
			return nil, errors.NewNotFoundError("post not found")
		}
		return nil, errors.NewInternalError("failed to load post")
	}

	p.Title = req.Title
	p.Excerpt = req.Excerpt
	p.Content = req.Content
	p.CoverImage = req.CoverImage

	if err := s.posts.Update(ctx, p); err != nil {
		s.logger.Errorw("post update failed", "error", err, "post_id", id)
		return nil, errors.NewInternalError("failed to update post")
	}

	return s.GetByID(ctx, id)
}

// SetPublished flips the publish state.
func (s *Service) SetPublished(ctx context.Context, id uint, published bool) (*Detail, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, domain.ErrNotFound) {
			return nil, errors.NewNotFoundError("post not found")
		}
		return nil, errors.NewInternalError("failed to load post")
	}

	if published {
		p.Publish(time.Now().UTC())
	} else {
		p.Unpublish()
	}

	if err := s.posts.Update(ctx, p); err != nil {
		s.logger.Errorw("post publish toggle failed", "error", err, "post_id", id)
		return nil, errors.NewInternalError("failed to update post")
	}

	s.logger.Infow("post publish state changed", "post_id", id, "published", published)
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		if stderrors.Is(err, domain.ErrNotFound) {
			return errors.NewNotFoundError("post not found")
		}
		s.logger.Errorw("post deletion failed", "error", err, "post_id", id)
		return errors.NewInternalError("failed to delete post")
	}
	s.logger.Infow("post deleted", "post_id", id)
	return nil
}

// PublishedSlugs lists slugs of published posts for sitemap generation.
func (s *Service) PublishedSlugs(ctx context.Context) ([]string, []time.Time, error) {
	posts, _, err := s.posts.List(ctx, domain.ListFilter{
		PublishedOnly: true,
		Page:          1,
		PageSize:      maxPageSize,
	})
	if err != nil {
		return nil, nil, errors.NewInternalError("failed to list posts")
	}

	slugs := make([]string, 0, len(posts))
	updated := make([]time.Time, 0, len(posts))
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
		updated = append(updated, p.UpdatedAt)
	}
	return slugs, updated, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func toSummary(p *domain.Post) Summary {
	return Summary{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Excerpt:     p.Excerpt,
		CoverImage:  p.CoverImage,
		Published:   p.Published,
		PublishedAt: p.PublishedAt,
	}
}
