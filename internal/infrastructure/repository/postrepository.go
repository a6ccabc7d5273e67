package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lumen/internal/domain/post"
	"lumen/internal/infrastructure/persistence/models"
)

type PostRepositoryImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) post.Repository {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, p *post.Post) error {
	model := toPostModel(p)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, p *post.Post) error {
	result := r.db.WithContext(ctx).Model(&models.PostModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"slug":         p.Slug,
			"title":        p.Title,
			"excerpt":      p.Excerpt,
			"content":      p.Content,
			"cover_image":  p.CoverImage,
			"published":    p.Published,
			"published_at": p.PublishedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return post.ErrNotFound
	}
	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.PostModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return post.ErrNotFound
	}
	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, id uint) (*post.Post, error) {
	var model models.PostModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, post.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return toPostEntity(&model), nil
}

func (r *PostRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*post.Post, error) {
	var model models.PostModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, post.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}
	return toPostEntity(&model), nil
}

func (r *PostRepositoryImpl) List(ctx context.Context, filter post.ListFilter) ([]*post.Post, int64, error) {
	if filter.Page < 1 || filter.PageSize < 1 {
		return nil, 0, post.ErrInvalidFilter
	}

	query := r.db.WithContext(ctx).Model(&models.PostModel{})
	if filter.PublishedOnly {
		query = query.Where("published = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	var modelList []models.PostModel
	err := query.
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]*post.Post, 0, len(modelList))
	for i := range modelList {
		posts = append(posts, toPostEntity(&modelList[i]))
	}
	return posts, total, nil
}

func (r *PostRepositoryImpl) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostModel{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return count > 0, nil
}

func toPostModel(p *post.Post) *models.PostModel {
	return &models.PostModel{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Excerpt:     p.Excerpt,
		Content:     p.Content,
		CoverImage:  p.CoverImage,
		Published:   p.Published,
		PublishedAt: p.PublishedAt,
		AuthorID:    p.AuthorID,
	}
}

func toPostEntity(m *models.PostModel) *post.Post {
	return &post.Post{
		ID:          m.ID,
		Slug:        m.Slug,
		Title:       m.Title,
		Excerpt:     m.Excerpt,
		Content:     m.Content,
		CoverImage:  m.CoverImage,
		Published:   m.Published,
		PublishedAt: m.PublishedAt,
		AuthorID:    m.AuthorID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
