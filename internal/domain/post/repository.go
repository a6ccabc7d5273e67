package post

import "context"

// ListFilter narrows post listings.
type ListFilter struct {
	PublishedOnly bool
	Page          int
	PageSize      int
}

// Repository defines the interface for post data operations
type Repository interface {
	Create(ctx context.Context, post *Post) error
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, filter ListFilter) ([]*Post, int64, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
