package post

import "time"

type CreateRequest struct {
	Title      string `json:"title" validate:"required,min=3,max=200"`
	Excerpt    string `json:"excerpt" validate:"max=500"`
	Content    string `json:"content" validate:"required"`
	CoverImage string `json:"cover_image" validate:"omitempty,url"`
	Publish    bool   `json:"publish"`
}

type UpdateRequest struct {
	Title      string `json:"title" validate:"required,min=3,max=200"`
	Excerpt    string `json:"excerpt" validate:"max=500"`
	Content    string `json:"content" validate:"required"`
	CoverImage string `json:"cover_image" validate:"omitempty,url"`
}

type ListRequest struct {
	Page     int `form:"page" validate:"omitempty,min=1"`
	PageSize int `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// Summary is the listing projection; it carries no rendered content.
type Summary struct {
	ID          uint       `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	CoverImage  string     `json:"cover_image,omitempty"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Detail adds the rendered HTML body for single-post reads.
type Detail struct {
	Summary
	HTML      string    `json:"html"`
	Content   string    `json:"content,omitempty"` // markdown source, admin reads only
	UpdatedAt time.Time `json:"updated_at"`
}
