package post

import "errors"

var (
	ErrNotFound      = errors.New("post not found")
	ErrSlugTaken     = errors.New("post slug already in use")
	ErrEmptyTitle    = errors.New("post title cannot be empty")
	ErrInvalidFilter = errors.New("invalid list filter")
)
