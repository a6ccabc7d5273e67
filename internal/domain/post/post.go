// Package post holds the blog-post domain model. Posts are authored in
// markdown by an admin and served to the public as sanitized HTML.
package post

import (
	"regexp"
	"strings"
	"time"
)

type Post struct {
	ID          uint
	Slug        string
	Title       string
	Excerpt     string
	Content     string // markdown source
	CoverImage  string
	Published   bool
	PublishedAt *time.Time
	AuthorID    uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Publish marks the post as published, stamping PublishedAt on the first
// transition only.
func (p *Post) Publish(now time.Time) {
	if !p.Published && p.PublishedAt == nil {
		p.PublishedAt = &now
	}
	p.Published = true
}

// Unpublish hides the post without clearing its original publish time.
func (p *Post) Unpublish() {
	p.Published = false
}

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)
	slugDashRuns     = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL slug from a title: lowercase, alphanumeric runs
// joined by single hyphens.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugInvalidChars.ReplaceAllString(s, "-")
	s = slugDashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
