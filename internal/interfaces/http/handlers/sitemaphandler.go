package handlers

import (
	"context"
	"encoding/xml"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lumen/internal/shared/logger"
	"lumen/internal/shared/utils"
)

type publishedSlugLister interface {
	PublishedSlugs(ctx context.Context) ([]string, []time.Time, error)
}

type SitemapHandler struct {
	baseURL string
	posts   publishedSlugLister
	logger  logger.Interface
}

func NewSitemapHandler(baseURL string, posts publishedSlugLister, log logger.Interface) *SitemapHandler {
	return &SitemapHandler{
		baseURL: baseURL,
		posts:   posts,
		logger:  log,
	}
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// staticPaths are the site's fixed pages, always listed ahead of posts.
var staticPaths = []string{"/", "/about", "/projects", "/blog", "/contact"}

// Serve handles GET /sitemap.xml.
func (h *SitemapHandler) Serve(c *gin.Context) {
	set := sitemapURLSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, path := range staticPaths {
		set.URLs = append(set.URLs, sitemapURL{Loc: h.baseURL + path})
	}

	slugs, updated, err := h.posts.PublishedSlugs(c.Request.Context())
	if err != nil {
		h.logger.Errorw("sitemap post listing failed", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to generate sitemap")
		return
	}
	for i, slug := range slugs {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     h.baseURL + "/blog/" + slug,
			LastMod: updated[i].UTC().Format("2006-01-02"),
		})
	}

	c.XML(http.StatusOK, set)
}
