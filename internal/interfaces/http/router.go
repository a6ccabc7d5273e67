// Package http wires handlers, middleware and routes into the gin engine.
package http

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"lumen/internal/application/admin"
	"lumen/internal/application/contact"
	"lumen/internal/application/identity"
	"lumen/internal/application/post"
	"lumen/internal/infrastructure/auth"
	"lumen/internal/infrastructure/config"
	"lumen/internal/infrastructure/email"
	"lumen/internal/infrastructure/ratelimit"
	"lumen/internal/infrastructure/repository"
	"lumen/internal/interfaces/http/handlers"
	"lumen/internal/interfaces/http/middleware"
	"lumen/internal/shared/logger"
	"lumen/internal/shared/services/markdown"
)

// Router represents the HTTP router configuration
type Router struct {
	engine         *gin.Engine
	contactHandler *handlers.ContactHandler
	adminHandler   *handlers.AdminHandler
	authHandler    *handlers.AuthHandler
	postHandler    *handlers.PostHandler
	sitemapHandler *handlers.SitemapHandler
	authMiddleware *middleware.AuthMiddleware
	requireAdmin   gin.HandlerFunc
	ipLimiter      gin.HandlerFunc
	allowedOrigins []string
}

// mailerAdapter bridges the email manager to the contact service's
// delivery port.
type mailerAdapter struct {
	manager *email.Manager
}

func (a *mailerAdapter) IsConfigured() bool {
	return a.manager.IsConfigured()
}

func (a *mailerAdapter) Deliver(msg contact.Message) error {
	return a.manager.Deliver(email.ContactMessage{
		FromName:  msg.FromName,
		FromEmail: msg.FromEmail,
		Subject:   msg.Subject,
		Message:   msg.Body,
	})
}

// NewRouter builds the full application router. redisClient may be nil;
// Redis-backed limiters are only used when configured and available.
func NewRouter(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log logger.Interface) (*Router, error) {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log.Named("http")))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	postRepo := repository.NewPostRepository(db)

	// Infrastructure services
	jwtService := auth.NewJWTService(
		cfg.Auth.JWT.Secret,
		cfg.Auth.JWT.AccessExpMinutes,
		cfg.Auth.JWT.RefreshExpDays,
	)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	emailManager := email.NewManager(&cfg.Email, &cfg.Contact, log.Named("email"))

	contactLimiter, err := newContactLimiter(cfg, redisClient)
	if err != nil {
		return nil, fmt.Errorf("failed to build contact rate limiter: %w", err)
	}
	ipLimiter, err := newIPLimiter(cfg, redisClient)
	if err != nil {
		return nil, fmt.Errorf("failed to build ip rate limiter: %w", err)
	}

	// Application services
	contactService := contact.NewService(contactLimiter, &mailerAdapter{manager: emailManager}, log.Named("contact"))
	adminVerifier := admin.NewVerifier(jwtService, userRepo, roleRepo, log.Named("admin"))
	identityService := identity.NewService(userRepo, roleRepo, hasher, jwtService, log.Named("identity"))
	postService := post.NewService(postRepo, markdown.NewService(), log.Named("post"))

	return &Router{
		engine:         engine,
		contactHandler: handlers.NewContactHandler(contactService, log.Named("http")),
		adminHandler:   handlers.NewAdminHandler(adminVerifier, log.Named("http")),
		authHandler:    handlers.NewAuthHandler(identityService, log.Named("http")),
		postHandler:    handlers.NewPostHandler(postService, log.Named("http")),
		sitemapHandler: handlers.NewSitemapHandler(cfg.Server.BaseURL, postService, log.Named("http")),
		authMiddleware: middleware.NewAuthMiddleware(jwtService, log.Named("auth")),
		requireAdmin:   middleware.RequireAdmin(adminVerifier),
		ipLimiter:      middleware.IPRateLimit(ipLimiter, log.Named("ratelimit")),
		allowedOrigins: cfg.Server.AllowedOrigins,
	}, nil
}

// newContactLimiter picks the contact-form limiter backend: Redis when the
// deployment shares state across instances, in-process memory otherwise.
func newContactLimiter(cfg *config.Config, redisClient *redis.Client) (ratelimit.Limiter, error) {
	window := time.Duration(cfg.Contact.WindowSeconds) * time.Second
	if cfg.Contact.UseSharedLimiter && redisClient != nil {
		return ratelimit.NewRedisLimiter(redisClient, cfg.Contact.MaxRequests, window)
	}
	return ratelimit.NewMemoryLimiter(cfg.Contact.MaxRequests, window)
}

func newIPLimiter(cfg *config.Config, redisClient *redis.Client) (ratelimit.Limiter, error) {
	window := time.Duration(cfg.RateLimit.IPWindowSeconds) * time.Second
	if redisClient != nil {
		return ratelimit.NewRedisLimiter(redisClient, cfg.RateLimit.IPLimit, window)
	}
	return ratelimit.NewMemoryLimiter(cfg.RateLimit.IPLimit, window)
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.engine.GET("/sitemap.xml", r.sitemapHandler.Serve)

	api := r.engine.Group("/api")
	api.Use(r.ipLimiter)
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", r.authHandler.Login)
			authRoutes.POST("/refresh", r.authHandler.Refresh)
			authRoutes.POST("/logout", r.authHandler.Logout)
		}

		api.POST("/contact", r.authMiddleware.OptionalAuth(), r.contactHandler.Submit)

		api.GET("/posts", r.postHandler.ListPublished)
		api.GET("/posts/:slug", r.postHandler.GetBySlug)

		adminRoutes := api.Group("/admin")
		{
			// Verify maps its own decisions to statuses, so it sits outside
			// the admin gate.
			adminRoutes.GET("/verify", r.adminHandler.Verify)

			authoring := adminRoutes.Group("/posts")
			authoring.Use(r.authMiddleware.RequireAuth(), r.requireAdmin)
			{
				authoring.GET("", r.postHandler.ListAll)
				authoring.POST("", r.postHandler.Create)
				authoring.GET("/:id", r.postHandler.GetByID)
				authoring.PUT("/:id", r.postHandler.Update)
				authoring.PATCH("/:id/publish", r.postHandler.SetPublished)
				authoring.DELETE("/:id", r.postHandler.Delete)
			}
		}
	}
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
