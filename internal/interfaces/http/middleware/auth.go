package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lumen/internal/infrastructure/auth"
	"lumen/internal/shared/logger"
	"lumen/internal/shared/utils"
)

const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		if claims.TokenType != auth.TokenTypeAccess {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid token type")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUserRole, string(claims.Role))

		c.Next()
	}
}

// OptionalAuth sets identity context when a valid token is present and
// passes the request through anonymously otherwise.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err == nil && claims.TokenType == auth.TokenTypeAccess {
			c.Set(ContextKeyUserID, claims.UserID)
			c.Set(ContextKeyUserRole, string(claims.Role))
		}

		c.Next()
	}
}

// UserIDFromContext reads the authenticated user ID; zero means anonymous.
func UserIDFromContext(c *gin.Context) uint {
	if v, exists := c.Get(ContextKeyUserID); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
