package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"lumen/internal/application/admin"
	"lumen/internal/shared/utils"
)

type adminVerifier interface {
	VerifyAdmin(ctx context.Context, token string) admin.Result
}

// RequireAdmin gates a route group on the authoritative role store. The
// role claim inside the token is never enough; every request re-checks
// the store and denies on any failure.
func RequireAdmin(verifier adminVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := verifier.VerifyAdmin(c.Request.Context(), bearerToken(c))

		switch {
		case result.Decision == admin.DecisionCompleted && result.IsAdmin:
			c.Next()
		case result.Decision == admin.DecisionCompleted:
			utils.ErrorResponse(c, http.StatusForbidden, "admin access required")
			c.Abort()
		case result.Decision == admin.DecisionIdentityFailed:
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or missing credentials")
			c.Abort()
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "authorization check failed")
			c.Abort()
		}
	}
}
