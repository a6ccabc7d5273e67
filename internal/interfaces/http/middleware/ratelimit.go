package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumen/internal/infrastructure/ratelimit"
	"lumen/internal/shared/logger"
	"lumen/internal/shared/utils"
)

// IPRateLimit returns a middleware enforcing a per-IP fixed-window limit
// across the routes it wraps. A limiter backend failure lets the request
// through; throttling is protection, not a gate the whole site hangs on.
func IPRateLimit(limiter ratelimit.Limiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := "ip:" + c.ClientIP()

		allowed, err := limiter.Allow(c.Request.Context(), identifier)
		if err != nil {
			log.Errorw("ip rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
