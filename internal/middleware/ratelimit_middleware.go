package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"salon-crm-backend/internal/errors"
	"salon-crm-backend/pkg/redis"
)

// RateLimitMiddleware enforces a fixed-window request limit per client IP,
// counted in Redis. A Redis failure lets the request through; the limiter
// protects against abuse, it must not take the endpoint down with it.
func RateLimitMiddleware(keyPrefix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		key := fmt.Sprintf("ratelimit:%s:%s", keyPrefix, c.ClientIP())
		count, err := redis.CountRequest(c.Request.Context(), key, window)
		if err != nil {
			log.Warn("Rate limit counter unavailable", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
			c.Next()
			return
		}

		if count > int64(limit) {
			log.Warn("Rate limit exceeded", map[string]interface{}{
				"key":   key,
				"count": count,
				"limit": limit,
			})
			errors.TooManyRequests(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
