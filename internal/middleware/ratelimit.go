package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/placemate/placemate/internal/app/models/dto"
)

// RateLimiter throttles requests per client IP using a Redis counter
// windowed per second. When Redis is unavailable the limiter fails open.
type RateLimiter struct {
	client *redis.Client
	rate   int
	burst  int
	logger zerolog.Logger
}

// NewRateLimiter creates a new RateLimiter. A nil client disables limiting.
func NewRateLimiter(client *redis.Client, rate, burst int, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		rate:   rate,
		burst:  burst,
		logger: logger,
	}
}

// Limit enforces the per-IP request budget
func (l *RateLimiter) Limit() gin.HandlerFunc {
	if l.client == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), time.Now().Unix())

		count, err := l.client.Incr(ctx, key).Result()
		if err != nil {
			l.logger.Warn().Err(err).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if count == 1 {
			l.client.Expire(ctx, key, 2*time.Second)
		}

		if count > int64(l.rate+l.burst) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponse("Too many requests", dto.ErrorCodeRateLimited, nil))
			return
		}

		c.Next()
	}
}
