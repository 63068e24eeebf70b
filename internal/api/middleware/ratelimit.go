package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/claim-ledger/internal/api/shared/errors"
	"github.com/feral-file/claim-ledger/internal/logger"
	"github.com/feral-file/claim-ledger/internal/ratelimit"
)

const (
	RETRY_AFTER_HEADER          = "Retry-After"
	RATE_LIMIT_REMAINING_HEADER = "X-RateLimit-Remaining"
)

// RateLimit returns a gin middleware that limits requests per client IP.
// Limiter failures let the request through so reads stay available when Redis is down.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := limiter.Allow(c.Request.Context(), "ip:"+c.ClientIP())
		if err != nil {
			logger.WarnCtx(c.Request.Context(), "Rate limit check failed, allowing request", zap.Error(err))
			c.Next()
			return
		}

		c.Header(RATE_LIMIT_REMAINING_HEADER, strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := max(int(math.Ceil(decision.RetryAfter.Seconds())), 1)
			c.Header(RETRY_AFTER_HEADER, strconv.Itoa(retryAfter))

			apiErr := apierrors.NewRateLimitedError("Too many requests")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apiErr)
			return
		}

		c.Next()
	}
}
