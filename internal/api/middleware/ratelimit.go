package middleware

import (
	"context"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pop-search/internal/api/errors"
	"pop-search/internal/app/ratelimit"
)

// Admitter decides whether a client may call a route right now.
type Admitter interface {
	Admit(ctx context.Context, clientID, route string) (ratelimit.Decision, error)
}

// RejectionRecorder is told about every rejected request.
type RejectionRecorder interface {
	RecordRateLimited(route string)
}

// RateLimit admits requests to route per client IP. If the counter store is
// unreachable the request is let through and the failure logged.
func RateLimit(limiter Admitter, route string, recorder RejectionRecorder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.ClientIP()

		decision, err := limiter.Admit(c.Request.Context(), clientID, route)
		if err != nil {
			logger.Error("Rate limiter unavailable, admitting request",
				zap.String("route", route),
				zap.String("client_ip", clientID),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if decision.Limit > 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		}

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Info("Rate limit exceeded",
				zap.String("route", route),
				zap.String("client_ip", clientID),
				zap.String("request_id", c.GetString("request_id")),
				zap.Int("retry_after_s", retryAfter),
			)
			if recorder != nil {
				recorder.RecordRateLimited(route)
			}
			HandleError(c, errors.NewTooManyRequestsError("Rate limit exceeded"))
			return
		}

		c.Next()
	}
}
