package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"hibiscus/pkg/utils"
)

// InquiryRateLimit throttles by client IP. Only requests carrying a JSON
// object are charged; anything else is passed on for the handler to reject.
// Limiter failures let the request through. Handlers behind it must bind
// with ShouldBindBodyWith since the body has already been read.
func InquiryRateLimit(limiter utils.InquiryLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindBodyWith(&body, binding.JSON); err != nil {
			c.Next()
			return
		}

		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			zap.L().Warn("inquiry limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			utils.HandleServiceError(c, utils.ErrRateLimited)
			c.Abort()
			return
		}
		c.Next()
	}
}
