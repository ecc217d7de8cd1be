package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/staypulse/pricingservice/internal/auth"
	"github.com/staypulse/pricingservice/internal/domain"
	"github.com/staypulse/pricingservice/internal/log"
)

// Auth validates the Authorization header against the configured validator.
func Auth(validator auth.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := validator.Validate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			log.Warn(c.Request.Context(), "Rejected unauthenticated request",
				zap.String("path", c.FullPath()),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    domain.ErrCodeUnauthorized,
				"message": "invalid or missing credentials",
			})
			return
		}
		c.Set("subject", subject)
		c.Next()
	}
}
