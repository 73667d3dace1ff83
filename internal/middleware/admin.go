package middleware

import (
	"crypto/subtle"
	"microhub-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware protects the stats endpoints with a shared operator token.
func AdminMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			utils.Forbidden(c, "admin API disabled")
			c.Abort()
			return
		}

		provided := c.GetHeader("X-Admin-Token")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			utils.Unauthorized(c, "invalid admin token")
			c.Abort()
			return
		}

		c.Next()
	}
}
