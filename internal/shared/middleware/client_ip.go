package middleware

import (
	"github.com/gin-gonic/gin"

	"engagement-backend/internal/shared/utils"
)

const ContextKeyOrigin = "client_origin"

// ClientOriginMiddleware resolves the submitter origin from proxy headers and
// stores it for handlers that feed the abuse guard.
//
// Usage:
//
//	router.Use(middleware.ClientOriginMiddleware())
func ClientOriginMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := utils.ResolveOrigin(
			c.GetHeader("X-Forwarded-For"),
			c.GetHeader("X-Real-IP"),
		)
		c.Set(ContextKeyOrigin, origin)
		c.Next()
	}
}

// GetOrigin returns the resolved origin, falling back to the header chain
// when the middleware did not run.
func GetOrigin(c *gin.Context) string {
	if origin := c.GetString(ContextKeyOrigin); origin != "" {
		return origin
	}
	return utils.ResolveOrigin(c.GetHeader("X-Forwarded-For"), c.GetHeader("X-Real-IP"))
}
