package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"engagement-backend/internal/shared/response"
	"engagement-backend/pkg/jwt"
)

const ContextKeyUserID = "user_id"

// AuthMiddleware resolves the owner session from a bearer token.
// The engine only compares identities; verifying credentials happens here.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// 2. Extract token từ "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify và parse JWT
		claims, err := manager.ValidateAccessToken(parts[1])
		if err != nil {
			log.Debug().Err(err).Str("request_id", c.GetString(ContextKeyRequestID)).Msg("Rejected owner token")
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		// 4. Extract userID từ claims
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "invalid user ID in token")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID returns the authenticated owner, or uuid.Nil for anonymous callers.
func GetUserID(c *gin.Context) uuid.UUID {
	value, exists := c.Get(ContextKeyUserID)
	if !exists {
		return uuid.Nil
	}

	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}
