package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// AnonymousIDHeader carries the client-generated identity token when it is
// not part of the request body.
const AnonymousIDHeader = "X-Anonymous-ID"

// AnonymousID returns the first non-empty candidate, then the header.
// The token is a correlation key only and is never trusted for authorization.
func AnonymousID(c *gin.Context, candidates ...string) string {
	for _, candidate := range candidates {
		if v := strings.TrimSpace(candidate); v != "" {
			return v
		}
	}
	return strings.TrimSpace(c.GetHeader(AnonymousIDHeader))
}
