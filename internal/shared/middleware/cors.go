package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the profile pages (served elsewhere) to call the API.
func CORS(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", AnonymousIDHeader, RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Retry-After", RequestIDHeader},
		AllowCredentials: len(origins) > 0 && origins[0] != "*",
		MaxAge:           12 * time.Hour,
	})
}
