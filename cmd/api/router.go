package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"engagement-backend/internal/shared/middleware"
	"engagement-backend/pkg/cache"
	"engagement-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.HTTP.CORSOrigins),
		middleware.ClientOriginMiddleware(),
		c.Metrics.HTTP.Middleware(),
	)

	router.GET("/health", healthCheckHandler(c))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupReviewRoutes(v1, c)
		setupPostRoutes(v1, c)
		setupOwnerRoutes(v1, c)
	}

	return router
}

// ========================================
// REVIEW ROUTES (anonymous)
// ========================================
func setupReviewRoutes(v1 *gin.RouterGroup, c *container.Container) {
	reviews := v1.Group("/profiles/:profile_id/reviews")
	{
		reviews.GET("", c.ReviewHandler.ListPublished)
		reviews.POST("", c.Throttle.Middleware(), c.ReviewHandler.SubmitReview)
	}
}

// ========================================
// POST ROUTES (anonymous likes + comments)
// ========================================
func setupPostRoutes(v1 *gin.RouterGroup, c *container.Container) {
	posts := v1.Group("/posts/:post_id")
	{
		posts.GET("/likes", c.PostHandler.GetLikeState)
		posts.POST("/likes/toggle", c.Throttle.Middleware(), c.PostHandler.ToggleLike)

		posts.GET("/comments", c.PostHandler.ListComments)
		posts.POST("/comments", c.Throttle.Middleware(), c.PostHandler.AddComment)
	}
}

// ========================================
// OWNER ROUTES (moderation, JWT required)
// ========================================
func setupOwnerRoutes(v1 *gin.RouterGroup, c *container.Container) {
	owner := v1.Group("/owner")
	owner.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		owner.GET("/profiles/:profile_id/reviews", c.ModerationHandler.ListProfileReviews)
		owner.PATCH("/reviews/:id/publish", c.ModerationHandler.SetPublished)
		owner.DELETE("/reviews/:id", c.ModerationHandler.DeleteReview)
		owner.DELETE("/comments/:id", c.ModerationHandler.DeleteComment)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		if appCtx.Store == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Store.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis
		redisStatus := "disabled"
		if _, noop := appCtx.Cache.(cache.Noop); noop && appCtx.Config.Redis.Enabled {
			redisStatus = "unreachable"
		} else if !noop && appCtx.Cache != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			redisStatus = "ok"
			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"storage":  appCtx.Config.Storage.Driver,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
