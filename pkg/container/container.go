package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"engagement-backend/internal/config"
	infraCache "engagement-backend/internal/infrastructure/cache"
	"engagement-backend/internal/infrastructure/database"
	"engagement-backend/internal/metrics"
	"engagement-backend/internal/shared/middleware"
	"engagement-backend/pkg/cache"
	"engagement-backend/pkg/jwt"
	"engagement-backend/pkg/logger"

	moderationHandler "engagement-backend/internal/domains/moderation/handler"
	moderationService "engagement-backend/internal/domains/moderation/service"
	postHandler "engagement-backend/internal/domains/post/handler"
	postRepo "engagement-backend/internal/domains/post/repository"
	postService "engagement-backend/internal/domains/post/service"
	profileRepo "engagement-backend/internal/domains/profile/repository"
	"engagement-backend/internal/domains/review/guard"
	reviewHandler "engagement-backend/internal/domains/review/handler"
	reviewRepo "engagement-backend/internal/domains/review/repository"
	reviewService "engagement-backend/internal/domains/review/service"
)

// Store is the part of a database handle the container manages.
type Store interface {
	HealthCheck(ctx context.Context) error
	Close() error
}

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Order of construction: config → infrastructure → repositories → services → handlers.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config     *config.Config
	Store      Store       // PostgresDB or SQLiteDB, per DB_DRIVER
	Cache      cache.Cache // Redis, or Noop when disabled/unreachable
	JWTManager *jwt.Manager
	Clock      clockwork.Clock
	Registry   *prometheus.Registry
	Metrics    *metrics.Metrics
	Throttle   *middleware.Throttle

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================

	ProfileRepo profileRepo.Repository
	ReviewRepo  reviewRepo.ReviewRepository
	LikeRepo    postRepo.LikeRepository
	CommentRepo postRepo.CommentRepository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================

	ReviewGuard       *guard.Guard
	ReviewService     reviewService.ServiceInterface
	PostService       postService.ServiceInterface
	ModerationService moderationService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================

	ReviewHandler     *reviewHandler.ReviewHandler
	PostHandler       *postHandler.PostHandler
	ModerationHandler *moderationHandler.ModerationHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer loads configuration from the environment and builds the
// dependency graph.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	return Build(cfg)
}

// Build wires every layer from an already loaded config.
func Build(cfg *config.Config) (*Container, error) {
	c := &Container{
		Config:     cfg,
		Clock:      clockwork.NewRealClock(),
		JWTManager: jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute),
		Throttle:   middleware.NewThrottle(cfg.HTTP.ThrottleRPS, cfg.HTTP.ThrottleBurst),
		Registry:   prometheus.NewRegistry(),
	}

	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.Metrics = metrics.New(c.Registry)

	// ========================================
	// STEP 1: STORAGE + REPOSITORIES
	// ========================================
	if err := c.initStorage(); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 2: CACHE
	// ========================================
	c.initCache()

	// ========================================
	// STEP 3: SERVICES
	// ========================================
	c.initServices()

	// ========================================
	// STEP 4: HANDLERS
	// ========================================
	c.initHandlers()

	log.Info().Str("driver", cfg.Storage.Driver).Msg("DI container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initStorage() error {
	switch c.Config.Storage.Driver {
	case "sqlite":
		db, err := database.OpenSQLite(c.Config.Storage.SQLitePath)
		if err != nil {
			return err
		}
		c.Store = db

		models := append(profileRepo.Models(), reviewRepo.Models()...)
		models = append(models, postRepo.Models()...)
		if err := db.AutoMigrate(models...); err != nil {
			return err
		}

		c.ProfileRepo = profileRepo.NewGormRepository(db.DB)
		c.ReviewRepo = reviewRepo.NewGormRepository(db.DB)
		c.LikeRepo = postRepo.NewGormLikeRepository(db.DB)
		c.CommentRepo = postRepo.NewGormCommentRepository(db.DB)

	default:
		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return fmt.Errorf("failed to load database config: %w", err)
		}

		db := database.NewPostgresDB(dbConfig)

		// Connect với timeout 30s
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.Store = db

		if err := db.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database health check failed: %w", err)
		}

		c.ProfileRepo = profileRepo.NewPostgresRepository(db.Pool)
		c.ReviewRepo = reviewRepo.NewPostgresRepository(db.Pool)
		c.LikeRepo = postRepo.NewPostgresLikeRepository(db.Pool)
		c.CommentRepo = postRepo.NewPostgresCommentRepository(db.Pool)
	}

	return nil
}

// initCache connects Redis when enabled. Redis failure is not critical:
// the public listing is then served uncached.
func (c *Container) initCache() {
	c.Cache = cache.Noop{}
	if !c.Config.Redis.Enabled {
		log.Info().Msg("Redis disabled, review listing is not cached")
		return
	}

	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Str("host", c.Config.Redis.Host).Msg("Redis connection failed (non-critical)")
		return
	}

	c.Cache = redisCache
	log.Info().Str("host", c.Config.Redis.Host).Msg("Redis connected")
}

func (c *Container) initServices() {
	engagement := c.Metrics.Engagement

	c.ReviewGuard = guard.New(c.ReviewRepo, c.Config.Abuse.FingerprintSecret, c.Clock)

	c.ReviewService = reviewService.NewReviewService(
		c.ReviewRepo,
		c.ProfileRepo,
		c.ReviewGuard,
		c.Cache,
		c.Config.Cache.ReviewTTL,
		c.Clock,
		engagement,
	)

	c.PostService = postService.NewPostService(
		c.LikeRepo,
		c.CommentRepo,
		c.ProfileRepo,
		c.Clock,
		engagement,
	)

	c.ModerationService = moderationService.NewModerationService(
		c.ReviewRepo,
		c.CommentRepo,
		c.ProfileRepo,
		c.Cache,
		c.Clock,
		engagement,
	)
}

func (c *Container) initHandlers() {
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
	c.ModerationHandler = moderationHandler.NewModerationHandler(c.ModerationService)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		} else {
			log.Info().Msg("Database connections closed")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		} else {
			log.Info().Msg("Redis connections closed")
		}
	}
}
