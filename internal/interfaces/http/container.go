package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/autocrm/autocrm/internal/application/crm"
	"github.com/autocrm/autocrm/internal/infrastructure/backend"
	"github.com/autocrm/autocrm/internal/infrastructure/config"
	"github.com/autocrm/autocrm/internal/infrastructure/permission"
	"github.com/autocrm/autocrm/internal/infrastructure/ratelimit"
	"github.com/autocrm/autocrm/internal/interfaces/http/middleware"
	"github.com/autocrm/autocrm/internal/shared/logger"
	"github.com/autocrm/autocrm/internal/shared/services/markdown"
)

// Container holds all infrastructure components, repositories, services,
// handlers and middlewares, wired together once at startup.
type Container struct {
	// Core infrastructure
	engine  *gin.Engine
	db      *gorm.DB
	cfg     *config.Config
	log     logger.Interface
	redis   *redis.Client
	version string

	// Repositories
	repos *repositories

	// Backend clients
	authClient    *backend.AuthClient
	storageClient *backend.StorageClient
	tokenVerifier *backend.TokenVerifier

	// Services
	crmService *crm.Service
	enforcer   *permission.Enforcer
	markdown   markdown.MarkdownService

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter
}

// NewContainer creates a new Container with all dependencies wired together.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface, version string) (*Container, error) {
	c := &Container{
		engine:  gin.New(),
		db:      db,
		cfg:     cfg,
		log:     log,
		version: version,
	}

	c.initRepositories()
	if err := c.initServices(); err != nil {
		return nil, err
	}
	if err := c.initRateLimiter(); err != nil {
		return nil, err
	}
	c.initHandlers()

	return c, nil
}

// initRateLimiter shares counters through Redis when an address is
// configured and keeps them in process memory otherwise.
func (c *Container) initRateLimiter() error {
	limits := ratelimit.Limits{
		PerMinute: c.cfg.RateLimit.AuthPerMinute,
		PerHour:   c.cfg.RateLimit.AuthPerHour,
	}

	if c.cfg.RateLimit.RedisAddr == "" {
		c.rateLimiter = middleware.NewRateLimiter(ratelimit.NewMemoryRateLimiter(), limits, c.log.Named("ratelimit"))
		return nil
	}

	c.redis = redis.NewClient(&redis.Options{
		Addr:     c.cfg.RateLimit.RedisAddr,
		Password: c.cfg.RateLimit.RedisPassword,
		DB:       c.cfg.RateLimit.RedisDB,
	})
	if err := c.redis.Ping(context.Background()).Err(); err != nil {
		_ = c.redis.Close()
		c.redis = nil
		return fmt.Errorf("failed to connect to redis at %s: %w", c.cfg.RateLimit.RedisAddr, err)
	}
	c.log.Infow("rate limiter using redis", "addr", c.cfg.RateLimit.RedisAddr)
	c.rateLimiter = middleware.NewRateLimiter(ratelimit.NewRedisRateLimiter(c.redis), limits, c.log.Named("ratelimit"))
	return nil
}

// Service exposes the façade for commands that run beside the server.
func (c *Container) Service() *crm.Service {
	return c.crmService
}

// Shutdown releases connections the container opened itself.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
