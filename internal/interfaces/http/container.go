// Package http wires the application together behind a gin engine.
package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/planwise-io/planwise/internal/infrastructure/cache"
	"github.com/planwise-io/planwise/internal/infrastructure/config"
	"github.com/planwise-io/planwise/internal/shared/logger"
)

// Container holds the infrastructure components, repositories, use cases and
// handlers, and wires everything together. It owns the entitlement cache
// connection and releases it on Shutdown.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface

	entitlementCache *cache.EntitlementCache

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers
}

// NewContainer builds the full dependency graph. A redis failure disables the
// entitlement cache instead of refusing to start; resolution falls back to
// the database.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) *Container {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if cfg.Redis.Enabled {
		entCache, err := cache.NewEntitlementCache(&cfg.Redis, log)
		if err != nil {
			log.Warnw("entitlement cache unavailable, resolving without cache", "error", err)
		} else {
			c.entitlementCache = entCache
			log.Infow("entitlement cache enabled", "address", cfg.Redis.GetAddr())
		}
	}

	c.initRepositories()
	c.initUseCases()
	c.initHandlers()

	return c
}

// Engine returns the underlying gin engine.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown releases resources owned by the container.
func (c *Container) Shutdown(ctx context.Context) error {
	if c.entitlementCache != nil {
		if err := c.entitlementCache.Close(); err != nil {
			c.log.Warnw("failed to close entitlement cache", "error", err)
		}
	}
	return nil
}
