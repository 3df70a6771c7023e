package catalog

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"pqcguard/internal/domain/models"
	"pqcguard/internal/infrastructure/cache"
	"pqcguard/pkg/logger"
)

// CachedCatalog decorates a Catalog with a redis read-through cache. Cache
// failures fall through to the inner catalog; only the inner catalog's
// answer is authoritative.
type CachedCatalog struct {
	inner  Catalog
	cache  *cache.RedisCache
	ttl    time.Duration
	logger *logger.Logger
}

// NewCached wraps inner with a redis cache.
func NewCached(inner Catalog, redisCache *cache.RedisCache, ttl time.Duration, log *logger.Logger) *CachedCatalog {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &CachedCatalog{
		inner:  inner,
		cache:  redisCache,
		ttl:    ttl,
		logger: log.WithComponent("catalog-cache"),
	}
}

// Lookup returns the control from cache when present, otherwise from the
// inner catalog, populating the cache on the way out.
func (c *CachedCatalog) Lookup(ctx context.Context, controlID string) (models.CatalogControl, error) {
	var cached models.CatalogControl
	err := c.cache.GetCachedControl(ctx, controlID, &cached)
	if err == nil {
		return cached, nil
	}
	if err != redis.Nil {
		c.logger.Warn().Err(err).Str("control_id", controlID).Msg("cache read failed")
	}

	control, err := c.inner.Lookup(ctx, controlID)
	if err != nil {
		return models.CatalogControl{}, err
	}

	if err := c.cache.CacheControl(ctx, controlID, control, c.ttl); err != nil {
		c.logger.Warn().Err(err).Str("control_id", controlID).Msg("cache write failed")
	}
	return control, nil
}

// List delegates to the inner catalog.
func (c *CachedCatalog) List(ctx context.Context) ([]models.CatalogControl, error) {
	var cached []models.CatalogControl
	err := c.cache.GetJSON(ctx, cache.KeyCatalogList, &cached)
	if err == nil {
		return cached, nil
	}

	controls, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.cache.SetJSON(ctx, cache.KeyCatalogList, controls, c.ttl); err != nil {
		c.logger.Warn().Err(err).Msg("cache write failed")
	}
	return controls, nil
}
