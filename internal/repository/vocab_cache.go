package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/plateful/backend/internal/parser"
)

const (
	ingredientNamesKey = "vocab:ingredients"
	tagNamesKey        = "vocab:tags"
	vocabCacheTTL      = 10 * time.Minute
)

// CachedNameSource is a Redis read-through cache in front of the
// vocabulary listings. The vocabulary changes only on corpus reloads, so
// a short TTL keeps parse requests off the two Pluck queries without a
// separate invalidation path. Cache failures fall through to the
// repository; they never fail a parse.
type CachedNameSource struct {
	src    parser.NameSource
	redis  *redis.Client
	logger *zap.Logger
}

// NewCachedNameSource wraps a NameSource with the Redis cache.
func NewCachedNameSource(src parser.NameSource, client *redis.Client, logger *zap.Logger) *CachedNameSource {
	return &CachedNameSource{src: src, redis: client, logger: logger}
}

// IngredientNames returns the ingredient vocabulary, cached.
func (c *CachedNameSource) IngredientNames(ctx context.Context) ([]string, error) {
	return c.names(ctx, ingredientNamesKey, c.src.IngredientNames)
}

// TagNames returns the tag vocabulary, cached.
func (c *CachedNameSource) TagNames(ctx context.Context) ([]string, error) {
	return c.names(ctx, tagNamesKey, c.src.TagNames)
}

func (c *CachedNameSource) names(ctx context.Context, key string, load func(context.Context) ([]string, error)) ([]string, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var names []string
		if err := json.Unmarshal(data, &names); err == nil {
			return names, nil
		}
		c.logger.Warn("discarding unreadable vocabulary cache entry", zap.String("key", key))
	} else if err != redis.Nil {
		c.logger.Debug("vocabulary cache unavailable", zap.String("key", key), zap.Error(err))
	}

	names, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(names); err == nil {
		if err := c.redis.Set(ctx, key, data, vocabCacheTTL).Err(); err != nil {
			c.logger.Debug("failed to store vocabulary cache entry", zap.String("key", key), zap.Error(err))
		}
	}

	return names, nil
}
