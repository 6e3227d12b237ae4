package category

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/MikeMC777/storefront-catalog/internal/logx"
)

const listKey = "storefront:categories:all"

// Store is the subset of the redis client the cache needs.
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Cache is a cache-aside Repository in front of another Repository.
// Redis failures are logged and the call falls through to the source, so
// the catalog keeps working when redis is down.
type Cache struct {
	store Store
	src   Repository
	ttl   time.Duration
	group singleflight.Group
	log   zerolog.Logger
}

func NewCache(store Store, src Repository, ttl time.Duration) *Cache {
	return &Cache{store: store, src: src, ttl: ttl, log: logx.Component("category-cache")}
}

func (c *Cache) List(ctx context.Context) ([]Category, error) {
	data, err := c.store.Get(ctx, listKey).Bytes()
	switch {
	case err == nil:
		var out []Category
		if err := json.Unmarshal(data, &out); err == nil {
			return out, nil
		}
		c.log.Warn().Msg("dropping undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Msg("cache get failed")
	}

	v, err, _ := c.group.Do(listKey, func() (interface{}, error) {
		cats, err := c.src.List(ctx)
		if err != nil {
			return nil, err
		}
		if data, err := json.Marshal(cats); err == nil {
			if err := c.store.Set(ctx, listKey, data, c.ttl).Err(); err != nil {
				c.log.Warn().Err(err).Msg("cache set failed")
			}
		}
		return cats, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Category), nil
}

// Invalidate drops the cached list; the next List reloads from the source.
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.store.Del(ctx, listKey).Err()
}
