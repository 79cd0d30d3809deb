// Package cache provides a small read-through cache for hot list endpoints.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medimart/marketplace-service/internal/store"
)

const (
	categoriesKey = "categories:all"

	// DefaultListTTL bounds staleness between write invalidations.
	DefaultListTTL = 5 * time.Minute
)

// ErrCacheMiss reports an absent cache entry.
var ErrCacheMiss = errors.New("cache miss")

// Cache wraps the redis client. A nil client degrades to permanent misses so
// the service runs without Redis.
type Cache struct {
	client *redis.Client
}

// New builds a cache around an optional redis client.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// GetCategories returns the cached category list or ErrCacheMiss.
func (c *Cache) GetCategories(ctx context.Context) ([]store.Document, error) {
	if c == nil || c.client == nil {
		return nil, ErrCacheMiss
	}

	raw, err := c.client.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var docs []store.Document
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode cached categories: %w", err)
	}
	return docs, nil
}

// SetCategories stores the category list.
func (c *Cache) SetCategories(ctx context.Context, docs []store.Document) error {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	return c.client.Set(ctx, categoriesKey, raw, DefaultListTTL).Err()
}

// InvalidateCategories drops the cached list after a write.
func (c *Cache) InvalidateCategories(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, categoriesKey).Err()
}
