package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/pos-inventory/internal/inventory/domain"
	"github.com/tair/pos-inventory/pkg/logger"
)

// InventoryCache is a Redis-backed cache for (store, variant) lookups on the
// public read path. The ledger never uses it for precondition reads; those
// always go through the transactional repository. Mutations invalidate the
// pair's entry after commit.
type InventoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewInventoryCache creates a cache. A nil client disables caching; all
// methods become no-ops.
func NewInventoryCache(client *redis.Client, ttl time.Duration) *InventoryCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &InventoryCache{client: client, ttl: ttl}
}

func cacheKey(variantID, storeID string) string {
	return fmt.Sprintf("inventory:%s:%s", storeID, variantID)
}

// Get returns the cached record for the pair, or (nil, false) on miss.
func (c *InventoryCache) Get(ctx context.Context, variantID, storeID string) (*domain.Inventory, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	key := cacheKey(variantID, storeID)
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Logger.Warn().Err(err).Str("cache_key", key).Msg("Inventory cache read failed")
		}
		return nil, false
	}

	var inv domain.Inventory
	if err := json.Unmarshal(payload, &inv); err != nil {
		logger.Logger.Warn().Err(err).Str("cache_key", key).Msg("Inventory cache entry corrupt, dropping")
		c.client.Del(ctx, key)
		return nil, false
	}

	logger.Logger.Debug().Str("cache_key", key).Msg("Inventory cache hit")
	return &inv, true
}

// Set stores the record under its pair key.
func (c *InventoryCache) Set(ctx context.Context, inv *domain.Inventory) {
	if c == nil || c.client == nil || inv == nil {
		return
	}

	payload, err := json.Marshal(inv)
	if err != nil {
		return
	}

	key := cacheKey(inv.VariantID, inv.StoreID)
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("cache_key", key).Msg("Inventory cache write failed")
	}
}

// Invalidate removes the pair's entry. Called after every successful
// mutation so readers never see stale counters past the TTL.
func (c *InventoryCache) Invalidate(ctx context.Context, variantID, storeID string) {
	if c == nil || c.client == nil {
		return
	}

	key := cacheKey(variantID, storeID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("cache_key", key).Msg("Inventory cache invalidation failed")
	}
}
