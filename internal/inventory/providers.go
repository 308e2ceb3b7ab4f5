package inventory

import (
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/pos-inventory/internal/inventory/domain"
	"github.com/tair/pos-inventory/internal/inventory/ledger"
	"github.com/tair/pos-inventory/internal/inventory/repository"
)

// ProvideInventoryRepository provides the traced gorm repository.
func ProvideInventoryRepository(db *gorm.DB) domain.InventoryRepository {
	return repository.NewTracingRepository(repository.NewGormInventoryRepository(db))
}

// ProvideInventoryCache provides the Redis read cache. A nil client
// disables caching.
func ProvideInventoryCache(client *redis.Client) *repository.InventoryCache {
	return repository.NewInventoryCache(client, 30*time.Second)
}

// Wire sets
var LedgerSet = wire.NewSet(
	ProvideInventoryRepository,
	ProvideInventoryCache,
	ledger.New,
)
