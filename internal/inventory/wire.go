//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	httpDelivery "github.com/tair/pos-inventory/internal/inventory/delivery/http"
	"github.com/tair/pos-inventory/internal/inventory/ledger"
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, redisClient *redis.Client, publisher ledger.AdjustmentPublisher) (*httpDelivery.InventoryHandler, error) {
	wire.Build(
		LedgerSet,
		httpDelivery.NewInventoryHandler,
	)
	return nil, nil
}
