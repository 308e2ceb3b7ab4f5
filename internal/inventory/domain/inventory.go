package domain

import (
	"context"
	"time"
)

// Inventory represents the stock counters for one (store, variant) pair.
// quantityAvailable is stored for read performance but is always recomputed
// as quantityOnHand - quantityCommitted; it is never authored independently.
type Inventory struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	TenantID          string    `json:"tenant_id" gorm:"index"`
	StoreID           string    `json:"store_id" gorm:"not null;uniqueIndex:idx_store_variant"`
	VariantID         string    `json:"variant_id" gorm:"not null;uniqueIndex:idx_store_variant"`
	QuantityOnHand    int       `json:"quantity_on_hand" gorm:"not null;default:0"`
	QuantityCommitted int       `json:"quantity_committed" gorm:"not null;default:0"`
	QuantityAvailable int       `json:"quantity_available" gorm:"not null;default:0"`
	ReorderPoint      *int      `json:"reorder_point,omitempty"`
	MaxStockLevel     *int      `json:"max_stock_level,omitempty"`
	CostPerUnit       *float64  `json:"cost_per_unit,omitempty" gorm:"type:decimal(12,2)"`
	TotalValue        *float64  `json:"total_value,omitempty" gorm:"type:decimal(12,2)"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Inventory) TableName() string {
	return "inventory"
}

// QuantityUpdate carries a partial counter update. Nil fields are left
// untouched by the repository.
type QuantityUpdate struct {
	QuantityOnHand    *int
	QuantityCommitted *int
	QuantityAvailable *int
	TotalValue        *float64
}

// InventoryRepository defines the contract for inventory data access.
// InTransaction hands fn a repository bound to a single unit of work; every
// call made through it commits or rolls back as one atomic step.
type InventoryRepository interface {
	FindByVariantAndStore(ctx context.Context, variantID, storeID string) (*Inventory, error)
	Create(ctx context.Context, inv *Inventory) error
	UpdateQuantities(ctx context.Context, inventoryID string, update QuantityUpdate) error
	CreateAdjustment(ctx context.Context, adj *InventoryAdjustment) error
	ListAdjustments(ctx context.Context, variantID, storeID string, limit, offset int) ([]InventoryAdjustment, error)
	InTransaction(ctx context.Context, fn func(repo InventoryRepository) error) error
}
