package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tair/pos-inventory/internal/inventory/domain"
)

type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Inventory{}, &domain.InventoryAdjustment{})
}

// FindByVariantAndStore returns (nil, nil) when no record exists for the
// pair: callers treat that as "zero stock, not provisioned", not an error.
func (r *GormInventoryRepository) FindByVariantAndStore(ctx context.Context, variantID, storeID string) (*domain.Inventory, error) {
	var inv domain.Inventory
	err := r.db.WithContext(ctx).
		Where("variant_id = ? AND store_id = ?", variantID, storeID).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "find inventory", Err: err}
	}
	return &inv, nil
}

func (r *GormInventoryRepository) Create(ctx context.Context, inv *domain.Inventory) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(inv).Error; err != nil {
		return &domain.PersistenceError{Op: "create inventory", Err: err}
	}
	return nil
}

// UpdateQuantities applies a partial counter update; nil fields are left
// untouched. updated_at always moves to "now".
func (r *GormInventoryRepository) UpdateQuantities(ctx context.Context, inventoryID string, update domain.QuantityUpdate) error {
	values := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if update.QuantityOnHand != nil {
		values["quantity_on_hand"] = *update.QuantityOnHand
	}
	if update.QuantityCommitted != nil {
		values["quantity_committed"] = *update.QuantityCommitted
	}
	if update.QuantityAvailable != nil {
		values["quantity_available"] = *update.QuantityAvailable
	}
	if update.TotalValue != nil {
		values["total_value"] = *update.TotalValue
	}

	err := r.db.WithContext(ctx).
		Model(&domain.Inventory{}).
		Where("id = ?", inventoryID).
		Updates(values).Error
	if err != nil {
		return &domain.PersistenceError{Op: "update inventory quantities", Err: err}
	}
	return nil
}

// CreateAdjustment appends one audit record. The adjustment log is
// append-only: there is no update or delete counterpart.
func (r *GormInventoryRepository) CreateAdjustment(ctx context.Context, adj *domain.InventoryAdjustment) error {
	if adj.ID == "" {
		adj.ID = uuid.New().String()
	}
	now := time.Now()
	if adj.AdjustedAt.IsZero() {
		adj.AdjustedAt = now
	}
	adj.CreatedAt = now
	adj.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(adj).Error; err != nil {
		return &domain.PersistenceError{Op: "create adjustment", Err: err}
	}
	return nil
}

func (r *GormInventoryRepository) ListAdjustments(ctx context.Context, variantID, storeID string, limit, offset int) ([]domain.InventoryAdjustment, error) {
	var adjustments []domain.InventoryAdjustment
	err := r.db.WithContext(ctx).
		Where("variant_id = ? AND store_id = ?", variantID, storeID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&adjustments).Error
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list adjustments", Err: err}
	}
	return adjustments, nil
}

// InTransaction runs fn against a repository bound to one database
// transaction. Any error from fn rolls the whole unit of work back, so a
// counter update and its audit append land together or not at all.
func (r *GormInventoryRepository) InTransaction(ctx context.Context, fn func(repo domain.InventoryRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormInventoryRepository(tx))
	})
}
