package domain

import "time"

// Adjustment types: the closed set of reasons a counter may move.
const (
	AdjustmentTypeSale        = "SALE"
	AdjustmentTypeReturn      = "RETURN"
	AdjustmentTypeTransferIn  = "TRANSFER_IN"
	AdjustmentTypeTransferOut = "TRANSFER_OUT"
	AdjustmentTypePurchase    = "PURCHASE"
	AdjustmentTypeManualCount = "MANUAL_COUNT"
	AdjustmentTypeShrinkage   = "SHRINKAGE"
	AdjustmentTypeDamaged     = "DAMAGED"
	AdjustmentTypeRelease     = "RELEASE"
	AdjustmentTypeOther       = "OTHER"
)

// Reference types: the business event that triggered a movement.
const (
	ReferenceTypeOrder       = "ORDER"
	ReferenceTypeOrderReturn = "ORDER_RETURN"
	ReferenceTypeManual      = "MANUAL"
)

// InventoryAdjustment is one immutable entry of the stock audit trail.
// Records are append-only: no update or delete path exists. Replaying all
// records for a (store, variant) pair in created_at order and summing
// QuantityChange reproduces the pair's current quantityOnHand.
type InventoryAdjustment struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	TenantID       string    `json:"tenant_id" gorm:"index"`
	StoreID        string    `json:"store_id" gorm:"not null;index:idx_adj_store_variant"`
	VariantID      string    `json:"variant_id" gorm:"not null;index:idx_adj_store_variant"`
	AdjustmentType string    `json:"adjustment_type" gorm:"not null"`
	QuantityChange int       `json:"quantity_change" gorm:"not null"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	UnitCost       *float64  `json:"unit_cost,omitempty" gorm:"type:decimal(12,2)"`
	TotalCost      *float64  `json:"total_cost,omitempty" gorm:"type:decimal(12,2)"`
	Reason         string    `json:"reason" gorm:"not null"`
	ReferenceType  string    `json:"reference_type"`
	ReferenceID    string    `json:"reference_id" gorm:"index"`
	AdjustedBy     string    `json:"adjusted_by"`
	AdjustedAt     time.Time `json:"adjusted_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (InventoryAdjustment) TableName() string {
	return "inventory_adjustments"
}
