package kafka

import "time"

// StockAdjustedEvent mirrors one committed adjustment record so downstream
// lanes (reporting, store sync) can follow the movement stream without
// reading the ledger's tables.
type StockAdjustedEvent struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	TenantID       string    `json:"tenant_id"`
	StoreID        string    `json:"store_id"`
	VariantID      string    `json:"variant_id"`
	AdjustmentID   string    `json:"adjustment_id"`
	AdjustmentType string    `json:"adjustment_type"`
	QuantityChange int       `json:"quantity_change"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	Reason         string    `json:"reason"`
	ReferenceType  string    `json:"reference_type"`
	ReferenceID    string    `json:"reference_id"`
	AdjustedBy     string    `json:"adjusted_by"`
	AdjustedAt     time.Time `json:"adjusted_at"`
	Timestamp      time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeStockAdjusted = "stock.adjusted"
)

// Kafka topics
const (
	TopicStockAdjusted = "stock-adjusted"
)
