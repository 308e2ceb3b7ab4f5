package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/pos-inventory/internal/inventory/domain"
	"github.com/tair/pos-inventory/internal/inventory/repository"
	"github.com/tair/pos-inventory/pkg/logger"
)

// AdjustmentPublisher emits a stock-movement event after a mutation commits.
// Publishing is best effort: the adjustment log in the database is the
// source of truth, so a publish failure never fails the operation.
type AdjustmentPublisher interface {
	PublishStockAdjusted(ctx context.Context, adj *domain.InventoryAdjustment) error
}

// Ledger is the single authority over the stock counters of every
// (store, variant) pair. Each mutation validates its precondition, updates
// the counters, and appends exactly one adjustment record, all inside one
// unit of work. Operations on the same pair are serialized; distinct pairs
// run concurrently.
type Ledger struct {
	repo      domain.InventoryRepository
	cache     *repository.InventoryCache
	publisher AdjustmentPublisher
	locks     *pairLocks
}

// New creates a ledger. cache and publisher may be nil.
func New(repo domain.InventoryRepository, cache *repository.InventoryCache, publisher AdjustmentPublisher) *Ledger {
	return &Ledger{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		locks:     newPairLocks(),
	}
}

// ReserveParams identifies a reservation: stock earmarked for an open order
// line without leaving the shelf.
type ReserveParams struct {
	VariantID    string
	StoreID      string
	Quantity     int
	ReferenceID  string
	ActingUserID string
	TenantID     string
	AdjustedAt   time.Time                  // zero means "now"
	UnitOfWork   domain.InventoryRepository // optional external transaction scope
}

// ConsumeParams identifies a fulfillment: committed stock physically leaves.
type ConsumeParams struct {
	VariantID    string
	StoreID      string
	Quantity     int
	ReferenceID  string
	ActingUserID string
	TenantID     string
	AdjustedAt   time.Time
	UnitOfWork   domain.InventoryRepository
}

// ReleaseParams identifies a void: a reservation is undone before fulfillment.
type ReleaseParams struct {
	VariantID    string
	StoreID      string
	Quantity     int
	ReferenceID  string
	ActingUserID string
	TenantID     string
	AdjustedAt   time.Time
	UnitOfWork   domain.InventoryRepository
}

// ReturnParams identifies a physical stock receipt, typically a customer
// return. Reason is optional; a default is generated from the reference.
type ReturnParams struct {
	VariantID     string
	StoreID       string
	Quantity      int
	ReferenceID   string
	ReferenceType string
	ActingUserID  string
	TenantID      string
	Reason        string
	AdjustedAt    time.Time
	UnitOfWork    domain.InventoryRepository
}

// FindByVariantAndStore is the ledger's only query. It returns (nil, nil)
// when the pair has never been provisioned: zero stock, not an error.
func (l *Ledger) FindByVariantAndStore(ctx context.Context, variantID, storeID string) (*domain.Inventory, error) {
	if inv, ok := l.cache.Get(ctx, variantID, storeID); ok {
		return inv, nil
	}

	inv, err := l.repo.FindByVariantAndStore(ctx, variantID, storeID)
	if err != nil {
		return nil, err
	}
	if inv != nil {
		l.cache.Set(ctx, inv)
	}
	return inv, nil
}

// Reserve increases the committed quantity for an open order line. Physical
// stock does not move, so the adjustment records a zero quantity change.
func (l *Ledger) Reserve(ctx context.Context, p ReserveParams) error {
	if p.Quantity <= 0 {
		operationFailures.WithLabelValues("reserve").Inc()
		return &domain.InvalidQuantityError{Quantity: p.Quantity}
	}

	var adj *domain.InventoryAdjustment
	err := l.run(ctx, p.UnitOfWork, p.VariantID, p.StoreID, func(repo domain.InventoryRepository) error {
		item, err := repo.FindByVariantAndStore(ctx, p.VariantID, p.StoreID)
		if err != nil {
			return err
		}
		if item == nil {
			return &domain.NotFoundError{VariantID: p.VariantID, StoreID: p.StoreID}
		}
		if item.QuantityAvailable < p.Quantity {
			return &domain.InsufficientStockError{Available: item.QuantityAvailable, Requested: p.Quantity}
		}

		newCommitted := item.QuantityCommitted + p.Quantity
		newAvailable := item.QuantityOnHand - newCommitted

		update := domain.QuantityUpdate{
			QuantityCommitted: &newCommitted,
			QuantityAvailable: &newAvailable,
		}
		if err := repo.UpdateQuantities(ctx, item.ID, update); err != nil {
			return err
		}

		adj = &domain.InventoryAdjustment{
			TenantID:       p.TenantID,
			StoreID:        p.StoreID,
			VariantID:      p.VariantID,
			AdjustmentType: domain.AdjustmentTypeSale,
			QuantityChange: 0,
			QuantityBefore: item.QuantityOnHand,
			QuantityAfter:  item.QuantityOnHand,
			Reason:         fmt.Sprintf("Stock reserved for order %s", p.ReferenceID),
			ReferenceType:  domain.ReferenceTypeOrder,
			ReferenceID:    p.ReferenceID,
			AdjustedBy:     p.ActingUserID,
			AdjustedAt:     p.AdjustedAt,
		}
		return repo.CreateAdjustment(ctx, adj)
	})
	if err != nil {
		operationFailures.WithLabelValues("reserve").Inc()
		return err
	}

	l.afterCommit(ctx, "reserve", adj)
	return nil
}

// Consume removes committed stock from the shelf when an order is finalized.
func (l *Ledger) Consume(ctx context.Context, p ConsumeParams) error {
	if p.Quantity <= 0 {
		operationFailures.WithLabelValues("consume").Inc()
		return &domain.InvalidQuantityError{Quantity: p.Quantity}
	}

	var adj *domain.InventoryAdjustment
	err := l.run(ctx, p.UnitOfWork, p.VariantID, p.StoreID, func(repo domain.InventoryRepository) error {
		item, err := repo.FindByVariantAndStore(ctx, p.VariantID, p.StoreID)
		if err != nil {
			return err
		}
		if item == nil {
			return &domain.NotFoundError{VariantID: p.VariantID, StoreID: p.StoreID}
		}
		if item.QuantityCommitted < p.Quantity {
			return &domain.InsufficientCommittedStockError{Committed: item.QuantityCommitted, Requested: p.Quantity}
		}

		newOnHand := item.QuantityOnHand - p.Quantity
		newCommitted := item.QuantityCommitted - p.Quantity
		newAvailable := newOnHand - newCommitted

		update := domain.QuantityUpdate{
			QuantityOnHand:    &newOnHand,
			QuantityCommitted: &newCommitted,
			QuantityAvailable: &newAvailable,
			TotalValue:        recomputeTotalValue(item, newOnHand),
		}
		if err := repo.UpdateQuantities(ctx, item.ID, update); err != nil {
			return err
		}

		unitCost, totalCost := movementCost(item, p.Quantity)
		adj = &domain.InventoryAdjustment{
			TenantID:       p.TenantID,
			StoreID:        p.StoreID,
			VariantID:      p.VariantID,
			AdjustmentType: domain.AdjustmentTypeSale,
			QuantityChange: -p.Quantity,
			QuantityBefore: item.QuantityOnHand,
			QuantityAfter:  newOnHand,
			UnitCost:       unitCost,
			TotalCost:      totalCost,
			Reason:         fmt.Sprintf("Stock consumed for order %s", p.ReferenceID),
			ReferenceType:  domain.ReferenceTypeOrder,
			ReferenceID:    p.ReferenceID,
			AdjustedBy:     p.ActingUserID,
			AdjustedAt:     p.AdjustedAt,
		}
		return repo.CreateAdjustment(ctx, adj)
	})
	if err != nil {
		operationFailures.WithLabelValues("consume").Inc()
		return err
	}

	l.afterCommit(ctx, "consume", adj)
	return nil
}

// Release undoes a reservation when an order is voided before fulfillment.
// The inverse of Reserve: physical stock is untouched.
func (l *Ledger) Release(ctx context.Context, p ReleaseParams) error {
	if p.Quantity <= 0 {
		operationFailures.WithLabelValues("release").Inc()
		return &domain.InvalidQuantityError{Quantity: p.Quantity}
	}

	var adj *domain.InventoryAdjustment
	err := l.run(ctx, p.UnitOfWork, p.VariantID, p.StoreID, func(repo domain.InventoryRepository) error {
		item, err := repo.FindByVariantAndStore(ctx, p.VariantID, p.StoreID)
		if err != nil {
			return err
		}
		if item == nil {
			return &domain.NotFoundError{VariantID: p.VariantID, StoreID: p.StoreID}
		}
		if item.QuantityCommitted < p.Quantity {
			return &domain.InsufficientCommittedStockError{Committed: item.QuantityCommitted, Requested: p.Quantity}
		}

		newCommitted := item.QuantityCommitted - p.Quantity
		newAvailable := item.QuantityOnHand - newCommitted

		update := domain.QuantityUpdate{
			QuantityCommitted: &newCommitted,
			QuantityAvailable: &newAvailable,
		}
		if err := repo.UpdateQuantities(ctx, item.ID, update); err != nil {
			return err
		}

		adj = &domain.InventoryAdjustment{
			TenantID:       p.TenantID,
			StoreID:        p.StoreID,
			VariantID:      p.VariantID,
			AdjustmentType: domain.AdjustmentTypeRelease,
			QuantityChange: 0,
			QuantityBefore: item.QuantityOnHand,
			QuantityAfter:  item.QuantityOnHand,
			Reason:         fmt.Sprintf("Stock released from voided order %s", p.ReferenceID),
			ReferenceType:  domain.ReferenceTypeOrder,
			ReferenceID:    p.ReferenceID,
			AdjustedBy:     p.ActingUserID,
			AdjustedAt:     p.AdjustedAt,
		}
		return repo.CreateAdjustment(ctx, adj)
	})
	if err != nil {
		operationFailures.WithLabelValues("release").Inc()
		return err
	}

	l.afterCommit(ctx, "release", adj)
	return nil
}

// Return receives physical stock back into the store. The inventory record
// is created lazily when the pair has never been provisioned.
func (l *Ledger) Return(ctx context.Context, p ReturnParams) error {
	if p.Quantity <= 0 {
		operationFailures.WithLabelValues("return").Inc()
		return &domain.InvalidQuantityError{Quantity: p.Quantity}
	}
	if p.ReferenceType == "" {
		p.ReferenceType = domain.ReferenceTypeOrderReturn
	}

	var adj *domain.InventoryAdjustment
	err := l.run(ctx, p.UnitOfWork, p.VariantID, p.StoreID, func(repo domain.InventoryRepository) error {
		item, err := repo.FindByVariantAndStore(ctx, p.VariantID, p.StoreID)
		if err != nil {
			return err
		}

		var quantityBefore, quantityAfter int
		var unitCost, totalCost *float64

		if item == nil {
			inv := &domain.Inventory{
				TenantID:          p.TenantID,
				StoreID:           p.StoreID,
				VariantID:         p.VariantID,
				QuantityOnHand:    p.Quantity,
				QuantityCommitted: 0,
				QuantityAvailable: p.Quantity,
			}
			if err := repo.Create(ctx, inv); err != nil {
				return err
			}
			quantityBefore = 0
			quantityAfter = p.Quantity
		} else {
			newOnHand := item.QuantityOnHand + p.Quantity
			newAvailable := newOnHand - item.QuantityCommitted

			update := domain.QuantityUpdate{
				QuantityOnHand:    &newOnHand,
				QuantityAvailable: &newAvailable,
				TotalValue:        recomputeTotalValue(item, newOnHand),
			}
			if err := repo.UpdateQuantities(ctx, item.ID, update); err != nil {
				return err
			}
			quantityBefore = item.QuantityOnHand
			quantityAfter = newOnHand
			unitCost, totalCost = movementCost(item, p.Quantity)
		}

		reason := p.Reason
		if reason == "" {
			reason = fmt.Sprintf("Stock returned from %s %s", p.ReferenceType, p.ReferenceID)
		}

		adj = &domain.InventoryAdjustment{
			TenantID:       p.TenantID,
			StoreID:        p.StoreID,
			VariantID:      p.VariantID,
			AdjustmentType: domain.AdjustmentTypeReturn,
			QuantityChange: p.Quantity,
			QuantityBefore: quantityBefore,
			QuantityAfter:  quantityAfter,
			UnitCost:       unitCost,
			TotalCost:      totalCost,
			Reason:         reason,
			ReferenceType:  p.ReferenceType,
			ReferenceID:    p.ReferenceID,
			AdjustedBy:     p.ActingUserID,
			AdjustedAt:     p.AdjustedAt,
		}
		return repo.CreateAdjustment(ctx, adj)
	})
	if err != nil {
		operationFailures.WithLabelValues("return").Inc()
		return err
	}

	l.afterCommit(ctx, "return", adj)
	return nil
}

// ListAdjustments returns the audit trail for a pair, newest first.
func (l *Ledger) ListAdjustments(ctx context.Context, variantID, storeID string, limit, offset int) ([]domain.InventoryAdjustment, error) {
	return l.repo.ListAdjustments(ctx, variantID, storeID, limit, offset)
}

// ValidationResult reports whether a prospective return is acceptable.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidateReturn checks a prospective stock return for the returns workflow.
// A missing inventory record is valid; Return provisions it lazily.
func (l *Ledger) ValidateReturn(ctx context.Context, variantID, storeID string, quantity int) (*ValidationResult, error) {
	if quantity <= 0 {
		return &ValidationResult{
			Valid:  false,
			Errors: []string{"Invalid return quantity: must be greater than 0"},
		}, nil
	}

	if _, err := l.repo.FindByVariantAndStore(ctx, variantID, storeID); err != nil {
		return nil, err
	}

	return &ValidationResult{Valid: true}, nil
}

// run serializes the mutation per (store, variant) pair and scopes it to a
// unit of work: the caller's, when supplied, otherwise a fresh transaction.
func (l *Ledger) run(ctx context.Context, uow domain.InventoryRepository, variantID, storeID string, fn func(domain.InventoryRepository) error) error {
	unlock := l.locks.Lock(storeID + "/" + variantID)
	defer unlock()

	if uow != nil {
		return fn(uow)
	}
	return l.repo.InTransaction(ctx, fn)
}

func (l *Ledger) afterCommit(ctx context.Context, operation string, adj *domain.InventoryAdjustment) {
	l.cache.Invalidate(ctx, adj.VariantID, adj.StoreID)
	adjustmentsTotal.WithLabelValues(adj.AdjustmentType).Inc()

	logger.Info(ctx).
		Str("operation", operation).
		Str("variant_id", adj.VariantID).
		Str("store_id", adj.StoreID).
		Str("adjustment_type", adj.AdjustmentType).
		Int("quantity_change", adj.QuantityChange).
		Str("reference_id", adj.ReferenceID).
		Msg("Stock adjustment committed")

	if l.publisher != nil {
		if err := l.publisher.PublishStockAdjusted(ctx, adj); err != nil {
			logger.Warn(ctx).
				Err(err).
				Str("variant_id", adj.VariantID).
				Str("store_id", adj.StoreID).
				Msg("Failed to publish stock adjustment event")
		}
	}
}

// recomputeTotalValue keeps totalValue = quantityOnHand * costPerUnit after
// any physical quantity change. Without a known cost the stored value is
// carried over unchanged.
func recomputeTotalValue(item *domain.Inventory, newOnHand int) *float64 {
	if item.CostPerUnit == nil {
		return item.TotalValue
	}
	v := float64(newOnHand) * *item.CostPerUnit
	return &v
}

// movementCost values a physical movement when the unit cost is known.
func movementCost(item *domain.Inventory, quantity int) (unitCost, totalCost *float64) {
	if item.CostPerUnit == nil {
		return nil, nil
	}
	uc := *item.CostPerUnit
	tc := uc * float64(quantity)
	return &uc, &tc
}
