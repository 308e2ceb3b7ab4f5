package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tair/pos-inventory/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// TracingRepository wraps an InventoryRepository with OpenTelemetry spans.
type TracingRepository struct {
	next domain.InventoryRepository
}

// NewTracingRepository creates a repository decorator that records one span
// per data-access call.
func NewTracingRepository(next domain.InventoryRepository) *TracingRepository {
	return &TracingRepository{next: next}
}

func (r *TracingRepository) FindByVariantAndStore(ctx context.Context, variantID, storeID string) (*domain.Inventory, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByVariantAndStore")
	defer span.End()

	span.SetAttributes(
		attribute.String("inventory.variant_id", variantID),
		attribute.String("inventory.store_id", storeID),
	)

	inv, err := r.next.FindByVariantAndStore(ctx, variantID, storeID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Bool("inventory.found", inv != nil))
	if inv != nil {
		span.SetAttributes(
			attribute.Int("inventory.quantity_on_hand", inv.QuantityOnHand),
			attribute.Int("inventory.quantity_available", inv.QuantityAvailable),
		)
	}
	return inv, nil
}

func (r *TracingRepository) Create(ctx context.Context, inv *domain.Inventory) error {
	ctx, span := tracer.Start(ctx, "repository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.String("inventory.variant_id", inv.VariantID),
		attribute.String("inventory.store_id", inv.StoreID),
		attribute.Int("inventory.quantity_on_hand", inv.QuantityOnHand),
	)

	if err := r.next.Create(ctx, inv); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetAttributes(attribute.String("inventory.id", inv.ID))
	return nil
}

func (r *TracingRepository) UpdateQuantities(ctx context.Context, inventoryID string, update domain.QuantityUpdate) error {
	ctx, span := tracer.Start(ctx, "repository.UpdateQuantities")
	defer span.End()

	span.SetAttributes(attribute.String("inventory.id", inventoryID))
	if update.QuantityOnHand != nil {
		span.SetAttributes(attribute.Int("inventory.quantity_on_hand", *update.QuantityOnHand))
	}
	if update.QuantityCommitted != nil {
		span.SetAttributes(attribute.Int("inventory.quantity_committed", *update.QuantityCommitted))
	}

	if err := r.next.UpdateQuantities(ctx, inventoryID, update); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (r *TracingRepository) CreateAdjustment(ctx context.Context, adj *domain.InventoryAdjustment) error {
	ctx, span := tracer.Start(ctx, "repository.CreateAdjustment")
	defer span.End()

	span.SetAttributes(
		attribute.String("adjustment.type", adj.AdjustmentType),
		attribute.Int("adjustment.quantity_change", adj.QuantityChange),
		attribute.String("adjustment.reference_id", adj.ReferenceID),
	)

	if err := r.next.CreateAdjustment(ctx, adj); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (r *TracingRepository) ListAdjustments(ctx context.Context, variantID, storeID string, limit, offset int) ([]domain.InventoryAdjustment, error) {
	ctx, span := tracer.Start(ctx, "repository.ListAdjustments")
	defer span.End()

	span.SetAttributes(
		attribute.String("inventory.variant_id", variantID),
		attribute.String("inventory.store_id", storeID),
		attribute.Int("query.limit", limit),
		attribute.Int("query.offset", offset),
	)

	adjustments, err := r.next.ListAdjustments(ctx, variantID, storeID, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(adjustments)))
	return adjustments, nil
}

func (r *TracingRepository) InTransaction(ctx context.Context, fn func(repo domain.InventoryRepository) error) error {
	ctx, span := tracer.Start(ctx, "repository.InTransaction")
	defer span.End()

	err := r.next.InTransaction(ctx, func(txRepo domain.InventoryRepository) error {
		return fn(txRepo)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
