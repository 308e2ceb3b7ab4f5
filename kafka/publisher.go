package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/pos-inventory/internal/inventory/domain"
	"github.com/tair/pos-inventory/pkg/logger"
)

// Publisher wraps a Kafka sync producer for the stock movement stream.
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{
		producer: producer,
		brokers:  brokers,
	}, nil
}

// PublishStockAdjusted publishes one committed adjustment to the movement
// topic. Messages are keyed by store+variant so each pair's movements stay
// ordered within a partition.
func (p *Publisher) PublishStockAdjusted(ctx context.Context, adj *domain.InventoryAdjustment) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.stock_adjusted",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicStockAdjusted),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", EventTypeStockAdjusted),
			attribute.String("adjustment.type", adj.AdjustmentType),
			attribute.Int("adjustment.quantity_change", adj.QuantityChange),
		),
	)
	defer span.End()

	event := StockAdjustedEvent{
		EventID:        uuid.New().String(),
		EventType:      EventTypeStockAdjusted,
		TenantID:       adj.TenantID,
		StoreID:        adj.StoreID,
		VariantID:      adj.VariantID,
		AdjustmentID:   adj.ID,
		AdjustmentType: adj.AdjustmentType,
		QuantityChange: adj.QuantityChange,
		QuantityBefore: adj.QuantityBefore,
		QuantityAfter:  adj.QuantityAfter,
		Reason:         adj.Reason,
		ReferenceType:  adj.ReferenceType,
		ReferenceID:    adj.ReferenceID,
		AdjustedBy:     adj.AdjustedBy,
		AdjustedAt:     adj.AdjustedAt,
		Timestamp:      time.Now(),
	}

	span.SetAttributes(attribute.String("event.id", event.EventID))

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: TopicStockAdjusted,
		Key:   sarama.StringEncoder(adj.StoreID + "/" + adj.VariantID),
		Value: sarama.ByteEncoder(eventBytes),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to publish event")
		return fmt.Errorf("failed to publish stock adjusted event: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("messaging.kafka.partition", int64(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)

	logger.Info(ctx).
		Str("event_id", event.EventID).
		Str("topic", TopicStockAdjusted).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Stock adjusted event published")

	return nil
}

// Close shuts the underlying producer down.
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
