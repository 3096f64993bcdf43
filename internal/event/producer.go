package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/utafrali/product-catalog/internal/domain"
)

// Kafka topic constants for catalog domain events.
const (
	TopicProductCreated = "catalog.product.created"
	TopicProductDeleted = "catalog.product.deleted"
)

// Source identifier for events originating from the catalog service.
const SourceCatalogService = "catalog-service"

// Event is the standard envelope for all catalog messages.
type Event struct {
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	AggregateID string          `json:"aggregate_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Source      string          `json:"source"`
	Data        json.RawMessage `json:"data"`
}

// ProductCreatedData is the payload for a product.created event.
type ProductCreatedData struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	SKU      string          `json:"sku"`
}

// ProductDeletedData is the payload for a product.deleted event.
type ProductDeletedData struct {
	ID        string    `json:"id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// Producer publishes catalog domain events to Kafka. Publishing is
// best-effort: callers log failures and continue, they never fail the
// originating catalog operation.
type Producer struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewProducer creates a new event producer writing to the given brokers.
func NewProducer(brokers []string, logger *slog.Logger) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
	}

	return &Producer{
		writer: w,
		logger: logger,
	}
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	data := ProductCreatedData{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Category: product.Category,
		SKU:      product.SKU,
	}
	return p.publish(ctx, TopicProductCreated, product.ID, data)
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, id string, deletedAt time.Time) error {
	data := ProductDeletedData{ID: id, DeletedAt: deletedAt}
	return p.publish(ctx, TopicProductDeleted, id, data)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	event := Event{
		EventID:     uuid.New().String(),
		EventType:   topic,
		AggregateID: aggregateID,
		Timestamp:   time.Now().UTC(),
		Source:      SourceCatalogService,
		Data:        payload,
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(aggregateID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(topic)},
			{Key: "source", Value: []byte(SourceCatalogService)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish event to %s: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "event published",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)

	return nil
}

// Close closes the producer and flushes pending messages.
func (p *Producer) Close() error {
	return p.writer.Close()
}
