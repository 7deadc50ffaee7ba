package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/horizonte/storefront/internal/checkout"
	"github.com/horizonte/storefront/internal/domain"
	pkgkafka "github.com/horizonte/storefront/pkg/kafka"
	"github.com/horizonte/storefront/pkg/logger"
)

// Aggregate types.
const (
	AggregateTypeCart    = "cart"
	AggregateTypeOrder   = "order"
	AggregateTypeProduct = "product"
)

// SourceStorefront identifies events originating from this server.
const SourceStorefront = "storefront"

// Topics.
var (
	TopicCartUpdated    = pkgkafka.Topic(AggregateTypeCart, "updated")
	TopicCartCleared    = pkgkafka.Topic(AggregateTypeCart, "cleared")
	TopicOrderPlaced    = pkgkafka.Topic(AggregateTypeOrder, "placed")
	TopicProductChanged = pkgkafka.Topic(AggregateTypeProduct, "changed")
)

// Product change kinds carried on product.changed.
const (
	ProductCreated = "created"
	ProductUpdated = "updated"
	ProductDeleted = "deleted"
)

// Publisher emits storefront domain events. Callers log failures; a failed
// publish never fails the operation that triggered it.
type Publisher interface {
	CartUpdated(ctx context.Context, cartID string, items []domain.CartItem) error
	CartCleared(ctx context.Context, cartID string) error
	OrderPlaced(ctx context.Context, order *checkout.Order) error
	ProductChanged(ctx context.Context, change string, p *domain.Product) error
}

// CartUpdatedData is the payload for cart.updated.
type CartUpdatedData struct {
	CartID    string            `json:"cart_id"`
	Items     []domain.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
	Total     decimal.Decimal   `json:"total"`
}

// CartClearedData is the payload for cart.cleared.
type CartClearedData struct {
	CartID string `json:"cart_id"`
}

// OrderPlacedData is the payload for order.placed. Customer contact
// details stay out of the event; consumers get the handoff message instead.
type OrderPlacedData struct {
	OrderID       string                 `json:"order_id"`
	CartID        string                 `json:"cart_id"`
	Items         []domain.CartItem      `json:"items"`
	Summary       checkout.Summary       `json:"summary"`
	PaymentMethod checkout.PaymentMethod `json:"payment_method"`
	ChangeDue     decimal.Decimal        `json:"change_due"`
	Message       string                 `json:"message"`
}

// ProductChangedData is the payload for product.changed.
type ProductChangedData struct {
	Change  string          `json:"change"`
	Product *domain.Product `json:"product"`
}

// kafkaPublisher is the subset of *pkgkafka.Producer used here.
type kafkaPublisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes storefront events to Kafka.
type Producer struct {
	kafka  kafkaPublisher
	logger *slog.Logger
}

// NewProducer creates a Kafka-backed Publisher.
func NewProducer(kafka kafkaPublisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	evt, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	if err := p.kafka.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)
	return nil
}

// CartUpdated publishes cart.updated with the full cart contents.
func (p *Producer) CartUpdated(ctx context.Context, cartID string, items []domain.CartItem) error {
	s := checkout.Aggregate(items)
	return p.publish(ctx, TopicCartUpdated, cartID, AggregateTypeCart, CartUpdatedData{
		CartID:    cartID,
		Items:     items,
		ItemCount: s.ItemCount,
		Subtotal:  s.Subtotal,
		Total:     s.Total,
	})
}

// CartCleared publishes cart.cleared.
func (p *Producer) CartCleared(ctx context.Context, cartID string) error {
	return p.publish(ctx, TopicCartCleared, cartID, AggregateTypeCart, CartClearedData{CartID: cartID})
}

// OrderPlaced publishes order.placed.
func (p *Producer) OrderPlaced(ctx context.Context, order *checkout.Order) error {
	return p.publish(ctx, TopicOrderPlaced, order.ID, AggregateTypeOrder, OrderPlacedData{
		OrderID:       order.ID,
		CartID:        order.CartID,
		Items:         order.Items,
		Summary:       order.Summary,
		PaymentMethod: order.Payment.Method,
		ChangeDue:     order.ChangeDue,
		Message:       order.Message,
	})
}

// ProductChanged publishes product.changed. Deletions carry only the id.
func (p *Producer) ProductChanged(ctx context.Context, change string, prod *domain.Product) error {
	return p.publish(ctx, TopicProductChanged, prod.ID, AggregateTypeProduct, ProductChangedData{
		Change:  change,
		Product: prod,
	})
}

// Nop discards every event. It is used when Kafka is disabled.
type Nop struct{}

func (Nop) CartUpdated(context.Context, string, []domain.CartItem) error  { return nil }
func (Nop) CartCleared(context.Context, string) error                     { return nil }
func (Nop) OrderPlaced(context.Context, *checkout.Order) error            { return nil }
func (Nop) ProductChanged(context.Context, string, *domain.Product) error { return nil }

var (
	_ Publisher = (*Producer)(nil)
	_ Publisher = Nop{}
)
