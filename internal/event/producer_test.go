package event

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonte/storefront/internal/checkout"
	"github.com/horizonte/storefront/internal/domain"
	pkgkafka "github.com/horizonte/storefront/pkg/kafka"
	"github.com/horizonte/storefront/pkg/logger"
)

type published struct {
	topic string
	event *pkgkafka.Event
}

type fakeKafka struct {
	sent []published
	err  error
}

func (f *fakeKafka) Publish(_ context.Context, topic string, e *pkgkafka.Event) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{topic: topic, event: e})
	return nil
}

func newTestProducer() (*Producer, *fakeKafka) {
	k := &fakeKafka{}
	return NewProducer(k, slog.New(slog.NewTextHandler(io.Discard, nil))), k
}

func sampleItems() []domain.CartItem {
	return []domain.CartItem{
		{ID: "i1", ProductID: "acai-tradicional", ProductName: "Açaí Tradicional", Size: "500ml", Price: decimal.NewFromInt(20), Quantity: 2},
	}
}

func TestTopics(t *testing.T) {
	assert.Equal(t, "storefront.cart.updated", TopicCartUpdated)
	assert.Equal(t, "storefront.cart.cleared", TopicCartCleared)
	assert.Equal(t, "storefront.order.placed", TopicOrderPlaced)
	assert.Equal(t, "storefront.product.changed", TopicProductChanged)
}

func TestCartUpdated(t *testing.T) {
	p, k := newTestProducer()
	ctx := logger.WithCorrelationID(context.Background(), "corr-1")

	require.NoError(t, p.CartUpdated(ctx, "mesa-7", sampleItems()))
	require.Len(t, k.sent, 1)

	evt := k.sent[0].event
	assert.Equal(t, TopicCartUpdated, k.sent[0].topic)
	assert.Equal(t, "mesa-7", evt.AggregateID)
	assert.Equal(t, AggregateTypeCart, evt.AggregateType)
	assert.Equal(t, SourceStorefront, evt.Source)
	assert.Equal(t, "corr-1", evt.CorrelationID)

	var data CartUpdatedData
	require.NoError(t, evt.UnmarshalData(&data))
	assert.Equal(t, 1, data.ItemCount)
	assert.True(t, data.Subtotal.Equal(decimal.NewFromInt(40)))
	assert.True(t, data.Total.Equal(decimal.NewFromInt(45)))
}

func TestCartCleared(t *testing.T) {
	p, k := newTestProducer()

	require.NoError(t, p.CartCleared(context.Background(), "default"))
	require.Len(t, k.sent, 1)
	assert.Equal(t, TopicCartCleared, k.sent[0].topic)
	assert.Empty(t, k.sent[0].event.CorrelationID)
}

func TestOrderPlaced_OmitsCustomerDetails(t *testing.T) {
	p, k := newTestProducer()
	order := checkout.NewOrder("order-1", "default", "Horizonte", "5565981041149", sampleItems(),
		checkout.Customer{Name: "Ana", Street: "Rua A", Number: "10", PostalCode: "78000000"},
		checkout.Payment{Method: checkout.PaymentPix},
		time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	require.NoError(t, p.OrderPlaced(context.Background(), &order))
	require.Len(t, k.sent, 1)
	assert.Equal(t, "order-1", k.sent[0].event.AggregateID)

	var data OrderPlacedData
	require.NoError(t, k.sent[0].event.UnmarshalData(&data))
	assert.Equal(t, checkout.PaymentPix, data.PaymentMethod)
	assert.True(t, data.Summary.Total.Equal(decimal.NewFromInt(45)))
	assert.NotContains(t, string(k.sent[0].event.Data), `"customer"`)
	assert.Contains(t, data.Message, "*Cliente:* Ana")
}

func TestProductChanged(t *testing.T) {
	p, k := newTestProducer()

	require.NoError(t, p.ProductChanged(context.Background(), ProductDeleted, &domain.Product{ID: "picole-limao"}))

	var data ProductChangedData
	require.NoError(t, k.sent[0].event.UnmarshalData(&data))
	assert.Equal(t, ProductDeleted, data.Change)
	assert.Equal(t, "picole-limao", data.Product.ID)
}

func TestPublishFailureIsWrapped(t *testing.T) {
	p, k := newTestProducer()
	k.err = errors.New("broker down")

	err := p.CartCleared(context.Background(), "default")
	require.Error(t, err)
	assert.ErrorIs(t, err, k.err)
	assert.Contains(t, err.Error(), "publish storefront.cart.cleared event")
}

func TestNop(t *testing.T) {
	var pub Publisher = Nop{}
	assert.NoError(t, pub.CartUpdated(context.Background(), "x", nil))
	assert.NoError(t, pub.CartCleared(context.Background(), "x"))
	assert.NoError(t, pub.OrderPlaced(context.Background(), &checkout.Order{}))
	assert.NoError(t, pub.ProductChanged(context.Background(), ProductCreated, &domain.Product{}))
}
