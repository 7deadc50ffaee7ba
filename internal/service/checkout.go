package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/horizonte/storefront/internal/checkout"
	"github.com/horizonte/storefront/internal/domain"
	"github.com/horizonte/storefront/internal/event"
	"github.com/horizonte/storefront/internal/notify"
	"github.com/horizonte/storefront/internal/repository"
	apperrors "github.com/horizonte/storefront/pkg/errors"
	"github.com/horizonte/storefront/pkg/tracing"
)

var tracer = tracing.Tracer("github.com/horizonte/storefront/internal/service")

// StoreInfo identifies the store in handoff messages.
type StoreInfo struct {
	Name           string
	WhatsAppNumber string
}

// PlaceOrderInput holds the checkout form.
type PlaceOrderInput struct {
	Customer checkout.Customer
	Payment  checkout.Payment
}

// Preview is the order message for the cart as it stands.
type Preview struct {
	CartID   string            `json:"cart_id"`
	Items    []domain.CartItem `json:"items"`
	Summary  checkout.Summary  `json:"summary"`
	Message  string            `json:"message"`
	ChatLink string            `json:"chat_link"`
}

// CheckoutService turns a cart into an order handoff.
type CheckoutService struct {
	carts    repository.CartRepository
	notifier notify.Notifier
	events   event.Publisher
	store    StoreInfo
	logger   *slog.Logger
	now      func() time.Time
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(carts repository.CartRepository, notifier notify.Notifier, events event.Publisher, store StoreInfo, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		notifier: notifier,
		events:   events,
		store:    store,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Preview renders the order message without customer details.
func (s *CheckoutService) Preview(ctx context.Context, cartID string) (*Preview, error) {
	items, err := s.carts.List(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if items == nil {
		items = []domain.CartItem{}
	}

	summary := checkout.Aggregate(items)
	msg := checkout.FormatOrderMessage(s.store.Name, items, summary)
	return &Preview{
		CartID:   cartID,
		Items:    items,
		Summary:  summary,
		Message:  msg,
		ChatLink: checkout.ChatLink(s.store.WhatsAppNumber, msg),
	}, nil
}

// PlaceOrder builds the order for a non-empty cart, publishes it and hands
// it to the notifier. Publishing and notification failures are logged only.
// The cart is left as it is.
func (s *CheckoutService) PlaceOrder(ctx context.Context, cartID string, in PlaceOrderInput) (*checkout.Order, error) {
	ctx, span := tracer.Start(ctx, "CheckoutService.PlaceOrder")
	defer span.End()

	if !in.Payment.Method.IsValid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown payment method %q", in.Payment.Method))
	}
	if in.Payment.ChangeFor != nil && in.Payment.ChangeFor.IsNegative() {
		return nil, apperrors.InvalidInput("change amount must not be negative")
	}

	items, err := s.carts.List(ctx, cartID)
	if err != nil {
		span.SetStatus(codes.Error, "load cart")
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(items) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	order := checkout.NewOrder(uuid.NewString(), cartID, s.store.Name, s.store.WhatsAppNumber,
		items, in.Customer, in.Payment, s.now())

	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.String("order.payment_method", string(order.Payment.Method)),
		attribute.Int("order.item_count", order.Summary.ItemCount),
	)
	ordersPlaced.WithLabelValues(string(order.Payment.Method)).Inc()
	orderTotalAmount.Observe(order.Summary.Total.InexactFloat64())

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("cart_id", cartID),
		slog.String("total", order.Summary.Total.StringFixed(2)),
		slog.String("payment_method", string(order.Payment.Method)),
	)

	if err := s.events.OrderPlaced(ctx, &order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}
	if err := s.notifier.Notify(ctx, &order); err != nil {
		s.logger.ErrorContext(ctx, "order notification failed",
			slog.String("order_id", order.ID),
			slog.String("notifier", s.notifier.Name()),
			slog.String("error", err.Error()),
		)
	}

	return &order, nil
}
