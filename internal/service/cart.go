package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/horizonte/storefront/internal/checkout"
	"github.com/horizonte/storefront/internal/domain"
	"github.com/horizonte/storefront/internal/event"
	"github.com/horizonte/storefront/internal/pricing"
	"github.com/horizonte/storefront/internal/repository"
	apperrors "github.com/horizonte/storefront/pkg/errors"
)

// AddItemInput is a product configuration to put in the cart. The price is
// always computed server-side from the live catalog.
type AddItemInput struct {
	ProductID string
	Size      string
	Toppings  []string
	Quantity  int
}

// CartView is a cart's items with their totals.
type CartView struct {
	CartID  string            `json:"cart_id"`
	Items   []domain.CartItem `json:"items"`
	Summary checkout.Summary  `json:"summary"`
}

// CartService implements the business logic for cart operations.
type CartService struct {
	repo    repository.CartRepository
	catalog repository.CatalogRepository
	events  event.Publisher
	logger  *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, catalog repository.CatalogRepository, events event.Publisher, logger *slog.Logger) *CartService {
	return &CartService{
		repo:    repo,
		catalog: catalog,
		events:  events,
		logger:  logger,
	}
}

// GetCart returns the cart with its summary. An unknown cart is empty.
func (s *CartService) GetCart(ctx context.Context, cartID string) (*CartView, error) {
	items, err := s.repo.List(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return &CartView{
		CartID:  cartID,
		Items:   items,
		Summary: checkout.Aggregate(items),
	}, nil
}

// AddItem prices the configuration and appends it as a new line. Incomplete
// configurations and over-selected topping groups are rejected.
func (s *CartService) AddItem(ctx context.Context, cartID string, in AddItemInput) (*domain.CartItem, error) {
	p, err := s.catalog.GetProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	li := pricing.ComputeLineItem(p, in.Size, in.Toppings, in.Quantity)
	if !li.CanAddToCart() {
		return nil, apperrors.Incomplete(strings.Join(li.Errors, "; "))
	}
	if err := pricing.CheckSelections(p, in.Toppings); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	item := &domain.CartItem{
		ID:               uuid.NewString(),
		ProductID:        p.ID,
		ProductName:      p.Name,
		Size:             li.Size,
		Price:            li.UnitPrice,
		Quantity:         li.Quantity,
		SelectedToppings: in.Toppings,
	}
	if err := s.repo.Add(ctx, cartID, item); err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}
	cartItemsAdded.Inc()

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("cart_id", cartID),
		slog.String("item_id", item.ID),
		slog.String("product_id", p.ID),
		slog.String("price", item.Price.StringFixed(2)),
		slog.Int("quantity", item.Quantity),
	)
	s.publishUpdated(ctx, cartID)
	return item, nil
}

// RemoveItem deletes one line. Unknown ids are ignored.
func (s *CartService) RemoveItem(ctx context.Context, cartID, itemID string) error {
	if err := s.repo.Remove(ctx, cartID, itemID); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("cart_id", cartID),
		slog.String("item_id", itemID),
	)
	s.publishUpdated(ctx, cartID)
	return nil
}

// ClearCart empties the cart.
func (s *CartService) ClearCart(ctx context.Context, cartID string) error {
	if err := s.repo.Clear(ctx, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	s.logger.InfoContext(ctx, "cart cleared", slog.String("cart_id", cartID))
	if err := s.events.CartCleared(ctx, cartID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("cart_id", cartID),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

func (s *CartService) publishUpdated(ctx context.Context, cartID string) {
	items, err := s.repo.List(ctx, cartID)
	if err == nil {
		err = s.events.CartUpdated(ctx, cartID, items)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("cart_id", cartID),
			slog.String("error", err.Error()),
		)
	}
}
