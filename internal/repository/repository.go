package repository

import (
	"context"

	"github.com/horizonte/storefront/internal/domain"
)

// ProductFilter narrows ListProducts. Zero values match everything.
type ProductFilter struct {
	CategoryID string
	// Search is a case-insensitive substring match on name or description.
	Search    string
	Promotion *bool
	Featured  *bool
}

// CatalogRepository stores categories and products.
type CatalogRepository interface {
	// ListCategories returns all categories in ascending display order.
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, c *domain.Category) error

	// ListProducts returns matching products in insertion order.
	ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// CartRepository stores cart line items, scoped by cart id.
type CartRepository interface {
	// List returns the cart's items in insertion order. An unknown cart is empty.
	List(ctx context.Context, cartID string) ([]domain.CartItem, error)

	// Add appends an item to the cart.
	Add(ctx context.Context, cartID string, item *domain.CartItem) error

	// Remove deletes one item. Removing an unknown item is not an error.
	Remove(ctx context.Context, cartID, itemID string) error

	// Clear removes every item from the cart.
	Clear(ctx context.Context, cartID string) error
}
