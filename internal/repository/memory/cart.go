package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/horizonte/storefront/internal/domain"
)

// CartRepository implements repository.CartRepository in memory.
type CartRepository struct {
	mu    sync.Mutex
	carts map[string][]domain.CartItem
}

// NewCartRepository creates an empty cart store.
func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[string][]domain.CartItem)}
}

// List returns a copy of the cart's items.
func (r *CartRepository) List(_ context.Context, cartID string) ([]domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.carts[cartID]
	out := make([]domain.CartItem, len(items))
	for i, it := range items {
		it.SelectedToppings = slices.Clone(it.SelectedToppings)
		out[i] = it
	}
	return out, nil
}

// Add appends item to the cart.
func (r *CartRepository) Add(_ context.Context, cartID string, item *domain.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	it := *item
	it.SelectedToppings = slices.Clone(item.SelectedToppings)
	r.carts[cartID] = append(r.carts[cartID], it)
	return nil
}

// Remove deletes the item with itemID if present.
func (r *CartRepository) Remove(_ context.Context, cartID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := slices.DeleteFunc(r.carts[cartID], func(it domain.CartItem) bool { return it.ID == itemID })
	if len(items) == 0 {
		delete(r.carts, cartID)
		return nil
	}
	r.carts[cartID] = items
	return nil
}

// Clear empties the cart.
func (r *CartRepository) Clear(_ context.Context, cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, cartID)
	return nil
}
