// Package memory provides process-lifetime, map-backed stores. Writes are
// last-write-wins; the mutex only keeps concurrent map access safe.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/horizonte/storefront/internal/domain"
	"github.com/horizonte/storefront/internal/repository"
	apperrors "github.com/horizonte/storefront/pkg/errors"
)

// CatalogRepository implements repository.CatalogRepository in memory.
type CatalogRepository struct {
	mu         sync.RWMutex
	categories map[string]domain.Category
	products   map[string]domain.Product
	order      []string
}

// NewCatalogRepository creates an empty catalog.
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		categories: make(map[string]domain.Category),
		products:   make(map[string]domain.Product),
	}
}

// ListCategories returns categories sorted by Order, then ID.
func (r *CatalogRepository) ListCategories(_ context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b domain.Category) int {
		return cmp.Or(cmp.Compare(a.Order, b.Order), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

// GetCategory retrieves a category by id.
func (r *CatalogRepository) GetCategory(_ context.Context, id string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, apperrors.NotFound("category", id)
	}
	return &c, nil
}

// CreateCategory stores a new category.
func (r *CatalogRepository) CreateCategory(_ context.Context, c *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.categories[c.ID]; exists {
		return apperrors.AlreadyExists("category", "id", c.ID)
	}
	r.categories[c.ID] = *c
	return nil
}

// ListProducts returns the products matching filter in insertion order.
func (r *CatalogRepository) ListProducts(_ context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		p := r.products[id]
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Promotion != nil && p.IsPromotion != *filter.Promotion {
			continue
		}
		if filter.Featured != nil && p.IsFeatured != *filter.Featured {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

// GetProduct retrieves a product by id.
func (r *CatalogRepository) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	p = cloneProduct(p)
	return &p, nil
}

// CreateProduct stores a new product.
func (r *CatalogRepository) CreateProduct(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[p.ID]; exists {
		return apperrors.AlreadyExists("product", "id", p.ID)
	}
	r.products[p.ID] = cloneProduct(*p)
	r.order = append(r.order, p.ID)
	return nil
}

// UpdateProduct replaces an existing product, keeping its position.
func (r *CatalogRepository) UpdateProduct(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[p.ID]; !exists {
		return apperrors.NotFound("product", p.ID)
	}
	r.products[p.ID] = cloneProduct(*p)
	return nil
}

// DeleteProduct removes a product.
func (r *CatalogRepository) DeleteProduct(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		return apperrors.NotFound("product", id)
	}
	delete(r.products, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func cloneProduct(p domain.Product) domain.Product {
	p.Sizes = slices.Clone(p.Sizes)
	p.Toppings = slices.Clone(p.Toppings)
	return p
}
