package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/horizonte/storefront/internal/domain"
	"github.com/horizonte/storefront/internal/event"
	"github.com/horizonte/storefront/internal/pricing"
	"github.com/horizonte/storefront/internal/repository"
	apperrors "github.com/horizonte/storefront/pkg/errors"
	"github.com/horizonte/storefront/pkg/slug"
)

// CreateCategoryInput holds the fields for a new category. An empty ID is
// derived from the name.
type CreateCategoryInput struct {
	ID    string
	Name  string
	Order int
}

// ProductInput holds the fields for creating a product.
type ProductInput struct {
	ID            string
	Name          string
	Description   string
	CategoryID    string
	BasePrice     decimal.Decimal
	Image         string
	IsPromotion   bool
	IsFeatured    bool
	Sizes         []string
	Toppings      []string
	ToppingGroups string
}

// ProductPatch holds a partial product update. Nil fields are left unchanged.
type ProductPatch struct {
	Name          *string
	Description   *string
	CategoryID    *string
	BasePrice     *decimal.Decimal
	Image         *string
	IsPromotion   *bool
	IsFeatured    *bool
	Sizes         *[]string
	Toppings      *[]string
	ToppingGroups *string
}

// QuoteInput is a product configuration to price.
type QuoteInput struct {
	Size     string
	Toppings []string
	Quantity int
}

// CatalogService implements catalog browsing, quoting and management.
type CatalogService struct {
	repo   repository.CatalogRepository
	events event.Publisher
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.CatalogRepository, events event.Publisher, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

// ListCategories returns categories in display order.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// ListProducts returns products matching filter.
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	products, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetProduct returns one product or a not-found error.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Sizes returns the size tier catalog.
func (s *CatalogService) Sizes() []domain.ProductSize {
	return domain.SizeTiers()
}

// Quote prices a configuration of the product without touching any cart.
func (s *CatalogService) Quote(ctx context.Context, productID string, in QuoteInput) (*domain.Product, pricing.LineItem, error) {
	p, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, pricing.LineItem{}, err
	}
	return p, pricing.ComputeLineItem(p, in.Size, in.Toppings, in.Quantity), nil
}

// CreateCategory adds a category.
func (s *CatalogService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.InvalidInput("category name is required")
	}
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = slug.Generate(name)
	}
	if id == "" {
		return nil, apperrors.InvalidInput("category id could not be derived from the name")
	}

	c := &domain.Category{ID: id, Name: name, Order: in.Order}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "category created", slog.String("category_id", c.ID))
	return c, nil
}

// CreateProduct adds a product. An empty ID gets a random UUID.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	p := &domain.Product{
		ID:            strings.TrimSpace(in.ID),
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		CategoryID:    in.CategoryID,
		BasePrice:     in.BasePrice.Round(2),
		Image:         in.Image,
		IsPromotion:   in.IsPromotion,
		IsFeatured:    in.IsFeatured,
		Sizes:         cleanList(in.Sizes),
		Toppings:      cleanList(in.Toppings),
		ToppingGroups: strings.TrimSpace(in.ToppingGroups),
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	if err := s.validateProduct(ctx, p); err != nil {
		return nil, err
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", p.ID),
		slog.String("category_id", p.CategoryID),
	)
	s.publishProductChange(ctx, event.ProductCreated, p)
	return p, nil
}

// UpdateProduct applies a partial update.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
	}
	if patch.BasePrice != nil {
		p.BasePrice = patch.BasePrice.Round(2)
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.IsPromotion != nil {
		p.IsPromotion = *patch.IsPromotion
	}
	if patch.IsFeatured != nil {
		p.IsFeatured = *patch.IsFeatured
	}
	if patch.Sizes != nil {
		p.Sizes = cleanList(*patch.Sizes)
	}
	if patch.Toppings != nil {
		p.Toppings = cleanList(*patch.Toppings)
	}
	if patch.ToppingGroups != nil {
		p.ToppingGroups = strings.TrimSpace(*patch.ToppingGroups)
	}

	if err := s.validateProduct(ctx, p); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "product updated", slog.String("product_id", p.ID))
	s.publishProductChange(ctx, event.ProductUpdated, p)
	return p, nil
}

// DeleteProduct removes a product. Deleting an unknown product succeeds
// without doing anything. Cart lines already priced from it are kept.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}

	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id))
	s.publishProductChange(ctx, event.ProductDeleted, &domain.Product{ID: id})
	return nil
}

// validateProduct is the strict admin-side check. The read path stays
// lenient about whatever ends up stored.
func (s *CatalogService) validateProduct(ctx context.Context, p *domain.Product) error {
	if p.Name == "" {
		return apperrors.InvalidInput("product name is required")
	}
	if p.BasePrice.IsNegative() {
		return apperrors.InvalidInput("base price must not be negative")
	}
	if _, err := s.repo.GetCategory(ctx, p.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.InvalidInput(fmt.Sprintf("unknown category %q", p.CategoryID))
		}
		return fmt.Errorf("check category: %w", err)
	}
	for _, size := range p.Sizes {
		if !domain.IsKnownSize(size) {
			return apperrors.InvalidInput(fmt.Sprintf("unknown size %q", size))
		}
	}
	if p.ToppingGroups != "" {
		if _, err := domain.ValidateToppingGroups(p.ToppingGroups); err != nil {
			return apperrors.InvalidInput("topping_groups is not a valid group list: " + err.Error())
		}
	}
	return nil
}

func (s *CatalogService) publishProductChange(ctx context.Context, change string, p *domain.Product) {
	if err := s.events.ProductChanged(ctx, change, p); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.changed event",
			slog.String("product_id", p.ID),
			slog.String("error", err.Error()),
		)
	}
}

// cleanList trims entries and drops empty ones.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
