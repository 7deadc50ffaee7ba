package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonte/storefront/internal/domain"
	"github.com/horizonte/storefront/internal/repository"
	apperrors "github.com/horizonte/storefront/pkg/errors"
)

func boolPtr(v bool) *bool { return &v }

func seededCatalog(t *testing.T) *CatalogRepository {
	t.Helper()
	ctx := context.Background()
	repo := NewCatalogRepository()

	for _, c := range []domain.Category{
		{ID: "sorvetes", Name: "Sorvetes", Order: 3},
		{ID: "promocao", Name: "Promoção", Order: 1},
		{ID: "acai", Name: "Açaí", Order: 2},
	} {
		c := c
		require.NoError(t, repo.CreateCategory(ctx, &c))
	}

	for _, p := range []domain.Product{
		{ID: "acai-tradicional", Name: "Açaí Tradicional", CategoryID: "acai", BasePrice: decimal.NewFromInt(15), Sizes: []string{"300ml", "500ml"}, IsFeatured: true},
		{ID: "combo-casal", Name: "Combo Casal", Description: "Dois copos de açaí", CategoryID: "promocao", BasePrice: decimal.NewFromInt(30), IsPromotion: true},
		{ID: "sorvete-creme", Name: "Sorvete de Creme", CategoryID: "sorvetes", BasePrice: decimal.NewFromInt(10)},
	} {
		p := p
		require.NoError(t, repo.CreateProduct(ctx, &p))
	}
	return repo
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

func TestCatalogRepository_ListCategories_SortedByOrder(t *testing.T) {
	repo := seededCatalog(t)

	cats, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, "promocao", cats[0].ID)
	assert.Equal(t, "acai", cats[1].ID)
	assert.Equal(t, "sorvetes", cats[2].ID)
}

func TestCatalogRepository_CreateCategory_Duplicate(t *testing.T) {
	repo := seededCatalog(t)

	err := repo.CreateCategory(context.Background(), &domain.Category{ID: "acai", Name: "Outro"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestCatalogRepository_GetCategory(t *testing.T) {
	repo := seededCatalog(t)

	c, err := repo.GetCategory(context.Background(), "acai")
	require.NoError(t, err)
	assert.Equal(t, "Açaí", c.Name)

	_, err = repo.GetCategory(context.Background(), "bebidas")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

func TestCatalogRepository_ListProducts_Filters(t *testing.T) {
	repo := seededCatalog(t)

	tests := []struct {
		name   string
		filter repository.ProductFilter
		want   []string
	}{
		{name: "no filter keeps insertion order", want: []string{"acai-tradicional", "combo-casal", "sorvete-creme"}},
		{name: "by category", filter: repository.ProductFilter{CategoryID: "sorvetes"}, want: []string{"sorvete-creme"}},
		{name: "unknown category", filter: repository.ProductFilter{CategoryID: "bebidas"}, want: []string{}},
		{name: "promotion", filter: repository.ProductFilter{Promotion: boolPtr(true)}, want: []string{"combo-casal"}},
		{name: "not featured", filter: repository.ProductFilter{Featured: boolPtr(false)}, want: []string{"combo-casal", "sorvete-creme"}},
		{name: "search name", filter: repository.ProductFilter{Search: "AÇAÍ trad"}, want: []string{"acai-tradicional"}},
		{name: "search description", filter: repository.ProductFilter{Search: "copos"}, want: []string{"combo-casal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.ListProducts(context.Background(), tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(products))
			for _, p := range products {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestCatalogRepository_GetProduct_ReturnsCopy(t *testing.T) {
	repo := seededCatalog(t)
	ctx := context.Background()

	p, err := repo.GetProduct(ctx, "acai-tradicional")
	require.NoError(t, err)
	p.Sizes[0] = "700ml"
	p.Name = "changed"

	again, err := repo.GetProduct(ctx, "acai-tradicional")
	require.NoError(t, err)
	assert.Equal(t, "300ml", again.Sizes[0])
	assert.Equal(t, "Açaí Tradicional", again.Name)
}

func TestCatalogRepository_CreateProduct_Duplicate(t *testing.T) {
	repo := seededCatalog(t)

	err := repo.CreateProduct(context.Background(), &domain.Product{ID: "combo-casal"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestCatalogRepository_UpdateProduct(t *testing.T) {
	repo := seededCatalog(t)
	ctx := context.Background()

	p, err := repo.GetProduct(ctx, "combo-casal")
	require.NoError(t, err)
	p.BasePrice = decimal.NewFromInt(28)
	require.NoError(t, repo.UpdateProduct(ctx, p))

	got, err := repo.GetProduct(ctx, "combo-casal")
	require.NoError(t, err)
	assert.True(t, got.BasePrice.Equal(decimal.NewFromInt(28)))

	all, err := repo.ListProducts(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, "combo-casal", all[1].ID, "update keeps position")

	err = repo.UpdateProduct(ctx, &domain.Product{ID: "ghost"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogRepository_DeleteProduct(t *testing.T) {
	repo := seededCatalog(t)
	ctx := context.Background()

	require.NoError(t, repo.DeleteProduct(ctx, "combo-casal"))

	_, err := repo.GetProduct(ctx, "combo-casal")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	all, err := repo.ListProducts(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.ErrorIs(t, repo.DeleteProduct(ctx, "combo-casal"), apperrors.ErrNotFound)
}
