package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonte/storefront/internal/domain"
)

func cartItem(id string) *domain.CartItem {
	return &domain.CartItem{
		ID:               id,
		ProductID:        "acai-tradicional",
		ProductName:      "Açaí Tradicional",
		Size:             "500ml",
		Price:            decimal.NewFromInt(20),
		Quantity:         1,
		SelectedToppings: []string{"Granola"},
	}
}

func TestCartRepository_AddAndList(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "default", cartItem("a")))
	require.NoError(t, repo.Add(ctx, "default", cartItem("b")))
	require.NoError(t, repo.Add(ctx, "other", cartItem("c")))

	items, err := repo.List(ctx, "default")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)

	other, err := repo.List(ctx, "other")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestCartRepository_List_UnknownCartIsEmpty(t *testing.T) {
	items, err := NewCartRepository().List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCartRepository_List_ReturnsCopy(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()
	require.NoError(t, repo.Add(ctx, "default", cartItem("a")))

	items, err := repo.List(ctx, "default")
	require.NoError(t, err)
	items[0].SelectedToppings[0] = "Nutella"

	again, err := repo.List(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "Granola", again[0].SelectedToppings[0])
}

func TestCartRepository_Remove(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()
	require.NoError(t, repo.Add(ctx, "default", cartItem("a")))
	require.NoError(t, repo.Add(ctx, "default", cartItem("b")))

	require.NoError(t, repo.Remove(ctx, "default", "a"))
	require.NoError(t, repo.Remove(ctx, "default", "missing"))

	items, err := repo.List(ctx, "default")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
}

func TestCartRepository_Clear(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()
	require.NoError(t, repo.Add(ctx, "default", cartItem("a")))
	require.NoError(t, repo.Add(ctx, "other", cartItem("b")))

	require.NoError(t, repo.Clear(ctx, "default"))

	items, err := repo.List(ctx, "default")
	require.NoError(t, err)
	assert.Empty(t, items)

	other, err := repo.List(ctx, "other")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestCartRepository_ConcurrentAdds(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Add(ctx, "default", cartItem(fmt.Sprintf("item-%d", i)))
		}(i)
	}
	wg.Wait()

	items, err := repo.List(ctx, "default")
	require.NoError(t, err)
	assert.Len(t, items, 50)
}
