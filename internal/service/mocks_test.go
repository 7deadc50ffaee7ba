package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/horizonte/storefront/internal/checkout"
	"github.com/horizonte/storefront/internal/domain"
	"github.com/horizonte/storefront/internal/repository/memory"
	"github.com/horizonte/storefront/internal/seed"
)

// ---------------------------------------------------------------------------
// Mock publisher
// ---------------------------------------------------------------------------

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) CartUpdated(ctx context.Context, cartID string, items []domain.CartItem) error {
	return m.Called(ctx, cartID, items).Error(0)
}

func (m *mockPublisher) CartCleared(ctx context.Context, cartID string) error {
	return m.Called(ctx, cartID).Error(0)
}

func (m *mockPublisher) OrderPlaced(ctx context.Context, order *checkout.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockPublisher) ProductChanged(ctx context.Context, change string, p *domain.Product) error {
	return m.Called(ctx, change, p).Error(0)
}

// ---------------------------------------------------------------------------
// Mock cart repository
// ---------------------------------------------------------------------------

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) List(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartItem), args.Error(1)
}

func (m *mockCartRepository) Add(ctx context.Context, cartID string, item *domain.CartItem) error {
	return m.Called(ctx, cartID, item).Error(0)
}

func (m *mockCartRepository) Remove(ctx context.Context, cartID, itemID string) error {
	return m.Called(ctx, cartID, itemID).Error(0)
}

func (m *mockCartRepository) Clear(ctx context.Context, cartID string) error {
	return m.Called(ctx, cartID).Error(0)
}

// ---------------------------------------------------------------------------
// Mock notifier
// ---------------------------------------------------------------------------

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Name() string { return "mock" }

func (m *mockNotifier) Notify(ctx context.Context, order *checkout.Order) error {
	return m.Called(ctx, order).Error(0)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// seededCatalog returns an in-memory catalog loaded with the sample data.
func seededCatalog(t *testing.T) *memory.CatalogRepository {
	t.Helper()

	cat, err := seed.Default()
	require.NoError(t, err)

	repo := memory.NewCatalogRepository()
	require.NoError(t, seed.Apply(context.Background(), repo, cat))
	return repo
}
