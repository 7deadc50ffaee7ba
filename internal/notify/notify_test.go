package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonte/storefront/internal/checkout"
	"github.com/horizonte/storefront/internal/domain"
	apperrors "github.com/horizonte/storefront/pkg/errors"
	"github.com/horizonte/storefront/pkg/httpclient"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOrder() *checkout.Order {
	items := []domain.CartItem{
		{ID: "i1", ProductID: "milkshake", ProductName: "Milkshake", Size: "300ml", Price: decimal.NewFromInt(14), Quantity: 1},
	}
	o := checkout.NewOrder("order-1", "default", "Horizonte", "5565981041149", items,
		checkout.Customer{Name: "Ana", Street: "Rua A", Number: "10", PostalCode: "78000000"},
		checkout.Payment{Method: checkout.PaymentCard},
		time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	return &o
}

func newClient() *httpclient.CircuitBreakerClient {
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	return httpclient.NewCircuitBreakerClient(httpclient.New(cfg), httpclient.DefaultCircuitBreakerConfig("notify-test"), testLogger())
}

func TestWebhookNotifier_PostsPayload(t *testing.T) {
	var got WebhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	order := testOrder()
	n := NewWebhookNotifier(newClient(), server.URL, "5565981041149", testLogger())

	require.NoError(t, n.Notify(context.Background(), order))
	assert.Equal(t, "webhook", n.Name())
	assert.Equal(t, "order-1", got.OrderID)
	assert.Equal(t, "5565981041149", got.Destination)
	assert.Equal(t, order.Message, got.Message)
	assert.Equal(t, order.ChatLink, got.ChatLink)
}

func TestWebhookNotifier_RejectedRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"INVALID_INPUT","message":"destination not allowed"}}`))
	}))
	defer server.Close()

	err := NewWebhookNotifier(newClient(), server.URL, "5565981041149", testLogger()).Notify(context.Background(), testOrder())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "destination not allowed")
}

func TestWebhookNotifier_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	err := NewWebhookNotifier(newClient(), server.URL, "5565981041149", testLogger()).Notify(context.Background(), testOrder())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "post order webhook")
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, n.Notify(context.Background(), testOrder()))
	assert.Equal(t, "log", n.Name())
	assert.Contains(t, buf.String(), `"total":"19.00"`)
	assert.Contains(t, buf.String(), `"payment_method":"cartao"`)
}
