// Package notify hands placed orders to the store's messaging channel.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/horizonte/storefront/internal/checkout"
	"github.com/horizonte/storefront/pkg/httpclient"
)

// Notifier delivers an order message to the store.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, order *checkout.Order) error
}

// WebhookPayload is the JSON body posted to the webhook.
type WebhookPayload struct {
	OrderID     string `json:"order_id"`
	Destination string `json:"destination"`
	Message     string `json:"message"`
	ChatLink    string `json:"chat_link"`
}

type jsonPoster interface {
	PostJSON(ctx context.Context, url string, v any) (*http.Response, error)
}

// WebhookNotifier posts the order message to an HTTP endpoint, typically a
// messaging gateway that forwards it to the store's WhatsApp number.
type WebhookNotifier struct {
	client      jsonPoster
	url         string
	destination string
	logger      *slog.Logger
}

// NewWebhookNotifier creates a notifier posting to url through client.
// destination is the store's chat number.
func NewWebhookNotifier(client *httpclient.CircuitBreakerClient, url, destination string, logger *slog.Logger) *WebhookNotifier {
	return newWebhookNotifier(client, url, destination, logger)
}

func newWebhookNotifier(client jsonPoster, url, destination string, logger *slog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		client:      client,
		url:         url,
		destination: destination,
		logger:      logger,
	}
}

// Name returns the name of this notifier.
func (n *WebhookNotifier) Name() string {
	return "webhook"
}

// Notify posts the order. Any non-2xx answer is an error.
func (n *WebhookNotifier) Notify(ctx context.Context, order *checkout.Order) error {
	resp, err := n.client.PostJSON(ctx, n.url, WebhookPayload{
		OrderID:     order.ID,
		Destination: n.destination,
		Message:     order.Message,
		ChatLink:    order.ChatLink,
	})
	if err != nil {
		return fmt.Errorf("post order webhook: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return httpclient.ParseResponseError(resp, "order webhook")
	}
	_ = resp.Body.Close()

	n.logger.InfoContext(ctx, "order handed to webhook",
		slog.String("order_id", order.ID),
		slog.Int("status", resp.StatusCode),
	)
	return nil
}

// LogNotifier only logs the handoff. It is used when no webhook is
// configured; the customer still opens the chat link themselves.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Name returns the name of this notifier.
func (n *LogNotifier) Name() string {
	return "log"
}

// Notify logs the order summary.
func (n *LogNotifier) Notify(ctx context.Context, order *checkout.Order) error {
	n.logger.InfoContext(ctx, "order ready for chat handoff",
		slog.String("order_id", order.ID),
		slog.String("total", order.Summary.Total.StringFixed(2)),
		slog.String("payment_method", string(order.Payment.Method)),
	)
	return nil
}
