package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/horizonte/storefront/internal/checkout"
	"github.com/horizonte/storefront/internal/pricing"
	"github.com/horizonte/storefront/internal/service"
	"github.com/horizonte/storefront/pkg/httputil"
	"github.com/horizonte/storefront/pkg/middleware"
	"github.com/horizonte/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints. The cart is the one
// resolved by the CartScope middleware.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding an item to the cart.
// There is no price field; the server prices the line itself.
type AddItemRequest struct {
	ProductID string   `json:"product_id" validate:"required,max=64"`
	Size      string   `json:"size"`
	Toppings  []string `json:"toppings" validate:"max=30"`
	Quantity  int      `json:"quantity"`
}

// --- Response DTOs ---

// SummaryDisplay carries the summary amounts formatted for display.
type SummaryDisplay struct {
	Subtotal    string `json:"subtotal"`
	DeliveryFee string `json:"delivery_fee"`
	Total       string `json:"total"`
}

func newSummaryDisplay(s checkout.Summary) SummaryDisplay {
	return SummaryDisplay{
		Subtotal:    pricing.FormatBRL(s.Subtotal),
		DeliveryFee: pricing.FormatBRL(s.DeliveryFee),
		Total:       pricing.FormatBRL(s.Total),
	}
}

// CartResponse is the cart view plus display strings.
type CartResponse struct {
	*service.CartView
	Display SummaryDisplay `json:"display"`
}

// --- Handlers ---

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetCart(r.Context(), middleware.CartID(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, CartResponse{CartView: view, Display: newSummaryDisplay(view.Summary)})
}

// AddItem handles POST /api/cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	item, err := h.service.AddItem(r.Context(), middleware.CartID(r.Context()), service.AddItemInput{
		ProductID: req.ProductID,
		Size:      req.Size,
		Toppings:  req.Toppings,
		Quantity:  req.Quantity,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, item)
}

// RemoveItem handles DELETE /api/cart/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveItem(r.Context(), middleware.CartID(r.Context()), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteNoContent(w)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearCart(r.Context(), middleware.CartID(r.Context())); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteNoContent(w)
}
