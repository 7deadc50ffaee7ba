package http

import (
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/horizonte/storefront/internal/checkout"
	"github.com/horizonte/storefront/internal/service"
	"github.com/horizonte/storefront/pkg/httputil"
	"github.com/horizonte/storefront/pkg/middleware"
	"github.com/horizonte/storefront/pkg/validator"
)

// CheckoutHandler handles the order handoff endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CheckoutRequest is the checkout form. ChangeAmount is required when a cash
// payment asks for change.
type CheckoutRequest struct {
	Name          string           `json:"name" validate:"required,max=120"`
	Street        string           `json:"rua" validate:"required,max=200"`
	Number        string           `json:"numero" validate:"required,max=20"`
	Block         string           `json:"quadra" validate:"max=50"`
	Complement    string           `json:"complemento" validate:"max=200"`
	PostalCode    string           `json:"cep" validate:"required,min=8,max=9"`
	PaymentMethod string           `json:"payment_method" validate:"required,oneof=pix cartao dinheiro"`
	NeedsChange   bool             `json:"needs_change"`
	ChangeAmount  *decimal.Decimal `json:"change_amount" validate:"required_if=PaymentMethod dinheiro NeedsChange true"`
	Latitude      *float64         `json:"latitude" validate:"omitempty,latitude"`
	Longitude     *float64         `json:"longitude" validate:"omitempty,longitude"`
}

// --- Response DTOs ---

// CheckoutResponse is the placed order with its rendered blocks.
type CheckoutResponse struct {
	*checkout.Order
	CustomerDetails string         `json:"customer_details"`
	Display         SummaryDisplay `json:"display"`
}

// PreviewResponse is the checkout preview plus display strings.
type PreviewResponse struct {
	*service.Preview
	Display SummaryDisplay `json:"display"`
}

// --- Handlers ---

// PlaceOrder handles POST /api/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	input := service.PlaceOrderInput{
		Customer: checkout.Customer{
			Name:       req.Name,
			Street:     req.Street,
			Number:     req.Number,
			Block:      req.Block,
			Complement: req.Complement,
			PostalCode: req.PostalCode,
			Latitude:   req.Latitude,
			Longitude:  req.Longitude,
		},
		Payment: checkout.Payment{
			Method:      checkout.PaymentMethod(req.PaymentMethod),
			NeedsChange: req.NeedsChange,
			ChangeFor:   req.ChangeAmount,
		},
	}

	order, err := h.service.PlaceOrder(r.Context(), middleware.CartID(r.Context()), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, CheckoutResponse{
		Order:           order,
		CustomerDetails: checkout.FormatCustomerDetails(order.Customer, order.Payment, order.Summary.Total),
		Display:         newSummaryDisplay(order.Summary),
	})
}

// Preview handles GET /api/checkout/preview
func (h *CheckoutHandler) Preview(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Preview(r.Context(), middleware.CartID(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, PreviewResponse{Preview: p, Display: newSummaryDisplay(p.Summary)})
}
