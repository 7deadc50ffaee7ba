package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/horizonte/storefront/internal/domain"
	"github.com/horizonte/storefront/internal/pricing"
	"github.com/horizonte/storefront/internal/repository"
	"github.com/horizonte/storefront/internal/service"
	"github.com/horizonte/storefront/pkg/httputil"
	"github.com/horizonte/storefront/pkg/validator"
)

// CatalogHandler handles HTTP requests for catalog browsing and quotes.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// QuoteRequest is the JSON request body for pricing a configuration.
type QuoteRequest struct {
	Size     string   `json:"size"`
	Toppings []string `json:"toppings" validate:"max=30"`
	Quantity int      `json:"quantity"`
}

// --- Response DTOs ---

// QuoteResponse is the priced configuration with display strings.
type QuoteResponse struct {
	ProductID    string             `json:"product_id"`
	ProductName  string             `json:"product_name"`
	Size         string             `json:"size,omitempty"`
	Toppings     []string           `json:"toppings,omitempty"`
	Quantity     int                `json:"quantity"`
	Mode         domain.ToppingMode `json:"mode"`
	UnitPrice    decimal.Decimal    `json:"unit_price"`
	TotalPrice   decimal.Decimal    `json:"total_price"`
	UnitDisplay  string             `json:"unit_price_display"`
	TotalDisplay string             `json:"total_price_display"`
	Errors       []string           `json:"errors"`
	CanAddToCart bool               `json:"can_add_to_cart"`
}

// --- Handlers ---

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, cats)
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ProductFilter{
		CategoryID: q.Get("categoryId"),
		Search:     q.Get("q"),
	}

	var err error
	if filter.Promotion, err = boolParam(q.Get("promotion")); err != nil {
		writeInvalidParameter(w, "promotion must be true or false")
		return
	}
	if filter.Featured, err = boolParam(q.Get("featured")); err != nil {
		writeInvalidParameter(w, "featured must be true or false")
		return
	}

	products, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, p)
}

// ListSizes handles GET /api/sizes
func (h *CatalogHandler) ListSizes(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.Sizes())
}

// Quote handles POST /api/products/{id}/quote
func (h *CatalogHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	p, li, err := h.service.Quote(r.Context(), chi.URLParam(r, "id"), service.QuoteInput{
		Size:     req.Size,
		Toppings: req.Toppings,
		Quantity: req.Quantity,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, QuoteResponse{
		ProductID:    p.ID,
		ProductName:  p.Name,
		Size:         li.Size,
		Toppings:     li.Toppings,
		Quantity:     li.Quantity,
		Mode:         li.Mode,
		UnitPrice:    li.UnitPrice,
		TotalPrice:   li.TotalPrice,
		UnitDisplay:  pricing.FormatBRL(li.UnitPrice),
		TotalDisplay: pricing.FormatBRL(li.TotalPrice),
		Errors:       li.Errors,
		CanAddToCart: li.CanAddToCart(),
	})
}

// boolParam parses an optional boolean query value. Empty means unset.
func boolParam(v string) (*bool, error) {
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func writeInvalidParameter(w http.ResponseWriter, msg string) {
	httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
		Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: msg},
	})
}
