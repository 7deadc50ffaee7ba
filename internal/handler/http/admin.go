package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/horizonte/storefront/internal/service"
	"github.com/horizonte/storefront/pkg/httputil"
	"github.com/horizonte/storefront/pkg/validator"
)

// AdminHandler handles catalog management endpoints.
type AdminHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(svc *service.CatalogService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		service: svc,
		logger:  logger,
	}
}

// StringList decodes either a JSON array of strings or a single
// comma-separated string, which is what the admin form submits.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = arr
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("expected an array of strings or a comma-separated string")
	}
	*l = strings.Split(s, ",")
	return nil
}

// GroupsPayload holds a topping group configuration sent either as the
// serialized string stored on products or as the JSON array itself.
type GroupsPayload string

func (g *GroupsPayload) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*g = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = GroupsPayload(s)
	default:
		*g = GroupsPayload(data)
	}
	return nil
}

// --- Request DTOs ---

// CreateCategoryRequest is the JSON request body for creating a category.
type CreateCategoryRequest struct {
	ID    string `json:"id" validate:"omitempty,max=64"`
	Name  string `json:"name" validate:"required,max=100"`
	Order int    `json:"order" validate:"gte=0"`
}

// CreateProductRequest is the JSON request body for creating a product.
type CreateProductRequest struct {
	ID            string          `json:"id" validate:"omitempty,max=64"`
	Name          string          `json:"name" validate:"required,max=200"`
	Description   string          `json:"description" validate:"max=1000"`
	CategoryID    string          `json:"category_id" validate:"required"`
	BasePrice     decimal.Decimal `json:"base_price"`
	Image         string          `json:"image" validate:"max=500"`
	IsPromotion   bool            `json:"is_promotion"`
	IsFeatured    bool            `json:"is_featured"`
	Sizes         StringList      `json:"sizes"`
	Toppings      StringList      `json:"toppings"`
	ToppingGroups GroupsPayload   `json:"topping_groups"`
}

// UpdateProductRequest is the JSON request body for a partial product
// update. Absent fields are left unchanged.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description" validate:"omitempty,max=1000"`
	CategoryID    *string          `json:"category_id" validate:"omitempty,min=1"`
	BasePrice     *decimal.Decimal `json:"base_price"`
	Image         *string          `json:"image" validate:"omitempty,max=500"`
	IsPromotion   *bool            `json:"is_promotion"`
	IsFeatured    *bool            `json:"is_featured"`
	Sizes         *StringList      `json:"sizes"`
	Toppings      *StringList      `json:"toppings"`
	ToppingGroups *GroupsPayload   `json:"topping_groups"`
}

// --- Handlers ---

// CreateCategory handles POST /api/admin/categories
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	c, err := h.service.CreateCategory(r.Context(), service.CreateCategoryInput{
		ID:    req.ID,
		Name:  req.Name,
		Order: req.Order,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, c)
}

// CreateProduct handles POST /api/admin/products
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	p, err := h.service.CreateProduct(r.Context(), service.ProductInput{
		ID:            req.ID,
		Name:          req.Name,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		BasePrice:     req.BasePrice,
		Image:         req.Image,
		IsPromotion:   req.IsPromotion,
		IsFeatured:    req.IsFeatured,
		Sizes:         req.Sizes,
		Toppings:      req.Toppings,
		ToppingGroups: string(req.ToppingGroups),
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, p)
}

// UpdateProduct handles PUT /api/admin/products/{id}
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	patch := service.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		BasePrice:   req.BasePrice,
		Image:       req.Image,
		IsPromotion: req.IsPromotion,
		IsFeatured:  req.IsFeatured,
	}
	if req.Sizes != nil {
		sizes := []string(*req.Sizes)
		patch.Sizes = &sizes
	}
	if req.Toppings != nil {
		toppings := []string(*req.Toppings)
		patch.Toppings = &toppings
	}
	if req.ToppingGroups != nil {
		groups := string(*req.ToppingGroups)
		patch.ToppingGroups = &groups
	}

	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, p)
}

// DeleteProduct handles DELETE /api/admin/products/{id}
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteNoContent(w)
}
