package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Category groups products on the storefront. Categories are listed in
// ascending Order.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// ProductSize is a serving-size tier with its own fixed price.
type ProductSize struct {
	Label string          `json:"label"`
	Value string          `json:"value"`
	Price decimal.Decimal `json:"price"`
}

// sizeTiers is the fixed tier catalog. Products opt into a subset by value.
var sizeTiers = []ProductSize{
	{Label: "200ml", Value: "200ml", Price: decimal.NewFromInt(11)},
	{Label: "300ml", Value: "300ml", Price: decimal.NewFromInt(14)},
	{Label: "400ml", Value: "400ml", Price: decimal.NewFromInt(17)},
	{Label: "500ml", Value: "500ml", Price: decimal.NewFromInt(20)},
	{Label: "700ml", Value: "700ml", Price: decimal.NewFromInt(25)},
}

// SizeTiers returns a copy of the recognized size tiers in display order.
func SizeTiers() []ProductSize {
	return slices.Clone(sizeTiers)
}

// IsKnownSize reports whether value names one of the recognized size tiers.
func IsKnownSize(value string) bool {
	_, ok := lookupTier(value)
	return ok
}

func lookupTier(value string) (ProductSize, bool) {
	for _, s := range sizeTiers {
		if s.Value == value {
			return s, true
		}
	}
	return ProductSize{}, false
}

// Product is a catalog entry. Sizes lists the tier values it supports;
// Toppings holds the flat topping list and ToppingGroups the serialized
// grouped configuration. See ToppingConfig for how the two are reconciled.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	CategoryID    string          `json:"category_id"`
	BasePrice     decimal.Decimal `json:"base_price"`
	Image         string          `json:"image,omitempty"`
	IsPromotion   bool            `json:"is_promotion"`
	IsFeatured    bool            `json:"is_featured"`
	Sizes         []string        `json:"sizes,omitempty"`
	Toppings      []string        `json:"toppings,omitempty"`
	ToppingGroups string          `json:"topping_groups,omitempty"`
}

// HasSizes reports whether the product requires a size selection.
func (p *Product) HasSizes() bool {
	return len(p.Sizes) > 0
}

// AvailableSizes returns the tiers this product supports, in tier order.
// Declared values that are not recognized tiers are skipped.
func (p *Product) AvailableSizes() []ProductSize {
	if !p.HasSizes() {
		return nil
	}
	out := make([]ProductSize, 0, len(p.Sizes))
	for _, s := range sizeTiers {
		if slices.Contains(p.Sizes, s.Value) {
			out = append(out, s)
		}
	}
	return out
}

// FindSize returns the tier for value if the product supports it.
func (p *Product) FindSize(value string) (ProductSize, bool) {
	if value == "" || !slices.Contains(p.Sizes, value) {
		return ProductSize{}, false
	}
	return lookupTier(value)
}
