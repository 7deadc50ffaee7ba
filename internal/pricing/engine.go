// Package pricing turns a product configuration into a line-item price.
// Every function here is pure; callers own validation beyond the advisories
// returned on LineItem.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/horizonte/storefront/internal/domain"
)

// Advisory messages returned on LineItem.Errors.
const (
	AdvisorySizeRequired = "size selection required"
)

// LineItem is the priced result of one product configuration.
type LineItem struct {
	UnitPrice  decimal.Decimal    `json:"unit_price"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	Quantity   int                `json:"quantity"`
	Size       string             `json:"size,omitempty"`
	Toppings   []string           `json:"toppings,omitempty"`
	Mode       domain.ToppingMode `json:"mode"`
	Errors     []string           `json:"errors"`
}

// CanAddToCart reports whether the configuration is complete.
func (li *LineItem) CanAddToCart() bool {
	return len(li.Errors) == 0
}

// ComputeLineItem prices a product for the given size, topping selection and
// quantity. Quantity is clamped to a minimum of 1. Unknown sizes fall back to
// the base price and unknown topping names cost nothing.
func ComputeLineItem(p *domain.Product, size string, toppings []string, quantity int) LineItem {
	if quantity < 1 {
		quantity = 1
	}

	cfg := p.ToppingConfig()
	unit := basePrice(p, size).Add(ToppingsSurcharge(cfg, toppings)).Round(2)

	li := LineItem{
		UnitPrice:  unit,
		TotalPrice: unit.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
		Quantity:   quantity,
		Toppings:   toppings,
		Mode:       domain.ToppingModeNone,
		Errors:     advisories(p, cfg, size, toppings),
	}
	if cfg != nil {
		li.Mode = cfg.Mode()
	}
	if p.HasSizes() {
		li.Size = size
	}
	return li
}

func basePrice(p *domain.Product, size string) decimal.Decimal {
	if !p.HasSizes() {
		return p.BasePrice
	}
	if s, ok := p.FindSize(size); ok {
		return s.Price
	}
	return p.BasePrice
}

// ToppingsSurcharge sums the cost of the selected toppings under cfg.
// A nil cfg costs nothing.
func ToppingsSurcharge(cfg domain.ToppingConfig, selected []string) decimal.Decimal {
	switch c := cfg.(type) {
	case domain.GroupedToppings:
		return groupedSurcharge(c, selected)
	case domain.FlatToppings:
		return flatSurcharge(c, selected)
	default:
		return decimal.Zero
	}
}

// groupedSurcharge adds, for each selected name, the price of the matching
// item in every group that lists it. Over-selection is not rejected here.
func groupedSurcharge(groups domain.GroupedToppings, selected []string) decimal.Decimal {
	total := decimal.Zero
	for _, name := range selected {
		for i := range groups {
			if item, ok := groups[i].FindItem(name); ok && item.Price != nil {
				total = total.Add(*item.Price)
			}
		}
	}
	return total
}

// flatSurcharge charges every paid-tier selection and every free-tier
// selection past FreeToppingLimit, counted in selection order.
func flatSurcharge(flat domain.FlatToppings, selected []string) decimal.Decimal {
	free := make(map[string]struct{}, domain.FreeToppingLimit)
	for _, name := range flat.FreeTier() {
		free[name] = struct{}{}
	}
	paid := make(map[string]struct{})
	for _, name := range flat.PaidTier() {
		paid[name] = struct{}{}
	}

	total := decimal.Zero
	freeCount := 0
	for _, name := range selected {
		if _, ok := paid[name]; ok {
			total = total.Add(domain.ToppingSurcharge())
			continue
		}
		if _, ok := free[name]; ok {
			freeCount++
			if freeCount > domain.FreeToppingLimit {
				total = total.Add(domain.ToppingSurcharge())
			}
		}
	}
	return total
}

func advisories(p *domain.Product, cfg domain.ToppingConfig, size string, selected []string) []string {
	errs := []string{}
	if p.HasSizes() && size == "" {
		errs = append(errs, AdvisorySizeRequired)
	}
	if groups, ok := cfg.(domain.GroupedToppings); ok {
		for i := range groups {
			g := &groups[i]
			if g.Required && countInGroup(g, selected) == 0 {
				errs = append(errs, fmt.Sprintf("selection required for %q", g.Title))
			}
		}
	}
	return errs
}

func countInGroup(g *domain.ToppingGroup, selected []string) int {
	n := 0
	for _, name := range selected {
		if _, ok := g.FindItem(name); ok {
			n++
		}
	}
	return n
}

// CheckSelections enforces the per-group maxSelections cap. Flat and
// ungrouped products accept any selection.
func CheckSelections(p *domain.Product, selected []string) error {
	groups, ok := p.ToppingConfig().(domain.GroupedToppings)
	if !ok {
		return nil
	}
	for i := range groups {
		g := &groups[i]
		if n := countInGroup(g, selected); n > g.SelectionLimit() {
			return fmt.Errorf("group %q allows at most %d selections, got %d", g.Title, g.SelectionLimit(), n)
		}
	}
	return nil
}
