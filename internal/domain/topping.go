package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Flat topping policy. The first FreeToppingLimit entries of a product's
// flat list form the free tier; everything after is paid tier.
const FreeToppingLimit = 5

var toppingSurcharge = decimal.NewFromInt(2)

// ToppingSurcharge is charged per paid-tier topping and per free-tier
// selection beyond FreeToppingLimit.
func ToppingSurcharge() decimal.Decimal {
	return toppingSurcharge
}

// ToppingItem is one choice within a group. A nil Price means free.
type ToppingItem struct {
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// ToppingGroup is a titled set of topping choices with a selection cap.
// The JSON names follow the serialized payload stored on products.
type ToppingGroup struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	MaxSelections int           `json:"maxSelections"`
	Required      bool          `json:"required"`
	Items         []ToppingItem `json:"items"`
}

// FindItem returns the item with the given name.
func (g *ToppingGroup) FindItem(name string) (ToppingItem, bool) {
	for _, it := range g.Items {
		if it.Name == name {
			return it, true
		}
	}
	return ToppingItem{}, false
}

// SelectionLimit is MaxSelections, treating an unset cap as 1.
func (g *ToppingGroup) SelectionLimit() int {
	if g.MaxSelections <= 0 {
		return 1
	}
	return g.MaxSelections
}

// ParseToppingGroups decodes a serialized group list. Empty or malformed
// input yields an empty list so a bad configuration never breaks the
// product view.
func ParseToppingGroups(raw string) []ToppingGroup {
	if strings.TrimSpace(raw) == "" {
		return []ToppingGroup{}
	}
	var groups []ToppingGroup
	if err := json.Unmarshal([]byte(raw), &groups); err != nil {
		return []ToppingGroup{}
	}
	if groups == nil {
		return []ToppingGroup{}
	}
	return groups
}

// ValidateToppingGroups is the strict counterpart of ParseToppingGroups,
// used when an administrator saves a configuration.
func ValidateToppingGroups(raw string) ([]ToppingGroup, error) {
	var groups []ToppingGroup
	if err := json.Unmarshal([]byte(raw), &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// ToppingMode names the topping representation a product uses.
type ToppingMode string

const (
	ToppingModeNone    ToppingMode = "none"
	ToppingModeGrouped ToppingMode = "grouped"
	ToppingModeFlat    ToppingMode = "flat"
)

// ToppingConfig is either GroupedToppings or FlatToppings.
type ToppingConfig interface {
	Mode() ToppingMode
	toppingConfig()
}

// GroupedToppings carries explicit per-item prices.
type GroupedToppings []ToppingGroup

func (GroupedToppings) Mode() ToppingMode { return ToppingModeGrouped }
func (GroupedToppings) toppingConfig()    {}

// FlatToppings carries the flat list with the positional free/paid split.
type FlatToppings []string

func (FlatToppings) Mode() ToppingMode { return ToppingModeFlat }
func (FlatToppings) toppingConfig()    {}

// FreeTier returns the first FreeToppingLimit entries.
func (f FlatToppings) FreeTier() []string {
	if len(f) <= FreeToppingLimit {
		return f
	}
	return f[:FreeToppingLimit]
}

// PaidTier returns the entries after the free tier.
func (f FlatToppings) PaidTier() []string {
	if len(f) <= FreeToppingLimit {
		return nil
	}
	return f[FreeToppingLimit:]
}

// ToppingConfig resolves the product's topping representation. A grouped
// configuration that parses to at least one group wins; otherwise a
// non-empty flat list is used. Returns nil when the product has no toppings.
func (p *Product) ToppingConfig() ToppingConfig {
	if groups := ParseToppingGroups(p.ToppingGroups); len(groups) > 0 {
		return GroupedToppings(groups)
	}
	if len(p.Toppings) > 0 {
		return FlatToppings(p.Toppings)
	}
	return nil
}

// ToppingModeOf returns the mode of the product's resolved configuration.
func (p *Product) ToppingModeOf() ToppingMode {
	cfg := p.ToppingConfig()
	if cfg == nil {
		return ToppingModeNone
	}
	return cfg.Mode()
}
