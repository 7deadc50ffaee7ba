package domain

import "github.com/shopspring/decimal"

// DefaultCartID scopes requests that do not name a cart.
const DefaultCartID = "default"

// CartItem is a priced snapshot of one product configuration. Price is the
// unit price with size and topping surcharges already applied; later
// catalog edits do not change it.
type CartItem struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	Size             string          `json:"size,omitempty"`
	Price            decimal.Decimal `json:"price"`
	Quantity         int             `json:"quantity"`
	SelectedToppings []string        `json:"selected_toppings,omitempty"`
}

// LineTotal returns Price multiplied by Quantity.
func (i *CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
