// Package checkout folds cart items into totals and renders the order
// handoff message sent to the store's chat channel.
package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/horizonte/storefront/internal/domain"
)

var deliveryFee = decimal.NewFromInt(5)

// DeliveryFee is the flat fee charged on every non-empty order.
func DeliveryFee() decimal.Decimal {
	return deliveryFee
}

// Summary holds the cart totals.
type Summary struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"item_count"`
}

// Aggregate computes the totals for items. ItemCount is the number of line
// entries, not the sum of quantities.
func Aggregate(items []domain.CartItem) Summary {
	subtotal := decimal.Zero
	for i := range items {
		subtotal = subtotal.Add(items[i].LineTotal())
	}

	fee := decimal.Zero
	if subtotal.IsPositive() {
		fee = DeliveryFee()
	}

	return Summary{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal.Add(fee),
		ItemCount:   len(items),
	}
}

// IsEmpty reports whether there is nothing to order.
func (s Summary) IsEmpty() bool {
	return s.ItemCount == 0
}
