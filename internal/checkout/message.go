package checkout

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/horizonte/storefront/internal/domain"
)

// FormatOrderMessage renders the order summary handed to the chat channel.
// The output depends only on its arguments.
func FormatOrderMessage(storeName string, items []domain.CartItem, s Summary) string {
	lines := make([]string, 0, len(items))
	for i := range items {
		lines = append(lines, formatItem(&items[i]))
	}

	var b strings.Builder
	b.WriteString("*Pedido ")
	b.WriteString(storeName)
	b.WriteString("*\n\n")
	b.WriteString(strings.Join(lines, "\n\n"))
	b.WriteString("\n\n---\n")
	b.WriteString("Subtotal: R$ " + amount(s.Subtotal) + "\n")
	b.WriteString("Taxa de entrega: R$ " + amount(s.DeliveryFee) + "\n")
	b.WriteString("*Total: R$ " + amount(s.Total) + "*")
	return b.String()
}

func formatItem(item *domain.CartItem) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(item.Quantity))
	b.WriteString("x ")
	b.WriteString(item.ProductName)
	if item.Size != "" {
		b.WriteString(" (" + item.Size + ")")
	}
	if len(item.SelectedToppings) > 0 {
		b.WriteString("\nAcompanhamentos: ")
		b.WriteString(strings.Join(item.SelectedToppings, ", "))
	}
	b.WriteString(" - R$ ")
	b.WriteString(amount(item.LineTotal()))
	return b.String()
}

// amount renders a plain two-decimal figure with a dot separator.
func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
