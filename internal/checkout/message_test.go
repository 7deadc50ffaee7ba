package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/horizonte/storefront/internal/domain"
)

const storeName = "Horizonte - Sorvete e Açaí"

func TestFormatOrderMessage(t *testing.T) {
	items := sampleItems()
	got := FormatOrderMessage(storeName, items, Aggregate(items))

	want := "*Pedido Horizonte - Sorvete e Açaí*\n\n" +
		"1x Copo de Açaí\nAcompanhamentos: Granola, Banana - R$ 20.00\n\n" +
		"2x Sorvete de Creme (300ml) - R$ 28.00\n\n" +
		"---\n" +
		"Subtotal: R$ 48.00\n" +
		"Taxa de entrega: R$ 5.00\n" +
		"*Total: R$ 53.00*"
	assert.Equal(t, want, got)
}

func TestFormatOrderMessage_FractionalPrices(t *testing.T) {
	items := []domain.CartItem{{ProductName: "Milkshake", Price: dec("12.5"), Quantity: 3}}
	got := FormatOrderMessage(storeName, items, Aggregate(items))

	assert.Contains(t, got, "3x Milkshake - R$ 37.50")
	assert.Contains(t, got, "Subtotal: R$ 37.50\n")
	assert.Contains(t, got, "*Total: R$ 42.50*")
}

func TestFormatOrderMessage_Idempotent(t *testing.T) {
	items := sampleItems()
	s := Aggregate(items)

	assert.Equal(t, FormatOrderMessage(storeName, items, s), FormatOrderMessage(storeName, items, s))
}
