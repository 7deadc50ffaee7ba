package checkout

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/horizonte/storefront/internal/domain"
)

// PaymentMethod is how the customer pays on delivery.
type PaymentMethod string

const (
	PaymentPix  PaymentMethod = "pix"
	PaymentCard PaymentMethod = "cartao"
	PaymentCash PaymentMethod = "dinheiro"
)

// IsValid reports whether m is a supported payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentPix, PaymentCard, PaymentCash:
		return true
	}
	return false
}

// Label is the customer-facing name of the method.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentPix:
		return "PIX"
	case PaymentCard:
		return "Cartão"
	case PaymentCash:
		return "Dinheiro"
	default:
		return string(m)
	}
}

// Customer is the delivery contact. Latitude and Longitude are recorded for
// the courier only.
type Customer struct {
	Name       string   `json:"name"`
	Street     string   `json:"rua"`
	Number     string   `json:"numero"`
	Block      string   `json:"quadra,omitempty"`
	Complement string   `json:"complemento,omitempty"`
	PostalCode string   `json:"cep"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

// Payment captures the payment choice. ChangeFor is the bill the customer
// will hand over when paying cash.
type Payment struct {
	Method      PaymentMethod    `json:"payment_method"`
	NeedsChange bool             `json:"needs_change"`
	ChangeFor   *decimal.Decimal `json:"change_amount,omitempty"`
}

// ChangeDue returns ChangeFor minus total for cash payments that asked for
// change, and zero otherwise. The result is informational and may be
// negative when the bill does not cover the total.
func (p Payment) ChangeDue(total decimal.Decimal) decimal.Decimal {
	if p.Method != PaymentCash || !p.NeedsChange || p.ChangeFor == nil || p.ChangeFor.IsZero() {
		return decimal.Zero
	}
	return p.ChangeFor.Sub(total)
}

// MapsLink returns a map URL for the customer's coordinates, or "" when
// either coordinate is missing.
func MapsLink(c Customer) string {
	if c.Latitude == nil || c.Longitude == nil {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/maps?q=%f,%f", *c.Latitude, *c.Longitude)
}

// FormatCustomerDetails renders the delivery and payment block appended to
// the order message.
func FormatCustomerDetails(c Customer, p Payment, total decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("*Cliente:* " + c.Name + "\n")

	addr := c.Street + ", " + c.Number
	if c.Block != "" {
		addr += ", Qd. " + c.Block
	}
	if c.Complement != "" {
		addr += " - " + c.Complement
	}
	b.WriteString("*Endereço:* " + addr + "\n")
	b.WriteString("*CEP:* " + c.PostalCode + "\n")
	if link := MapsLink(c); link != "" {
		b.WriteString("*Localização:* " + link + "\n")
	}

	b.WriteString("*Pagamento:* " + p.Method.Label())
	if p.Method == PaymentCash && p.NeedsChange && p.ChangeFor != nil && !p.ChangeFor.IsZero() {
		b.WriteString("\nTroco para: R$ " + amount(*p.ChangeFor))
		b.WriteString("\nTroco: R$ " + amount(p.ChangeDue(total)))
	}
	return b.String()
}

// ChatLink builds the chat deep-link that opens a conversation with number
// prefilled with message.
func ChatLink(number, message string) string {
	return "https://wa.me/" + number + "?text=" + encodeURIComponent(message)
}

// uriComponentUnescapes restores the characters a chat client expects to see
// literally after query escaping.
var uriComponentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeURIComponent(s string) string {
	return uriComponentUnescapes.Replace(url.QueryEscape(s))
}

// Order is a placed order as handed to the chat channel and published as an
// event. The cart is not cleared by placing it.
type Order struct {
	ID        string            `json:"id"`
	CartID    string            `json:"cart_id"`
	Items     []domain.CartItem `json:"items"`
	Summary   Summary           `json:"summary"`
	Customer  Customer          `json:"customer"`
	Payment   Payment           `json:"payment"`
	ChangeDue decimal.Decimal   `json:"change_due"`
	Message   string            `json:"message"`
	ChatLink  string            `json:"chat_link"`
	MapsLink  string            `json:"maps_link,omitempty"`
	PlacedAt  time.Time         `json:"placed_at"`
}

// NewOrder assembles an order from the cart contents. The message is the
// core order summary followed by the customer block.
func NewOrder(id, cartID, storeName, number string, items []domain.CartItem, c Customer, p Payment, now time.Time) Order {
	s := Aggregate(items)
	msg := FormatOrderMessage(storeName, items, s) + "\n\n" + FormatCustomerDetails(c, p, s.Total)
	return Order{
		ID:        id,
		CartID:    cartID,
		Items:     items,
		Summary:   s,
		Customer:  c,
		Payment:   p,
		ChangeDue: p.ChangeDue(s.Total),
		Message:   msg,
		ChatLink:  ChatLink(number, msg),
		MapsLink:  MapsLink(c),
		PlacedAt:  now,
	}
}
