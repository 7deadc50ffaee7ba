package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders an amount for display, e.g. "R$ 1.234,50".
func FormatBRL(d decimal.Decimal) string {
	return "R$ " + brl.Sprintf("%.2f", d.Round(2).InexactFloat64())
}
