// Package money formats monetary amounts for display. All amounts in the
// system are Indonesian rupiah with no decimal places.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupiah renders an amount as "Rp 1.000.000" — rounded to whole rupiah
// with dot-separated thousands groups. A nil amount renders as "Rp 0".
func FormatRupiah(amount *decimal.Decimal) string {
	if amount == nil {
		return "Rp 0"
	}
	return FormatRupiahValue(*amount)
}

// FormatRupiahValue is FormatRupiah for a non-pointer amount.
func FormatRupiahValue(amount decimal.Decimal) string {
	rounded := amount.Round(0)

	negative := rounded.IsNegative()
	digits := rounded.Abs().String()

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString("Rp ")
	b.WriteString(groupThousands(digits))
	return b.String()
}

// FormatRupiahFloat accepts raw backend numbers that arrive as float64.
func FormatRupiahFloat(amount float64) string {
	return FormatRupiahValue(decimal.NewFromFloat(amount))
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
