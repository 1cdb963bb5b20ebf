package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount as "$X,XXX.XX", rounding half away from zero
func FormatMoney(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	negative := d.IsNegative()
	s := d.Abs().StringFixed(2)

	dotPos := len(s) - 3
	intPart := s[:dotPos]
	decPart := s[dotPos:]

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	prefix := "$"
	if negative {
		prefix = "-$"
	}
	return prefix + b.String() + decPart
}

// FormatQuantity renders a quantity without trailing zeros
func FormatQuantity(q float64) string {
	return decimal.NewFromFloat(q).String()
}
