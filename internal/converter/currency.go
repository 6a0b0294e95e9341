package converter

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders d as symbol + thousands-grouped value with exactly
// two decimals: 1234.5 → "$1,234.50". Negative values keep the sign after
// the symbol ("$-5.00"), as point-of-sale refunds are exported.
func FormatCurrency(symbol string, d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	whole, frac, _ := strings.Cut(fixed, ".")
	return symbol + sign + groupThousands(whole) + "." + frac
}

// groupThousands inserts a comma every three digits from the right.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
