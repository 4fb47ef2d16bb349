// Package money holds the rounding and formatting rules for prices and
// balances. Amounts are decimal values; nothing here touches float64.
package money

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Zero is the zero amount.
var Zero = decimal.Zero

// Round2 rounds to whole cents, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format renders an amount with two decimals and drops a trailing ".00",
// so 500 prints as "500" and 12.5 as "12.50".
func Format(d decimal.Decimal) string {
	return strings.TrimSuffix(d.StringFixed(2), ".00")
}

// Parse reads a decimal amount such as "1000" or "19.99".
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "parse amount %q", s)
	}
	return d, nil
}

// MustParse is Parse for constants known to be valid.
func MustParse(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}
