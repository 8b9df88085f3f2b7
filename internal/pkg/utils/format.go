package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"wallet_tracker/internal/domain/entity"
)

var (
	printer  = message.NewPrinter(language.English)
	hundred  = decimal.NewFromInt(100)
	smallQty = decimal.NewFromInt(1)
	maxInt   = decimal.NewFromInt(math.MaxInt64)
)

// FormatUSD renders a dollar amount with thousands separators and two decimals.
// Returns false when the value did not parse.
func FormatUSD(n entity.Numeric) (string, bool) {
	d, ok := n.Decimal()
	if !ok {
		return "", false
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + "$" + groupThousands(d.StringFixed(2)), true
}

// FormatPercent renders a fractional change (0.05) as a signed percentage ("+5.00%").
func FormatPercent(n entity.Numeric) (string, bool) {
	d, ok := n.Decimal()
	if !ok {
		return "", false
	}
	pct := d.Mul(hundred).Round(2)
	s := pct.StringFixed(2) + "%"
	if pct.IsPositive() {
		s = "+" + s
	}
	return s, true
}

// FormatQuantity renders a token amount: four decimals from 1 upwards, up to
// eight below 1, trailing zeros trimmed.
func FormatQuantity(n entity.Numeric) (string, bool) {
	d, ok := n.Decimal()
	if !ok {
		return "", false
	}
	places := int32(4)
	if d.Abs().LessThan(smallQty) {
		places = 8
	}
	s := d.Round(places).StringFixed(places)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		s = "0"
	}
	return groupThousands(s), true
}

// groupThousands inserts locale separators into the integer part of a plain decimal string.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	whole, err := decimal.NewFromString(intPart)
	if err != nil || whole.GreaterThan(maxInt) {
		if neg {
			return "-" + s
		}
		return s
	}
	out := printer.Sprintf("%d", whole.IntPart())
	if hasFrac {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
