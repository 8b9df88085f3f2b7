package entity

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// maxNumericExponent bounds the base-10 exponent of an accepted value. Wider
// exponents expand into huge coefficients on every comparison or sum.
const maxNumericExponent = 40

// Numeric is an optional decimal field as delivered by the price feed: it may
// arrive as a JSON string, a JSON number, or be missing entirely.
// The zero value is an absent number.
type Numeric struct {
	raw   string
	value decimal.Decimal
	valid bool
}

// NullNumeric returns an absent number.
func NullNumeric() Numeric {
	return Numeric{}
}

// NumericFromString parses s as a finite decimal. Unparseable input, and
// input whose exponent lies outside ±maxNumericExponent, yields an invalid
// Numeric that still remembers the raw text.
func NumericFromString(s string) Numeric {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Numeric{raw: s}
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil || !exponentInRange(d) {
		return Numeric{raw: s}
	}
	return Numeric{raw: s, value: d, valid: true}
}

// NumericFromFloat wraps f; NaN, infinities and out-of-range exponents are
// treated as unparseable.
func NumericFromFloat(f float64) Numeric {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Numeric{raw: fmt.Sprint(f)}
	}
	d := decimal.NewFromFloat(f)
	if !exponentInRange(d) {
		return Numeric{raw: fmt.Sprint(f)}
	}
	return Numeric{raw: d.String(), value: d, valid: true}
}

func exponentInRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	return exp >= -maxNumericExponent && exp <= maxNumericExponent
}

// NumericFromDecimal wraps an already parsed decimal.
func NumericFromDecimal(d decimal.Decimal) Numeric {
	return Numeric{raw: d.String(), value: d, valid: true}
}

// ParseNumeric accepts whatever shape the upstream data used for a numeric
// field and never fails.
func ParseNumeric(v any) Numeric {
	switch n := v.(type) {
	case nil:
		return NullNumeric()
	case Numeric:
		return n
	case *Numeric:
		if n == nil {
			return NullNumeric()
		}
		return *n
	case string:
		return NumericFromString(n)
	case *string:
		if n == nil {
			return NullNumeric()
		}
		return NumericFromString(*n)
	case json.Number:
		return NumericFromString(n.String())
	case decimal.Decimal:
		return NumericFromDecimal(n)
	case float64:
		return NumericFromFloat(n)
	case float32:
		return NumericFromFloat(float64(n))
	case int:
		return NumericFromDecimal(decimal.NewFromInt(int64(n)))
	case int32:
		return NumericFromDecimal(decimal.NewFromInt32(n))
	case int64:
		return NumericFromDecimal(decimal.NewFromInt(n))
	case uint64:
		return NumericFromDecimal(decimal.NewFromUint64(n))
	default:
		return Numeric{raw: fmt.Sprint(v)}
	}
}

// ParseOrZero is the conversion shared by sorting and aggregation: anything
// that is not a finite number counts as zero.
func ParseOrZero(v any) decimal.Decimal {
	return ParseNumeric(v).OrZero()
}

// Valid reports whether the field held a finite number.
func (n Numeric) Valid() bool {
	return n.valid
}

// Raw returns the text the value was parsed from.
func (n Numeric) Raw() string {
	return n.raw
}

// Decimal returns the parsed value and whether it is valid.
func (n Numeric) Decimal() (decimal.Decimal, bool) {
	if !n.valid {
		return decimal.Zero, false
	}
	return n.value, true
}

// OrZero returns the parsed value, or zero when the field is absent or
// unparseable.
func (n Numeric) OrZero() decimal.Decimal {
	if !n.valid {
		return decimal.Zero
	}
	return n.value
}

// Float64 returns OrZero as a float64.
func (n Numeric) Float64() float64 {
	f, _ := n.OrZero().Float64()
	return f
}

func (n Numeric) String() string {
	if !n.valid {
		return ""
	}
	return n.value.String()
}

// MarshalJSON writes the canonical decimal string, or null when invalid.
func (n Numeric) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return []byte(`"` + n.value.String() + `"`), nil
}

// UnmarshalJSON accepts a string, a number or null. Any other shape leaves the
// field invalid instead of failing the whole document.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	switch {
	case text == "" || text == "null":
		*n = NullNumeric()
	case strings.HasPrefix(text, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = Numeric{raw: text}
			return nil
		}
		*n = NumericFromString(s)
	default:
		*n = NumericFromString(text)
	}
	return nil
}
