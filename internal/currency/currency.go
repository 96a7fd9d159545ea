// Package currency implements the money normalization used by every write
// path: all persisted amounts are integers in a single canonical currency
// (USD), converted at write time with one shared rate table. The same table
// drives display-time conversion in the opposite direction, so the
// normalizer and the formatter can never drift apart.
package currency

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Code identifies a supported currency.
type Code string

const (
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	INR Code = "INR"
	JPY Code = "JPY"
)

// Canonical is the base currency all amounts are persisted in.
const Canonical = USD

// ErrUnsupportedCurrency is returned for any code outside the fixed set.
// Conversion is rejected outright; callers must never store an unconverted
// amount under a canonical-currency assumption.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// rates holds units of foreign currency per 1 USD. This is the single rate
// table in the system; static by design, no live fetching.
var rates = map[Code]decimal.Decimal{
	USD: decimal.RequireFromString("1"),
	EUR: decimal.RequireFromString("0.92"),
	GBP: decimal.RequireFromString("0.81"),
	INR: decimal.RequireFromString("82.5"),
	JPY: decimal.RequireFromString("150"),
}

// Codes returns the supported currency codes in stable order.
func Codes() []Code {
	return []Code{USD, EUR, GBP, INR, JPY}
}

// Supported reports whether code is a member of the fixed currency set.
func Supported(code Code) bool {
	_, ok := rates[code]
	return ok
}

// Rate returns the units-of-foreign-per-USD rate for code.
func Rate(code Code) (decimal.Decimal, error) {
	rate, ok := rates[code]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}
	return rate, nil
}

// ToCanonical converts an amount denominated in code into integer canonical
// units: round(amount / rate), rounding half away from zero. Deterministic,
// side-effect free, and zero-preserving.
func ToCanonical(amount decimal.Decimal, code Code) (int64, error) {
	rate, ok := rates[code]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}
	return amount.Div(rate).Round(0).IntPart(), nil
}

// FromCanonical converts integer canonical units into the display currency:
// canonical * rate. The stored value is never mutated; this is a read-time
// transform only.
func FromCanonical(canonical int64, code Code) (decimal.Decimal, error) {
	rate, ok := rates[code]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}
	return decimal.NewFromInt(canonical).Mul(rate), nil
}
