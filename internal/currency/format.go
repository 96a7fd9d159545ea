package currency

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Fraction-digit policies used by the views: dashboard summaries render
// whole units, itemized expense rows render two decimals.
const (
	SummaryDigits = 0
	RowDigits     = 2
)

var symbols = map[Code]string{
	USD: "$",
	EUR: "€",
	GBP: "£",
	INR: "₹",
	JPY: "¥",
}

// Format converts a canonical amount into the display currency and renders
// it with locale-aware grouping, e.g. Format(1250, INR, "en-US", 0) for
// "₹103,125". fractionDigits selects the view policy (SummaryDigits or
// RowDigits).
func Format(canonical int64, code Code, locale string, fractionDigits int) (string, error) {
	display, err := FromCanonical(canonical, code)
	if err != nil {
		return "", err
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	p := message.NewPrinter(tag)

	// Render from exact int64 parts. A float64 round trip loses precision
	// once the scaled amount passes 2^53.
	rounded := display.Round(int32(fractionDigits))
	units := rounded.IntPart()
	formatted := p.Sprintf("%v", number.Decimal(units))

	if fractionDigits > 0 {
		frac := rounded.Sub(decimal.NewFromInt(units)).Abs().Shift(int32(fractionDigits)).IntPart()
		// Format the fraction separately to pick up the locale's decimal
		// separator; a fraction this small round-trips through float64.
		fracStr := p.Sprintf("%v", number.Decimal(float64(frac)/math.Pow10(fractionDigits),
			number.MinFractionDigits(fractionDigits),
			number.MaxFractionDigits(fractionDigits),
		))
		zero := p.Sprintf("%v", number.Decimal(0))
		formatted += strings.TrimPrefix(fracStr, zero)
	}

	return symbols[code] + formatted, nil
}
