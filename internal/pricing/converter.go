package pricing

import (
	"strconv"
	"strings"

	apperrors "github.com/manula2004/bagisto/pkg/errors"
)

// Converter converts currency-facing price strings into the canonical
// base-currency numeric used by the price index. Rates map a display currency
// to its base-currency multiplier; the base currency itself has rate 1.
type Converter struct {
	base  string
	rates map[string]float64
}

// NewConverter creates a converter for the given base currency and rate table.
// The base currency is always convertible at rate 1 regardless of the table.
func NewConverter(base string, rates map[string]float64) *Converter {
	normalized := make(map[string]float64, len(rates)+1)
	for code, rate := range rates {
		normalized[strings.ToUpper(code)] = rate
	}
	base = strings.ToUpper(base)
	normalized[base] = 1
	return &Converter{base: base, rates: normalized}
}

// Base returns the base currency code.
func (c *Converter) Base() string {
	return c.base
}

// ToBase parses a raw price token in the given display currency and returns
// its base-currency value. A token that fails numeric parsing is a client
// error; an unknown currency falls back to rate 1 rather than failing, since
// the catalog must stay readable when a rate is missing.
func (c *Converter) ToBase(raw, currency string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, apperrors.InvalidFilterValue("price", raw)
	}

	rate, ok := c.rates[strings.ToUpper(currency)]
	if !ok || rate <= 0 {
		rate = 1
	}
	return v * rate, nil
}

// RangeToBase parses a comma-separated two-element price range and converts
// both ends. Anything other than exactly two numeric tokens is a client error.
func (c *Converter) RangeToBase(raw, currency string) (min, max float64, err error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return 0, 0, apperrors.InvalidFilterValue("price", raw)
	}
	if min, err = c.ToBase(parts[0], currency); err != nil {
		return 0, 0, err
	}
	if max, err = c.ToBase(parts[1], currency); err != nil {
		return 0, 0, err
	}
	return min, max, nil
}
