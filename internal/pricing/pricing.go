package pricing

import (
	"errors"
	"math"
)

// All amounts are int64 cents.

var ErrInvalidInput = errors.New("invalid pricing input")

const (
	taxRate        = 0.10
	serviceFeeRate = 0.05
)

// Breakdown is immutable once computed; callers recompute it whenever any of
// its inputs change instead of patching fields.
type Breakdown struct {
	BasePrice  int64 `json:"base_price"`
	Travelers  int   `json:"travelers"`
	Subtotal   int64 `json:"subtotal"`
	Taxes      int64 `json:"taxes"`
	ServiceFee int64 `json:"service_fee"`
	Total      int64 `json:"total"`
}

// Calculate prices a package booking: the date modifier scales the base price
// before tax and fee. Taxes and the service fee are rounded independently of
// each other, never as a rounded sum; downstream consumers rely on that exact
// policy.
func Calculate(basePrice int64, modifier float64, travelers int) (Breakdown, error) {
	if travelers < 1 || basePrice < 0 {
		return Breakdown{}, ErrInvalidInput
	}

	adjusted := int64(math.Round(float64(basePrice) * modifier))
	subtotal := adjusted * int64(travelers)
	taxes := int64(math.Round(float64(subtotal) * taxRate))
	fee := int64(math.Round(float64(subtotal) * serviceFeeRate))

	return Breakdown{
		BasePrice:  basePrice,
		Travelers:  travelers,
		Subtotal:   subtotal,
		Taxes:      taxes,
		ServiceFee: fee,
		Total:      subtotal + taxes + fee,
	}, nil
}

// LineTotal is the per-activity subtotal shared by the selection store, trip
// creation and the edit draft: unit price times duration times quantity.
func LineTotal(unitPrice int64, durationValue, quantity int) int64 {
	return unitPrice * int64(durationValue) * int64(quantity)
}
