// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/finance-guide/pkg/constants"
)

var centsFactor = math.Pow10(constants.DecimalPrecision)

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val float64) float64 {
	return math.Round(val*centsFactor) / centsFactor
}

// IsPositive checks if a value is positive (greater than tolerance)
func IsPositive(val float64) bool {
	return val > constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// NonNegative clamps negative values to zero.
func NonNegative(val float64) float64 {
	if val < 0 {
		return 0
	}
	return val
}

// ApplyPercentage applies a whole-number percentage to a value
func ApplyPercentage(value float64, percentage int) float64 {
	return value * (float64(percentage) / constants.PercentageMultiplier)
}

// CeilDiv divides the magnitude of numerator by a positive divisor and rounds up.
// The caller guarantees divisor > 0.
func CeilDiv(numerator, divisor float64) int {
	return int(math.Ceil(math.Abs(numerator) / divisor))
}
