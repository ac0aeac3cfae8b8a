// Package view holds the pure computations that turn fetched records into
// display values. Nothing here performs I/O.
package view

import "math"

// DefaultFeePercentage applies when the platform settings cannot be loaded.
const DefaultFeePercentage = 2.0

// Fee is the transfer fee for amount at pct percent, rounded to cents.
// Non-positive amounts cost nothing.
func Fee(amount, pct float64) float64 {
	if amount <= 0 || math.IsNaN(amount) {
		return 0
	}
	return Round2(amount * pct / 100)
}

// TransferTotal is what leaves the source account.
func TransferTotal(amount, pct float64) float64 {
	if amount <= 0 {
		return 0
	}
	return Round2(amount + Fee(amount, pct))
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
