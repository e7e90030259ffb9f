// Package money holds currency helpers for two-decimal fixed-point amounts.
// All public amounts are rounded half-up to cents; comparisons that decide
// whether a share is settled use Tolerance, one minor currency unit.
package money

import "math"

const Tolerance = 0.01

// Round rounds half-up to two decimal places.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

// Covers reports whether paid covers owed within Tolerance.
func Covers(paid, owed float64) bool {
	return paid >= owed-Tolerance
}
