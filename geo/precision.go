// Package geo classifies coordinates: decimal precision, suspicious
// repeating fractions, and point-in-state location.
package geo

import "strings"

// Precision labels for a coordinate pair.
const (
	PrecisionLow    = "Low"
	PrecisionMedium = "Medium"
	PrecisionHigh   = "High"
)

// DecimalDigits counts the digits after the decimal point in a textual
// axis value. The value is inspected as written, so trailing zeros
// count.
func DecimalDigits(axis string) int {
	axis = strings.TrimSpace(axis)
	i := strings.IndexByte(axis, '.')
	if i < 0 {
		return 0
	}
	return len(axis) - i - 1
}

// Precision classifies a coordinate by its weakest axis. Fewer than 2
// decimal places on either axis is Low; more than 4 on both is High;
// everything else is Medium.
func Precision(lon, lat string) string {
	lonDigits := DecimalDigits(lon)
	latDigits := DecimalDigits(lat)
	if lonDigits < 2 || latDigits < 2 {
		return PrecisionLow
	}
	if lonDigits > 4 && latDigits > 4 {
		return PrecisionHigh
	}
	return PrecisionMedium
}
