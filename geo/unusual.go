package geo

import "strings"

// HasRepeatingFraction reports whether the decimal part of a textual
// axis value contains a pattern repeated back to back, anywhere in the
// fraction. "45.111111", "45.123123123" and "45.5123123" are repeating;
// "43.147893" is not.
func HasRepeatingFraction(axis string) bool {
	axis = strings.TrimSpace(axis)
	i := strings.IndexByte(axis, '.')
	if i < 0 {
		return false
	}
	frac := axis[i+1:]
	for length := 1; length*2 <= len(frac); length++ {
		for start := 0; start+2*length <= len(frac); start++ {
			if frac[start:start+length] == frac[start+length:start+2*length] {
				return true
			}
		}
	}
	return false
}

// IsUnusual reports whether either axis of a coordinate shows a
// repeating decimal fraction.
func IsUnusual(lon, lat string) bool {
	return HasRepeatingFraction(lon) || HasRepeatingFraction(lat)
}
