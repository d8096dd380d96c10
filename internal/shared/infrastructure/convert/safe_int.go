// Package convert provides safe integer conversions.
package convert

import "math"

// IntToUint32Clamped converts v, clamping to [0, MaxUint32].
func IntToUint32Clamped(v int) uint32 {
	if v < 0 {
		return 0
	}
	if uint64(v) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
