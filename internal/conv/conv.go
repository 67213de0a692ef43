// Package conv narrows integers used as state identifiers.
//
// State IDs are uint32 with 0xFFFFFFFF reserved as the invalid marker, so a
// count or index that does not fit below it is a programming error and
// panics instead of wrapping silently.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n >= math.MaxUint32.
func IntToUint32(n int) uint32 {
	// compare as uint so 32-bit int cannot overflow the check
	if n < 0 || uint(n) >= math.MaxUint32 {
		panic("conv: int value out of state ID range")
	}
	return uint32(n)
}
