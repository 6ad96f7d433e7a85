// Package conv provides checked integer conversions for automaton IDs.
//
// State IDs, symbol ranks and transition positions are stored as uint32 to
// keep the flat transition table compact. The helpers here narrow the int
// values produced while building and panic on overflow, since an automaton
// with more than math.MaxUint32 states or symbols is a programming error
// rather than a recoverable condition.
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// Uint32ToInt converts a uint32 to int.
// Panics on 32-bit platforms when n does not fit.
//
//go:inline
func Uint32ToInt(n uint32) int {
	if uint64(n) > uint64(math.MaxInt) {
		panic("integer overflow: uint32 value out of int range")
	}
	return int(n)
}

// IntToUint converts a non-negative int to uint for bit set indexing.
// Panics if n < 0.
//
//go:inline
func IntToUint(n int) uint {
	if n < 0 {
		panic("integer overflow: negative int used as uint")
	}
	return uint(n)
}
