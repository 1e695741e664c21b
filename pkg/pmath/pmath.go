// Package pmath holds the small power-of-two helpers the wait-array slot
// table needs when it sizes itself.
package pmath

import "math/bits"

// CeilToPowerOf2 rounds size up to the next power of two. Values <= 1 map to 1.
func CeilToPowerOf2(size int) int {
	if size <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(size-1))
}

// IsPowerOf2 reports whether size is a power of two.
func IsPowerOf2(size int) bool {
	return size > 0 && size&(size-1) == 0
}
