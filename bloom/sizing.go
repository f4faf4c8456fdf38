package bloom

import (
	"fmt"
	"math"
)

// HashCountFor returns k = ceil(-log2(p)) for a target false positive rate p.
//
// p must be in the open interval (0, 1).
func HashCountFor(p float64) (int, error) {
	if math.IsNaN(p) || p <= 0 || p >= 1 {
		return 0, fmt.Errorf("%w: false positive rate %v is not in (0, 1)", ErrInvalidParameter, p)
	}
	k := math.Ceil(-math.Log2(p))
	if k < 1 {
		k = 1
	}
	if k > MaxHashCount {
		return 0, fmt.Errorf("%w: false positive rate %v needs %v hashes", ErrSizeOverflow, p, k)
	}
	return int(k), nil
}

// BitsPerElementFor returns c = k / ln(2).
func BitsPerElementFor(k int) float64 {
	return float64(k) / math.Ln2
}

// MBitsFor returns m = ceil(n * c).
//
// The result is constrained to the uint32 range so that it always fits the
// persisted header.
func MBitsFor(n int, bitsPerElement float64) (uint32, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: expected element count %d must be positive", ErrInvalidParameter, n)
	}
	if bitsPerElement <= 0 || math.IsNaN(bitsPerElement) || math.IsInf(bitsPerElement, 0) {
		return 0, fmt.Errorf("%w: bits per element %v", ErrInvalidParameter, bitsPerElement)
	}
	m := math.Ceil(float64(n) * bitsPerElement)
	if m > float64(math.MaxUint32) {
		return 0, fmt.Errorf("%w: %d elements at %v bits each", ErrSizeOverflow, n, bitsPerElement)
	}
	return uint32(m), nil
}

// BitsetBytesV1 returns ceil(mBits/8).
func BitsetBytesV1(mBits uint32) uint32 {
	return uint32((uint64(mBits) + 7) / 8)
}

// RegionBytesV1 returns the byte length of a persisted filter with mBits:
//
//	HeaderBytesV1 + ceil(mBits/8)
func RegionBytesV1(mBits uint32) uint64 {
	return uint64(HeaderBytesV1) + uint64(BitsetBytesV1(mBits))
}
