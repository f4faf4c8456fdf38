package bloom

import (
	"crypto"
	_ "crypto/md5"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"fmt"
)

// defaultHashErr is evaluated once at package initialisation. If the default
// digest is not linked in, no filter can be constructed.
var defaultHashErr = CheckHash(DefaultHash)

// CheckHash reports whether h can serve as the entropy source for hash
// derivation.
func CheckHash(h crypto.Hash) error {
	if !h.Available() {
		return fmt.Errorf("%w: %v", ErrHashUnavailable, h)
	}
	if h.Size() < hashChunkBytes {
		return fmt.Errorf("%w: %v digest is too short", ErrHashUnavailable, h)
	}
	return nil
}

// CreateHashes derives k hash values from data using DefaultHash.
func CreateHashes(data []byte, k int) ([]int32, error) {
	return CreateHashesWith(DefaultHash, data, k)
}

// CreateHashesWith derives k hash values from data using the digest h.
//
// Round r computes:
//
//	H( uint8(r) || data )
//
// and each 4 byte chunk of the digest, read big-endian, gives one value. With
// a 16 byte digest each round yields 4 values. The salt wraps after 256
// rounds.
func CreateHashesWith(h crypto.Hash, data []byte, k int) ([]int32, error) {
	if err := CheckHash(h); err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, fmt.Errorf("%w: hash count %d", ErrInvalidParameter, k)
	}
	return appendHashes(make([]int32, 0, k), h, data, k), nil
}

// appendHashes appends k hash values to dst. h must already have been
// checked.
//
// Every call creates its own digest state, so concurrent callers never share
// intermediate results.
func appendHashes(dst []int32, h crypto.Hash, data []byte, k int) []int32 {
	hasher := h.New()
	sum := make([]byte, 0, hasher.Size())

	var salt uint8
	for n := 0; n < k; salt++ {
		hasher.Reset()
		_, _ = hasher.Write([]byte{salt})
		_, _ = hasher.Write(data)
		sum = hasher.Sum(sum[:0])

		for i := 0; i+hashChunkBytes <= len(sum) && n < k; i += hashChunkBytes {
			dst = append(dst, readI32BE(sum[i:i+hashChunkBytes]))
			n++
		}
	}
	return dst
}

// bitIndex maps a signed hash value onto [0, mBits).
//
// The remainder is taken before the absolute value, in 64 bits, so that
// math.MinInt32 is handled without overflow.
func bitIndex(h int32, mBits uint32) uint {
	r := int64(h) % int64(mBits)
	if r < 0 {
		r = -r
	}
	return uint(r)
}
