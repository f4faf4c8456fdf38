package bloom

import (
	"crypto"
	"errors"
)

const (
	// DefaultHash is the digest used as the entropy source for hash
	// derivation. Changing it changes every bit position, so persisted
	// filters record the digest they were built with.
	DefaultHash = crypto.MD5

	// MaxHashCount is the largest k accepted. The persisted header stores k
	// in a single byte.
	MaxHashCount = 255

	// HeaderBytesV1 is the fixed header size for the V1 binary format.
	HeaderBytesV1 = 32

	MagicV1         = "BLMF"
	VersionV1 uint8 = 1

	// BitOrderLSB0 means bit 0 is the least-significant bit of byte 0.
	BitOrderLSB0 uint8 = 0

	// hashChunkBytes is the width of each hash value cut from a digest.
	hashChunkBytes = 4
)

var (
	ErrInvalidParameter = errors.New("bloom: invalid parameter")
	ErrHashUnavailable  = errors.New("bloom: hash algorithm unavailable")
	ErrSizeOverflow     = errors.New("bloom: size computation overflow")

	ErrBadRegionSize = errors.New("bloom: region buffer too small")
	ErrBadMagic      = errors.New("bloom: header magic invalid")
	ErrBadVersion    = errors.New("bloom: header version invalid")
	ErrBadBitOrder   = errors.New("bloom: header bitOrder unsupported")
	ErrBadK          = errors.New("bloom: header k invalid")
	ErrBadMBits      = errors.New("bloom: header mBits invalid")
	ErrBadExpected   = errors.New("bloom: header expected count invalid")
)

// HeaderV1 is the decoded form of the fixed size header which prefixes a
// persisted filter.
type HeaderV1 struct {
	BitOrder       uint8
	K              uint8
	Hash           crypto.Hash
	MBits          uint32
	Expected       uint32
	NInserted      uint64
	BitsPerElement float64
}
