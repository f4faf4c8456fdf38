package bloom

import (
	"crypto"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Filter is a fixed capacity Bloom filter.
//
// The sizing parameters are fixed at construction. Only Add sets bits and
// only Clear unsets them. A Filter is not safe for concurrent use, see Locked.
type Filter struct {
	opts Options

	bits           *bitset.BitSet
	mBits          uint32
	k              int
	bitsPerElement float64
	expected       uint32
	inserted       uint64
}

// New creates an empty filter sized for n elements at false positive rate p:
//
//	k = ceil(-log2(p))
//	c = k / ln(2)
//	m = ceil(n * c)
func New(p float64, n int, opts ...Option) (*Filter, error) {
	o := NewOptions(opts...)
	if err := o.checkHash(); err != nil {
		return nil, err
	}
	k, err := HashCountFor(p)
	if err != nil {
		return nil, err
	}
	c := BitsPerElementFor(k)
	mBits, err := MBitsFor(n, c)
	if err != nil {
		return nil, err
	}
	if mBits == 0 {
		return nil, fmt.Errorf("%w: zero sized filter", ErrInvalidParameter)
	}

	f := newFilter(o, mBits, k, c, uint32(n))
	o.debugf("bloom.New: p=%v n=%d k=%d m=%d hash=%v", p, n, k, mBits, o.hash)
	return f, nil
}

func newFilter(o Options, mBits uint32, k int, c float64, expected uint32) *Filter {
	return &Filter{
		opts:           o,
		bits:           bitset.New(uint(mBits)),
		mBits:          mBits,
		k:              k,
		bitsPerElement: c,
		expected:       expected,
	}
}

// Add inserts data. The insert count is incremented even if data was already
// present.
func (f *Filter) Add(data []byte) {
	for _, h := range f.hashes(data) {
		f.bits.Set(bitIndex(h, f.mBits))
	}
	f.inserted++
}

// Contains returns false if data was definitely never added, and true if it
// may have been.
func (f *Filter) Contains(data []byte) bool {
	for _, h := range f.hashes(data) {
		if !f.bits.Test(bitIndex(h, f.mBits)) {
			return false
		}
	}
	return true
}

// Clear unsets every bit and resets the insert count. Sizing is unchanged.
func (f *Filter) Clear() {
	f.bits.ClearAll()
	f.inserted = 0
	f.opts.debugf("bloom.Clear: m=%d k=%d", f.mBits, f.k)
}

func (f *Filter) hashes(data []byte) []int32 {
	return appendHashes(make([]int32, 0, f.k), f.opts.hash, data, f.k)
}

// Size returns m, the number of bits in the filter.
func (f *Filter) Size() int { return int(f.mBits) }

// Count returns the number of Add calls since construction or the last Clear.
func (f *Filter) Count() int { return int(f.inserted) }

// HashCount returns k.
func (f *Filter) HashCount() int { return f.k }

// BitsPerElement returns c = k / ln(2).
func (f *Filter) BitsPerElement() float64 { return f.bitsPerElement }

// ExpectedCount returns the element count the filter was sized for.
func (f *Filter) ExpectedCount() int { return int(f.expected) }

// Hash returns the digest used for hash derivation.
func (f *Filter) Hash() crypto.Hash { return f.opts.hash }

// FillRatio returns the fraction of bits that are set.
func (f *Filter) FillRatio() float64 {
	return float64(f.bits.Count()) / float64(f.mBits)
}
