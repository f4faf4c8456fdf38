package bloom

import (
	"bytes"
	"crypto"
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"
)

// The V1 binary layout is a 32 byte header followed by the bitset:
//
//	[0:4]   magic "BLMF"
//	[4]     version
//	[5]     bit order (LSB0)
//	[6]     k
//	[7]     digest (crypto.Hash)
//	[8:12]  mBits, u32 BE
//	[12:16] expected element count, u32 BE
//	[16:24] insert count, u64 BE
//	[24:32] bits per element, float64 BE
//	[32:]   ceil(mBits/8) bitset bytes, LSB0

// DecodeHeaderV1 decodes a V1 header from region.
//
// ok=false indicates the region is zero-filled / uninitialized.
func DecodeHeaderV1(region []byte) (h HeaderV1, ok bool, err error) {
	if len(region) < HeaderBytesV1 {
		return HeaderV1{}, false, ErrBadRegionSize
	}

	if bytes.Equal(region[0:4], []byte{0, 0, 0, 0}) {
		return HeaderV1{}, false, nil
	}

	if string(region[0:4]) != MagicV1 {
		return HeaderV1{}, false, ErrBadMagic
	}
	if region[4] != VersionV1 {
		return HeaderV1{}, false, ErrBadVersion
	}

	h.BitOrder = region[5]
	h.K = region[6]
	h.Hash = crypto.Hash(region[7])
	h.MBits = readU32BE(region[8:12])
	h.Expected = readU32BE(region[12:16])
	h.NInserted = readU64BE(region[16:24])
	h.BitsPerElement = readF64BE(region[24:32])

	if err := h.check(); err != nil {
		return HeaderV1{}, false, err
	}
	return h, true, nil
}

// EncodeHeaderV1 writes a V1 header into region.
func EncodeHeaderV1(region []byte, h HeaderV1) error {
	if len(region) < HeaderBytesV1 {
		return ErrBadRegionSize
	}
	if err := h.check(); err != nil {
		return err
	}

	copy(region[0:4], []byte(MagicV1))
	region[4] = VersionV1
	region[5] = h.BitOrder
	region[6] = h.K
	region[7] = uint8(h.Hash)
	writeU32BE(region[8:12], h.MBits)
	writeU32BE(region[12:16], h.Expected)
	writeU64BE(region[16:24], h.NInserted)
	writeF64BE(region[24:32], h.BitsPerElement)
	return nil
}

func (h HeaderV1) check() error {
	if h.BitOrder != BitOrderLSB0 {
		return ErrBadBitOrder
	}
	if h.K == 0 {
		return ErrBadK
	}
	if h.MBits == 0 {
		return ErrBadMBits
	}
	if h.Expected == 0 {
		return ErrBadExpected
	}

	// The sizing fields must agree with each other exactly as New derives
	// them: c = k/ln(2) and m = ceil(n*c).
	if c := BitsPerElementFor(int(h.K)); h.BitsPerElement != c {
		return fmt.Errorf("%w: bits per element %v, k=%d requires %v", ErrBadMBits, h.BitsPerElement, h.K, c)
	}
	if m, err := MBitsFor(int(h.Expected), h.BitsPerElement); err != nil || m != h.MBits {
		return fmt.Errorf("%w: %d elements at %v bits each do not give mBits=%d", ErrBadExpected, h.Expected, h.BitsPerElement, h.MBits)
	}
	return nil
}

func (f *Filter) headerV1() HeaderV1 {
	return HeaderV1{
		BitOrder:       BitOrderLSB0,
		K:              uint8(f.k),
		Hash:           f.opts.hash,
		MBits:          f.mBits,
		Expected:       f.expected,
		NInserted:      f.inserted,
		BitsPerElement: f.bitsPerElement,
	}
}

// MarshalBinary encodes the filter in the V1 binary format.
func (f *Filter) MarshalBinary() ([]byte, error) {
	region := make([]byte, RegionBytesV1(f.mBits))
	if err := EncodeHeaderV1(region, f.headerV1()); err != nil {
		return nil, err
	}
	putBitsLSB0(region[HeaderBytesV1:], f.bits)
	return region, nil
}

// UnmarshalBinary replaces f with the filter encoded in region. A logger
// previously configured on f is retained.
func (f *Filter) UnmarshalBinary(region []byte) error {
	decoded, err := DecodeV1(region, WithLogger(f.opts.log))
	if err != nil {
		return err
	}
	*f = *decoded
	return nil
}

// DecodeV1 decodes a filter from the V1 binary format. The digest is taken
// from the header, WithHash has no effect here.
func DecodeV1(region []byte, opts ...Option) (*Filter, error) {
	h, ok, err := DecodeHeaderV1(region)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: header not initialized", ErrBadMagic)
	}
	if uint64(len(region)) < RegionBytesV1(h.MBits) {
		return nil, ErrBadRegionSize
	}

	o := NewOptions(opts...)
	o.hash = h.Hash
	if err := o.checkHash(); err != nil {
		return nil, err
	}

	bits, err := getBitsLSB0(region[HeaderBytesV1:RegionBytesV1(h.MBits)], h.MBits)
	if err != nil {
		return nil, err
	}

	f := newFilter(o, h.MBits, int(h.K), h.BitsPerElement, h.Expected)
	f.bits = bits
	f.inserted = h.NInserted
	o.debugf("bloom.DecodeV1: k=%d m=%d inserted=%d hash=%v", h.K, h.MBits, h.NInserted, h.Hash)
	return f, nil
}

// WriteTo writes the V1 binary encoding of f to w.
func (f *Filter) WriteTo(w io.Writer) (int64, error) {
	region, err := f.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(region)
	return int64(n), err
}

// ReadFrom replaces f with a V1 encoded filter read from r. Exactly one
// encoded filter is consumed.
func (f *Filter) ReadFrom(r io.Reader) (int64, error) {
	header := make([]byte, HeaderBytesV1)
	n, err := io.ReadFull(r, header)
	if err != nil {
		return int64(n), err
	}
	h, ok, err := DecodeHeaderV1(header)
	if err != nil {
		return int64(n), err
	}
	if !ok {
		return int64(n), fmt.Errorf("%w: header not initialized", ErrBadMagic)
	}

	// The body is read incrementally, so allocation follows the bytes
	// actually received.
	want := int64(BitsetBytesV1(h.MBits))
	body, err := io.ReadAll(io.LimitReader(r, want))
	total := int64(n) + int64(len(body))
	if err != nil {
		return total, err
	}
	if int64(len(body)) != want {
		return total, io.ErrUnexpectedEOF
	}
	return total, f.UnmarshalBinary(append(header, body...))
}

// putBitsLSB0 writes bits into out such that bit i is bit (i & 7) of byte
// (i >> 3).
func putBitsLSB0(out []byte, bits *bitset.BitSet) {
	for i, ok := bits.NextSet(0); ok; i, ok = bits.NextSet(i + 1) {
		out[i>>3] |= 1 << (i & 7)
	}
}

// getBitsLSB0 is the inverse of putBitsLSB0. Set bits at or beyond mBits are
// rejected.
func getBitsLSB0(in []byte, mBits uint32) (*bitset.BitSet, error) {
	bits := bitset.New(uint(mBits))
	for byteIdx, b := range in {
		if b == 0 {
			continue
		}
		for bit := uint(0); bit < 8; bit++ {
			if b&(1<<bit) == 0 {
				continue
			}
			i := uint(byteIdx)<<3 | bit
			if i >= uint(mBits) {
				return nil, fmt.Errorf("%w: bit %d set beyond %d", ErrBadMBits, i, mBits)
			}
			bits.Set(i)
		}
	}
	return bits, nil
}
