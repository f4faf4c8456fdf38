package bloom

import (
	"crypto"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// filterStateV1 is the CBOR record for a filter. It carries the same fields
// as the V1 binary header, and the same LSB0 bitset bytes.
type filterStateV1 struct {
	Version        uint8   `cbor:"1,keyasint"`
	K              uint8   `cbor:"2,keyasint"`
	Hash           uint8   `cbor:"3,keyasint"`
	MBits          uint32  `cbor:"4,keyasint"`
	Expected       uint32  `cbor:"5,keyasint"`
	NInserted      uint64  `cbor:"6,keyasint"`
	BitsPerElement float64 `cbor:"7,keyasint"`
	Bits           []byte  `cbor:"8,keyasint"`
}

// NewCBORCodec returns deterministic encoding and default decoding modes
// suitable for filter state.
func NewCBORCodec() (cbor.EncMode, cbor.DecMode, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, nil, err
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return nil, nil, err
	}
	return enc, dec, nil
}

var cborEnc, cborDec, cborErr = NewCBORCodec()

// MarshalCBOR implements cbor.Marshaler.
func (f *Filter) MarshalCBOR() ([]byte, error) {
	if cborErr != nil {
		return nil, cborErr
	}
	state := filterStateV1{
		Version:        VersionV1,
		K:              uint8(f.k),
		Hash:           uint8(f.opts.hash),
		MBits:          f.mBits,
		Expected:       f.expected,
		NInserted:      f.inserted,
		BitsPerElement: f.bitsPerElement,
		Bits:           make([]byte, BitsetBytesV1(f.mBits)),
	}
	putBitsLSB0(state.Bits, f.bits)
	return cborEnc.Marshal(state)
}

// UnmarshalCBOR implements cbor.Unmarshaler. A logger previously configured
// on f is retained.
func (f *Filter) UnmarshalCBOR(data []byte) error {
	decoded, err := DecodeCBOR(data, WithLogger(f.opts.log))
	if err != nil {
		return err
	}
	*f = *decoded
	return nil
}

// DecodeCBOR decodes a filter from its CBOR record. As with DecodeV1 the
// digest is taken from the record.
func DecodeCBOR(data []byte, opts ...Option) (*Filter, error) {
	if cborErr != nil {
		return nil, cborErr
	}
	var state filterStateV1
	if err := cborDec.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.Version != VersionV1 {
		return nil, ErrBadVersion
	}
	h := HeaderV1{
		BitOrder:       BitOrderLSB0,
		K:              state.K,
		Hash:           crypto.Hash(state.Hash),
		MBits:          state.MBits,
		Expected:       state.Expected,
		NInserted:      state.NInserted,
		BitsPerElement: state.BitsPerElement,
	}
	if err := h.check(); err != nil {
		return nil, err
	}
	if len(state.Bits) != int(BitsetBytesV1(h.MBits)) {
		return nil, fmt.Errorf("%w: %d bitset bytes for %d bits", ErrBadRegionSize, len(state.Bits), h.MBits)
	}

	o := NewOptions(opts...)
	o.hash = h.Hash
	if err := o.checkHash(); err != nil {
		return nil, err
	}
	bits, err := getBitsLSB0(state.Bits, h.MBits)
	if err != nil {
		return nil, err
	}

	f := newFilter(o, h.MBits, int(h.K), h.BitsPerElement, h.Expected)
	f.bits = bits
	f.inserted = h.NInserted
	o.debugf("bloom.DecodeCBOR: k=%d m=%d inserted=%d hash=%v", h.K, h.MBits, h.NInserted, h.Hash)
	return f, nil
}
