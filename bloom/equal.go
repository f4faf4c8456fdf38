package bloom

import (
	"github.com/cespare/xxhash/v2"
)

// Equal reports whether f and other have the same sizing, the same digest and
// identical bit contents. The insert count is not compared: re-adding an
// element changes the count but not the membership answers.
func (f *Filter) Equal(other *Filter) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.mBits != other.mBits || f.k != other.k || f.expected != other.expected {
		return false
	}
	if f.opts.hash != other.opts.hash {
		return false
	}
	return f.bits.Equal(other.bits)
}

// Fingerprint returns a structural hash over the values compared by Equal.
// Equal filters have equal fingerprints.
func (f *Filter) Fingerprint() uint64 {
	d := xxhash.New()

	var buf [8]byte
	writeU32BE(buf[:4], f.expected)
	_, _ = d.Write(buf[:4])
	writeU32BE(buf[:4], f.mBits)
	_, _ = d.Write(buf[:4])
	_, _ = d.Write([]byte{uint8(f.k), uint8(f.opts.hash)})

	for _, w := range f.bits.Words() {
		writeU64BE(buf[:], w)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
