package bloom

import (
	"crypto"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
)

func TestCBORRoundTrip(t *testing.T) {
	f := filledFilter(t, 0.02, 300, 120, WithHash(crypto.SHA256))

	data, err := cbor.Marshal(f)
	require.NoError(t, err)

	var g Filter
	require.NoError(t, cbor.Unmarshal(data, &g))
	require.True(t, f.Equal(&g))
	require.Equal(t, f.Count(), g.Count())
	require.Equal(t, f.BitsPerElement(), g.BitsPerElement())
	require.Equal(t, crypto.SHA256, g.Hash())
	require.True(t, g.ContainsString("elem-119"))
}

func TestCBORIsDeterministic(t *testing.T) {
	a := filledFilter(t, 0.01, 64, 32)
	b := filledFilter(t, 0.01, 64, 32)

	da, err := a.MarshalCBOR()
	require.NoError(t, err)
	db, err := b.MarshalCBOR()
	require.NoError(t, err)
	require.Equal(t, da, db)
}

func TestCBORRejects(t *testing.T) {
	enc, _, err := NewCBORCodec()
	require.NoError(t, err)

	f := filledFilter(t, 0.01, 64, 10)
	good := filterStateV1{
		Version:        VersionV1,
		K:              uint8(f.HashCount()),
		Hash:           uint8(crypto.MD5),
		MBits:          uint32(f.Size()),
		Expected:       64,
		BitsPerElement: f.BitsPerElement(),
		Bits:           make([]byte, BitsetBytesV1(uint32(f.Size()))),
	}

	tests := []struct {
		name    string
		mutate  func(s *filterStateV1)
		wantErr error
	}{
		{"version", func(s *filterStateV1) { s.Version = 2 }, ErrBadVersion},
		{"zero k", func(s *filterStateV1) { s.K = 0 }, ErrBadK},
		{"zero m", func(s *filterStateV1) { s.MBits = 0 }, ErrBadMBits},
		{"zero expected", func(s *filterStateV1) { s.Expected = 0 }, ErrBadExpected},
		{"bits per element mismatch", func(s *filterStateV1) { s.BitsPerElement = 99 }, ErrBadMBits},
		{"expected mismatch", func(s *filterStateV1) { s.Expected = 1000000 }, ErrBadExpected},
		{"m mismatch", func(s *filterStateV1) { s.MBits++ }, ErrBadExpected},
		{"short bits", func(s *filterStateV1) { s.Bits = s.Bits[:1] }, ErrBadRegionSize},
		{"digest", func(s *filterStateV1) { s.Hash = uint8(crypto.MD4) }, ErrHashUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := good
			s.Bits = append([]byte(nil), good.Bits...)
			tt.mutate(&s)
			data, err := enc.Marshal(s)
			require.NoError(t, err)

			var g Filter
			require.ErrorIs(t, g.UnmarshalCBOR(data), tt.wantErr)
		})
	}

	var g Filter
	require.Error(t, g.UnmarshalCBOR([]byte{0xff, 0x00}))
}
