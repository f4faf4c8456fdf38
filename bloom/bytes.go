package bloom

import (
	"encoding/binary"
	"math"
)

func readU32BE(b []byte) uint32     { return binary.BigEndian.Uint32(b) }
func readU64BE(b []byte) uint64     { return binary.BigEndian.Uint64(b) }
func writeU32BE(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }
func writeU64BE(b []byte, v uint64) { binary.BigEndian.PutUint64(b, v) }

func readF64BE(b []byte) float64     { return math.Float64frombits(readU64BE(b)) }
func writeF64BE(b []byte, v float64) { writeU64BE(b, math.Float64bits(v)) }

// readI32BE reads 4 big-endian bytes as a signed 32 bit integer. Each byte
// is taken as unsigned before it is shifted into place.
func readI32BE(b []byte) int32 { return int32(readU32BE(b)) }
