package storage

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodeEmbedding encodes an embedding as a length-prefixed little-endian
// sequence of IEEE 754 float64 values. A zero-length vector encodes to an
// empty prefix rather than nil so that presence survives the round trip.
func EncodeEmbedding(vec []float64) []byte {
	b := make([]byte, 4+len(vec)*8)
	binary.LittleEndian.PutUint32(b, uint32(len(vec)))
	for i, v := range vec {
		binary.LittleEndian.PutUint64(b[4+i*8:], math.Float64bits(v))
	}
	return b
}

// DecodeEmbedding decodes a blob produced by EncodeEmbedding.
func DecodeEmbedding(b []byte) ([]float64, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b) < 4 {
		return nil, fmt.Errorf("embedding blob too short: %d bytes", len(b))
	}
	n := int(binary.LittleEndian.Uint32(b))
	if len(b) != 4+n*8 {
		return nil, fmt.Errorf("embedding blob length %d does not match prefix %d", len(b), n)
	}
	vec := make([]float64, n)
	for i := 0; i < n; i++ {
		vec[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[4+i*8:]))
	}
	return vec, nil
}
