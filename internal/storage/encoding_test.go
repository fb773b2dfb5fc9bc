package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_EncodeEmbedding_RoundTrip(t *testing.T) {
	vec := []float64{0.25, -1.5, 0, 3.14159}
	got, err := DecodeEmbedding(EncodeEmbedding(vec))
	require.NoError(t, err)
	assert.Equal(t, vec, got)
}

func Test_EncodeEmbedding_Empty(t *testing.T) {
	got, err := DecodeEmbedding(EncodeEmbedding(nil))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func Test_DecodeEmbedding_BadLength(t *testing.T) {
	_, err := DecodeEmbedding([]byte{1, 2})
	assert.Error(t, err)

	blob := EncodeEmbedding([]float64{1, 2})
	_, err = DecodeEmbedding(blob[:len(blob)-3])
	assert.Error(t, err)
}
