package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA256Hasher(t *testing.T) {
	h := NewSHA256Hasher("pepper")

	hashed, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.Len(t, hashed, 64)
	assert.NotContains(t, hashed, "s3cret")

	assert.True(t, h.Compare(hashed, "s3cret-pass"))
	assert.False(t, h.Compare(hashed, "s3cret-pasS"))

	other, err := NewSHA256Hasher("salt").Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, hashed, other)
}
