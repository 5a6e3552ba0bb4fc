package managetoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	raw, hash, err := Generate()
	require.NoError(t, err)

	// 32 байта в hex
	assert.Len(t, raw, 64)
	assert.Len(t, hash, 64)
	assert.NotEqual(t, raw, hash)
	assert.Equal(t, Hash(raw), hash)
}

func TestGenerateUnique(t *testing.T) {
	raw1, _, err := Generate()
	require.NoError(t, err)
	raw2, _, err := Generate()
	require.NoError(t, err)

	assert.NotEqual(t, raw1, raw2)
}

func TestHashDeterministic(t *testing.T) {
	assert.Equal(t, Hash("token"), Hash("token"))
	assert.NotEqual(t, Hash("token"), Hash("token2"))
}
