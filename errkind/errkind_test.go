package errkind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryKindHasAMessageAndName(t *testing.T) {
	for _, k := range All() {
		assert.NotEqual(t, "Unknown", k.String(), "kind %d missing a name", k)
		assert.NotEqual(t, "Unknown error", k.Message(), "kind %d missing a message", k)
		assert.NotEmpty(t, k.Error())
	}
}

func TestUnknownKindFallsBackSafely(t *testing.T) {
	var bogus Kind = 200
	assert.Equal(t, "Unknown", bogus.String())
	assert.Equal(t, "Unknown error", bogus.Message())
}

func TestLookupRoundTrips(t *testing.T) {
	for _, k := range All() {
		found, ok := Lookup(k.String())
		require.True(t, ok)
		assert.Equal(t, k, found)
	}
	_, ok := Lookup("NotARealKind")
	assert.False(t, ok)
}

func TestKindOfExtractsFromError(t *testing.T) {
	var err error = DeepCurly
	k, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, DeepCurly, k)

	_, ok = KindOf(nil)
	assert.False(t, ok)
}
