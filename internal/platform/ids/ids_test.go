package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestULIDMonotonic(t *testing.T) {
	g := NewULID()
	prev := ""
	for i := 0; i < 100; i++ {
		id, err := g.New()
		require.NoError(t, err)
		assert.Len(t, id, 26)
		assert.True(t, Valid(id))
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestValid(t *testing.T) {
	assert.False(t, Valid(""))
	assert.False(t, Valid("not-a-ulid"))
	assert.True(t, Valid("01ARZ3NDEKTSV4RRFFQ69G5FAV"))
}
