package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_EvictsOldest(t *testing.T) {
	h, err := NewHistory(3)
	require.NoError(t, err)

	for _, line := range []string{"a", "b", "a", "c", "d"} {
		h.Add(line)
	}
	assert.Equal(t, []string{"a", "c", "d"}, h.Lines())
	assert.Equal(t, 3, h.Len())

	h.Purge()
	assert.Empty(t, h.Lines())
}

func TestNewHistory_InvalidSize(t *testing.T) {
	_, err := NewHistory(0)
	assert.Error(t, err)
}
