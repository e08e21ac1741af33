package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolLoads(t *testing.T) {
	p := NewPool()
	assert.GreaterOrEqual(t, p.Size(), 50, "embedded list must be large enough for long games")
}

func TestDrawDistinctWords(t *testing.T) {
	p := NewPool()

	drawn, err := p.Draw(10)
	require.NoError(t, err)
	require.Len(t, drawn, 10)

	seen := make(map[string]bool)
	for _, w := range drawn {
		assert.NotEmpty(t, w)
		assert.False(t, seen[w], "duplicate word %q in a single draw", w)
		seen[w] = true
	}
}

func TestDrawBounds(t *testing.T) {
	p := NewPool()

	_, err := p.Draw(0)
	assert.Error(t, err)

	_, err = p.Draw(p.Size() + 1)
	assert.Error(t, err)

	all, err := p.Draw(p.Size())
	require.NoError(t, err)
	assert.Len(t, all, p.Size())
}
