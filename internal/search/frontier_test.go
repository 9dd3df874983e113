package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAstarFrontierBreaksTiesByInsertion(t *testing.T) {
	t.Parallel()

	g := newGrid(t, 3, 3)
	f := newAstarFrontier(g)

	// equal f-scores must pop in insertion order
	for _, i := range []int{4, 1, 7, 2} {
		g.CellAt(i).F = 10
		f.add(i)
	}
	g.CellAt(5).F = 3
	f.add(5)

	var got []int
	for {
		i, ok := f.pop()
		if !ok {
			break
		}
		got = append(got, i)
	}
	assert.Equal(t, []int{5, 4, 1, 7, 2}, got)
}

func TestUniformFrontierPopsRowMajorOnTies(t *testing.T) {
	t.Parallel()

	g := newGrid(t, 2, 3)
	f := newUniformFrontier(g)

	// give two cells the same finite distance; the earlier row-major
	// index wins
	g.CellAt(4).Dist = 2
	g.CellAt(1).Dist = 2
	g.CellAt(3).Dist = 5

	i, ok := f.pop()
	require.True(t, ok)
	assert.Equal(t, 1, i)

	i, ok = f.pop()
	require.True(t, ok)
	assert.Equal(t, 4, i)

	i, ok = f.pop()
	require.True(t, ok)
	assert.Equal(t, 3, i)

	// remaining cells are all at infinity; the first row-major one pops
	i, ok = f.pop()
	require.True(t, ok)
	assert.Equal(t, 0, i)
}

func TestUniformFrontierDrains(t *testing.T) {
	t.Parallel()

	g := newGrid(t, 2, 2)
	f := newUniformFrontier(g)
	for k := 0; k < 4; k++ {
		_, ok := f.pop()
		require.True(t, ok)
	}
	_, ok := f.pop()
	assert.False(t, ok)
}
