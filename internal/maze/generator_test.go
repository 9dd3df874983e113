package maze

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathviz/pathviz-server/internal/grid"
)

func newGrid(t *testing.T, rows, cols int) *grid.Grid {
	t.Helper()
	g, err := grid.New(rows, cols)
	require.NoError(t, err)
	return g
}

func TestGenerateAlwaysConnected(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	sizes := []int{5, 8, 10, 15, 20, 25, 30}
	for _, size := range sizes {
		t.Run(fmt.Sprintf("%dx%d", size, size), func(t *testing.T) {
			t.Parallel()
			for seed := uint64(0); seed < 20; seed++ {
				rnd := rand.New(rand.NewPCG(seed, seed+1))
				g := newGrid(t, size, size)
				RandomizeStartEnd(g, rnd)
				Generate(g, rnd)
				if !Reachable(g) {
					t.Errorf("seed %d: end unreachable\n%s", seed, g)
				}
			}
		})
	}
}

func TestGeneratePreservesRoles(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewPCG(7, 11))
	g := newGrid(t, 12, 9)
	g.SetStart(5, 4)
	g.SetEnd(2, 7)

	Generate(g, rnd)

	start, end := g.StartCell(), g.EndCell()
	assert.Equal(t, grid.Point{Row: 5, Col: 4}, grid.Point{Row: start.Row, Col: start.Col})
	assert.Equal(t, grid.Point{Row: 2, Col: 7}, grid.Point{Row: end.Row, Col: end.Col})
	assert.False(t, start.Wall)
	assert.False(t, end.Wall)
}

func TestGenerateClearsPreviousWalls(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewPCG(1, 2))
	g := newGrid(t, 10, 10)
	for col := 0; col < 10; col++ {
		g.SetWall(5, col)
	}

	Generate(g, rnd)
	assert.True(t, Reachable(g))
}

func TestEnsureConnectedRepairsEnclosedEnd(t *testing.T) {
	t.Parallel()

	g := newGrid(t, 8, 8)
	// box the end cell in completely
	for _, p := range []grid.Point{{Row: 6, Col: 6}, {Row: 6, Col: 7}, {Row: 7, Col: 6}} {
		g.SetWall(p.Row, p.Col)
	}
	require.False(t, Reachable(g))

	rnd := rand.New(rand.NewPCG(3, 4))
	repaired := EnsureConnected(g, rnd, DefaultDetourChance)

	assert.True(t, repaired)
	assert.True(t, Reachable(g))
	assert.Equal(t, grid.End, g.EndCell().Role, "repair must not touch roles")
	assert.Equal(t, grid.Start, g.StartCell().Role)
}

func TestEnsureConnectedNoopOnOpenGrid(t *testing.T) {
	t.Parallel()

	g := newGrid(t, 5, 5)
	rnd := rand.New(rand.NewPCG(5, 6))
	assert.False(t, EnsureConnected(g, rnd, DefaultDetourChance))
}

func TestCountReachable(t *testing.T) {
	t.Parallel()

	// S # .
	// . # E
	g := newGrid(t, 2, 3)
	g.SetWall(0, 1)
	g.SetWall(1, 1)
	assert.False(t, Reachable(g))
	assert.Equal(t, 2, CountReachable(g))
}

func TestDivideTerminatesOnThinRegions(t *testing.T) {
	t.Parallel()

	// 2xN grids have no room for interior walls in one dimension
	rnd := rand.New(rand.NewPCG(9, 10))
	g := newGrid(t, 2, 30)
	Generate(g, rnd)
	assert.True(t, Reachable(g))
}
