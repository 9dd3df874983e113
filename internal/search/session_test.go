package search

import (
	"context"
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

func TestNewValidation(t *testing.T) {
	t.Parallel()

	_, err := New(nil, Dijkstra)
	assert.ErrorIs(t, err, ErrNilGrid)

	g := newGrid(t, 3, 3)
	_, err = New(g, Algorithm(99))
	assert.ErrorIs(t, err, ErrBadAlgorithm)

	_, err = New(&grid.Grid{}, AStar)
	assert.ErrorIs(t, err, ErrMisconfigured)
}

func TestOpenThreeByThree(t *testing.T) {
	t.Parallel()

	for _, algo := range []Algorithm{Dijkstra, AStar} {
		t.Run(algo.String(), func(t *testing.T) {
			t.Parallel()

			g := newGrid(t, 3, 3)
			s, err := New(g, algo)
			require.NoError(t, err)

			res := s.Run(context.Background())

			assert.True(t, res.Success)
			assert.Equal(t, 5, res.PathLength, "3x3 corner to corner is 5 cells")
			assert.Len(t, res.Path, 5)
			assert.Equal(t, grid.Point{Row: 0, Col: 0}, res.Path[0])
			assert.Equal(t, grid.Point{Row: 2, Col: 2}, res.Path[4])
			assertFourAdjacent(t, res.Path)
			assert.Equal(t, Found, s.State())
		})
	}
}

func assertFourAdjacent(t *testing.T, path []grid.Point) {
	t.Helper()
	for k := 1; k < len(path); k++ {
		dr := path[k].Row - path[k-1].Row
		dc := path[k].Col - path[k-1].Col
		if dr < 0 {
			dr = -dr
		}
		if dc < 0 {
			dc = -dc
		}
		assert.Equal(t, 1, dr+dc, "path cells %d and %d are not 4-adjacent", k-1, k)
	}
}

func TestStateTransitions(t *testing.T) {
	t.Parallel()

	g := newGrid(t, 3, 3)
	s, err := New(g, Dijkstra)
	require.NoError(t, err)
	assert.Equal(t, Ready, s.State())

	step := s.Step()
	assert.Equal(t, Progress, step.Kind)
	assert.Equal(t, Running, s.State())

	var res Result
	for step.Kind != Terminal {
		step = s.Step()
	}
	res = *step.Result
	assert.Equal(t, Found, s.State())

	// terminal sessions repeat their result and never move again
	again := s.Step()
	assert.Equal(t, Terminal, again.Kind)
	assert.Equal(t, res, *again.Result)
	assert.Equal(t, Found, s.State())
}

func TestWeightedRouteAvoidsExpensiveCells(t *testing.T) {
	t.Parallel()

	// S 9 .        weight 9 straight line vs sweep around the edge
	// . 9 .
	// . . E
	g := newGrid(t, 3, 3)
	g.SetWeight(0, 1, 9)
	g.SetWeight(1, 1, 9)

	for _, algo := range []Algorithm{Dijkstra, AStar} {
		s, err := New(g, algo)
		require.NoError(t, err)
		res := s.Run(context.Background())
		require.True(t, res.Success)
		assert.Equal(t, 5, res.PathLength)
		for _, p := range res.Path {
			assert.NotEqual(t, grid.Point{Row: 0, Col: 1}, p)
			assert.NotEqual(t, grid.Point{Row: 1, Col: 1}, p)
		}
	}
}

func TestEnclosedEndExhausts(t *testing.T) {
	t.Parallel()

	// . . . .       the end cell is boxed in by walls
	// . # # #
	// . # E #
	// . # # #
	g := newGrid(t, 4, 4)
	g.SetEnd(2, 2)
	for _, p := range []grid.Point{
		{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 1, Col: 3},
		{Row: 2, Col: 1}, {Row: 2, Col: 3},
		{Row: 3, Col: 1}, {Row: 3, Col: 2}, {Row: 3, Col: 3},
	} {
		g.SetWall(p.Row, p.Col)
	}
	// reachable non-wall cells from start: the top row plus (1,0),
	// (2,0) and (3,0)
	const wantReachable = 7

	for _, algo := range []Algorithm{Dijkstra, AStar} {
		t.Run(algo.String(), func(t *testing.T) {
			s, err := New(g.Clone(), algo)
			require.NoError(t, err)

			res := s.Run(context.Background())

			assert.False(t, res.Success)
			assert.Equal(t, Exhausted, s.State())
			assert.Zero(t, res.PathLength)
			assert.Empty(t, res.Path)
			assert.Equal(t, wantReachable, res.NodesExplored)
		})
	}
}

func TestWallsAreDiscardedNotExplored(t *testing.T) {
	t.Parallel()

	g := newGrid(t, 3, 3)
	g.SetWall(1, 1)
	s, err := New(g, Dijkstra)
	require.NoError(t, err)

	res := s.Run(context.Background())
	require.True(t, res.Success)
	assert.False(t, g.At(1, 1).Explored)
	// 8 non-wall cells in total, all reachable, all finalized before or
	// when the end pops
	assert.LessOrEqual(t, res.NodesExplored, 8)
}

func TestStopCancels(t *testing.T) {
	t.Parallel()

	g := newGrid(t, 10, 10)
	s, err := New(g, Dijkstra)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.Equal(t, Progress, s.Step().Kind)
	}
	s.Stop()

	step := s.Step()
	require.Equal(t, Terminal, step.Kind)
	assert.Equal(t, Cancelled, s.State())
	assert.False(t, step.Result.Success)
	assert.Zero(t, step.Result.PathLength)
	assert.Equal(t, 5, step.Result.NodesExplored)
}

func TestRunHonorsContext(t *testing.T) {
	t.Parallel()

	g := newGrid(t, 10, 10)
	s, err := New(g, AStar)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := s.Run(ctx)
	assert.False(t, res.Success)
	assert.Equal(t, Cancelled, s.State())
}

func TestSinks(t *testing.T) {
	t.Parallel()

	g := newGrid(t, 4, 4)
	s, err := New(g, AStar)
	require.NoError(t, err)

	var progressCalls, doneCalls int
	var last int
	s.OnProgress = func(explored int) {
		progressCalls++
		last = explored
	}
	s.OnDone = func(Result) { doneCalls++ }

	res := s.Run(context.Background())

	require.True(t, res.Success)
	assert.Equal(t, 1, doneCalls)
	assert.Greater(t, progressCalls, 0)
	// the progress sink skips start and end, so it fires once per
	// explored plain cell
	assert.Equal(t, res.NodesExplored-2, progressCalls)
	assert.LessOrEqual(t, last, res.NodesExplored)

	// terminal repeats must not re-fire the completion sink
	s.Step()
	assert.Equal(t, 1, doneCalls)
}

func TestStartEndNeverMarkedExplored(t *testing.T) {
	t.Parallel()

	g := newGrid(t, 4, 4)
	s, err := New(g, Dijkstra)
	require.NoError(t, err)
	res := s.Run(context.Background())

	require.True(t, res.Success)
	assert.False(t, g.StartCell().Explored)
	assert.False(t, g.EndCell().Explored)
	assert.True(t, g.StartCell().OnPath)
	assert.True(t, g.EndCell().OnPath)
}

func TestStats(t *testing.T) {
	t.Parallel()

	g := newGrid(t, 5, 5)
	s, err := New(g, AStar)
	require.NoError(t, err)

	explored, pathLen, state := s.Stats()
	assert.Zero(t, explored)
	assert.Zero(t, pathLen)
	assert.Equal(t, Ready, state)

	res := s.Run(context.Background())
	explored, pathLen, state = s.Stats()
	assert.Equal(t, res.NodesExplored, explored)
	assert.Equal(t, res.PathLength, pathLen)
	assert.Equal(t, Found, state)
}
