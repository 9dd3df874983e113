// Package maze procedurally places walls and weights on a grid. The main
// entry point is Generate, which runs recursive division and then repairs
// connectivity so that End is always reachable from Start.
package maze

import (
	"log/slog"
	"math/rand/v2"

	"github.com/pathviz/pathviz-server/internal/grid"
)

var Log *slog.Logger = slog.Default()

const (
	// DefaultDetourChance is the probability that the repair corridor
	// takes a step that does not reduce Manhattan distance to End. Pure
	// greedy walks look like ruler lines; a detour now and then reads as
	// part of the maze.
	DefaultDetourChance = 0.3

	minRegion = 3
)

// Generate clears all walls and carves a recursive-division maze,
// guaranteeing afterwards that End is reachable from Start. Roles and
// weights are left alone.
func Generate(g *grid.Grid, rnd *rand.Rand) {
	GenerateWithDetour(g, rnd, DefaultDetourChance)
}

// GenerateWithDetour is Generate with an explicit detour chance for the
// repair corridor.
func GenerateWithDetour(g *grid.Grid, rnd *rand.Rand, detourChance float64) {
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			g.ClearWall(row, col)
		}
	}
	g.ResetAnnotations()
	divide(g, rnd, 0, g.Rows()-1, 0, g.Cols()-1, preferHorizontal(g, rnd))
	if EnsureConnected(g, rnd, detourChance) {
		Log.Debug("maze required connectivity repair",
			slog.Int("rows", g.Rows()), slog.Int("cols", g.Cols()))
	}
}

func preferHorizontal(g *grid.Grid, rnd *rand.Rand) bool {
	switch {
	case g.Rows() > g.Cols():
		return true
	case g.Cols() > g.Rows():
		return false
	default:
		return rnd.IntN(2) == 0
	}
}

// divide paints one random wall line across the region, carves a single
// passage through it and recurses into both halves with the orientation
// flipped. Regions thinner than three cells stay open.
func divide(g *grid.Grid, rnd *rand.Rand, top, bottom, left, right int, horizontal bool) {
	height := bottom - top + 1
	width := right - left + 1
	if height < minRegion || width < minRegion {
		return
	}

	if horizontal {
		wallRow := top + 1 + rnd.IntN(height-2)
		passage := left + rnd.IntN(width)
		for col := left; col <= right; col++ {
			if col == passage {
				continue
			}
			g.SetWall(wallRow, col) // skips Start/End on its own
		}
		divide(g, rnd, top, wallRow-1, left, right, false)
		divide(g, rnd, wallRow+1, bottom, left, right, false)
		return
	}

	wallCol := left + 1 + rnd.IntN(width-2)
	passage := top + rnd.IntN(height)
	for row := top; row <= bottom; row++ {
		if row == passage {
			continue
		}
		g.SetWall(row, wallCol)
	}
	divide(g, rnd, top, bottom, left, wallCol-1, true)
	divide(g, rnd, top, bottom, wallCol+1, right, true)
}

// Reachable reports whether End can be reached from Start over non-wall
// cells.
func Reachable(g *grid.Grid) bool {
	return reachableSet(g)[g.EndIndex()]
}

// CountReachable returns how many non-wall cells (Start included) are
// reachable from Start.
func CountReachable(g *grid.Grid) int {
	var n int
	for _, ok := range reachableSet(g) {
		if ok {
			n++
		}
	}
	return n
}

// reachableSet runs a breadth-first sweep from Start over non-wall cells
// using the grid's fixed neighbor order.
func reachableSet(g *grid.Grid) []bool {
	visited := make([]bool, g.Size())
	queue := make([]int, 0, g.Size())
	visited[g.StartIndex()] = true
	queue = append(queue, g.StartIndex())
	var buf []int
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		buf = g.Neighbors(cur, buf[:0])
		for _, nb := range buf {
			if visited[nb] || g.CellAt(nb).Wall {
				continue
			}
			visited[nb] = true
			queue = append(queue, nb)
		}
	}
	return visited
}

// EnsureConnected repairs the maze when End is unreachable by walking a
// corridor from Start toward End and clearing walls along the way. It
// reports whether a repair was needed.
func EnsureConnected(g *grid.Grid, rnd *rand.Rand, detourChance float64) bool {
	if Reachable(g) {
		return false
	}
	carveCorridor(g, rnd, detourChance)
	if !Reachable(g) {
		// The detoured walk ran out of its step budget. A zero-detour
		// walk strictly reduces Manhattan distance every step and cannot
		// miss.
		carveCorridor(g, rnd, 0)
	}
	return true
}

// carveCorridor walks from Start toward End preferring moves that reduce
// Manhattan distance, clearing walls on every visited cell. The walk
// stops at End or after 2*rows*cols steps, whichever comes first. Start
// and End roles are never modified: ClearWall is a no-op on them.
func carveCorridor(g *grid.Grid, rnd *rand.Rand, detourChance float64) {
	end := g.EndIndex()
	cur := g.StartIndex()
	maxSteps := 2 * g.Rows() * g.Cols()

	var buf []int
	var closer, detour [4]int
	for step := 0; step < maxSteps && cur != end; step++ {
		buf = g.Neighbors(cur, buf[:0])
		curDist := g.Manhattan(cur, end)
		nc, nd := 0, 0
		for _, nb := range buf {
			if g.Manhattan(nb, end) < curDist {
				closer[nc] = nb
				nc++
			} else {
				detour[nd] = nb
				nd++
			}
		}
		var next int
		switch {
		case nd > 0 && detourChance > 0 && rnd.Float64() < detourChance:
			next = detour[rnd.IntN(nd)]
		case nc > 0:
			next = closer[rnd.IntN(nc)]
		default:
			next = detour[rnd.IntN(nd)]
		}
		c := g.CellAt(next)
		g.ClearWall(c.Row, c.Col)
		cur = next
	}
}
