package maze

import (
	"math/rand/v2"

	"github.com/pathviz/pathviz-server/internal/grid"
)

const maxDrawAttempts = 64

// weightSet holds the movement costs RandomizeWeights draws from; weight
// 1 comes from the fill probability misses.
var weightSet = []int{2, 5, 10}

// RandomizeStartEnd moves Start and End to random non-wall positions.
// Draws are retried up to a bounded attempt count; when the budget runs
// out the last draw is used as-is (SetStart/SetEnd clear walls anyway,
// and placing End onto Start is a no-op that keeps the old End).
func RandomizeStartEnd(g *grid.Grid, rnd *rand.Rand) {
	var sr, sc int
	for i := 0; i < maxDrawAttempts; i++ {
		sr, sc = rnd.IntN(g.Rows()), rnd.IntN(g.Cols())
		if !g.At(sr, sc).Wall {
			break
		}
	}
	g.SetStart(sr, sc)

	for i := 0; i < maxDrawAttempts; i++ {
		er, ec := rnd.IntN(g.Rows()), rnd.IntN(g.Cols())
		if er == sr && ec == sc {
			continue
		}
		if i < maxDrawAttempts-1 && g.At(er, ec).Wall {
			continue
		}
		g.SetEnd(er, ec)
		return
	}
}

// RandomizeWeights assigns each non-wall, non-special cell a weight drawn
// from weightSet with probability fill, and weight 1 otherwise.
func RandomizeWeights(g *grid.Grid, rnd *rand.Rand, fill float64) {
	for i := 0; i < g.Size(); i++ {
		c := g.CellAt(i)
		if c.Wall || c.Special() {
			continue
		}
		w := 1
		if rnd.Float64() < fill {
			w = weightSet[rnd.IntN(len(weightSet))]
		}
		g.SetWeight(c.Row, c.Col, w)
	}
}
