// Package grid implements the weighted 2-D cell matrix that maze
// generation and the search engines operate on.
//
// Cells live in a flat row-major arena and are referenced by index;
// predecessor links are indices into the same arena, never pointers, so
// the grid stays the sole owner of its cells.
package grid

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinSize = 2
	// MaxSize is a recommendation, not a hard cap; callers that accept
	// outside input should enforce it themselves.
	MaxSize = 50
)

var ErrBadSize = errors.New("grid dimensions must be at least 2x2")

// Grid is a rows x cols matrix of cells holding exactly one Start and one
// End cell at all times.
type Grid struct {
	rows, cols int
	cells      []Cell
	start, end int
}

// New creates a grid with every cell open at weight 1, Start in the top
// left corner and End in the bottom right.
func New(rows, cols int) (*Grid, error) {
	if rows < MinSize || cols < MinSize {
		return nil, fmt.Errorf("%w: got %dx%d", ErrBadSize, rows, cols)
	}
	g := &Grid{}
	g.init(rows, cols)
	return g, nil
}

func (g *Grid) init(rows, cols int) {
	g.rows, g.cols = rows, cols
	g.cells = make([]Cell, rows*cols)
	for i := range g.cells {
		c := &g.cells[i]
		c.Row, c.Col = i/cols, i%cols
		c.Weight = 1
		c.resetAnnotations()
	}
	g.start = 0
	g.end = len(g.cells) - 1
	g.cells[g.start].Role = Start
	g.cells[g.end].Role = End
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Size() int { return len(g.cells) }

func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Index converts (row, col) to an arena index. The caller is expected to
// have bounds-checked first.
func (g *Grid) Index(row, col int) int { return row*g.cols + col }

func (g *Grid) At(row, col int) *Cell { return &g.cells[g.Index(row, col)] }
func (g *Grid) CellAt(i int) *Cell    { return &g.cells[i] }
func (g *Grid) StartIndex() int       { return g.start }
func (g *Grid) EndIndex() int         { return g.end }
func (g *Grid) StartCell() *Cell      { return &g.cells[g.start] }
func (g *Grid) EndCell() *Cell        { return &g.cells[g.end] }

// Neighbors appends the in-bounds orthogonal neighbors of cell i to buf
// in the fixed order up, down, left, right. The order is load-bearing:
// it decides search tie-breaking, so it must never change.
func (g *Grid) Neighbors(i int, buf []int) []int {
	row, col := i/g.cols, i%g.cols
	if row > 0 {
		buf = append(buf, i-g.cols)
	}
	if row < g.rows-1 {
		buf = append(buf, i+g.cols)
	}
	if col > 0 {
		buf = append(buf, i-1)
	}
	if col < g.cols-1 {
		buf = append(buf, i+1)
	}
	return buf
}

// Manhattan returns the L1 distance between two cells.
func (g *Grid) Manhattan(i, j int) int {
	dr := i/g.cols - j/g.cols
	dc := i%g.cols - j%g.cols
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// SetStart moves the Start role onto (row, col). Placing Start onto the
// End cell (or out of bounds) is silently ignored, which keeps the
// one-Start-one-End invariant without burdening editing tools with error
// handling.
func (g *Grid) SetStart(row, col int) {
	g.setSpecial(row, col, Start)
}

// SetEnd mirrors SetStart for the End role.
func (g *Grid) SetEnd(row, col int) {
	g.setSpecial(row, col, End)
}

func (g *Grid) setSpecial(row, col int, role Role) {
	if !g.InBounds(row, col) {
		return
	}
	i := g.Index(row, col)
	other := g.end
	if role == End {
		other = g.start
	}
	if i == other {
		return
	}
	prev := g.start
	if role == End {
		prev = g.end
	}
	g.cells[prev].Role = Normal
	c := &g.cells[i]
	c.Role = role
	c.Wall = false
	c.Weight = 1
	if role == Start {
		g.start = i
	} else {
		g.end = i
	}
}

// SetWall turns (row, col) into a wall. Start and End cells cannot become
// walls; the call is ignored for them.
func (g *Grid) SetWall(row, col int) {
	if !g.InBounds(row, col) {
		return
	}
	c := g.At(row, col)
	if c.Special() {
		return
	}
	c.Wall = true
	c.Weight = 1
}

func (g *Grid) ClearWall(row, col int) {
	if !g.InBounds(row, col) {
		return
	}
	g.At(row, col).Wall = false
}

// SetWeight assigns a movement cost to (row, col). Weights below 1 and
// writes to walls or special cells are ignored.
func (g *Grid) SetWeight(row, col, weight int) {
	if !g.InBounds(row, col) || weight < 1 {
		return
	}
	c := g.At(row, col)
	if c.Wall || c.Special() {
		return
	}
	c.Weight = weight
}

// ResetAnnotations wipes the transient search state of every cell,
// leaving roles, walls and weights untouched.
func (g *Grid) ResetAnnotations() {
	for i := range g.cells {
		g.cells[i].resetAnnotations()
	}
}

// Clear resets every cell to an open weight-1 square and re-establishes
// the default corner Start/End placement.
func (g *Grid) Clear() {
	g.init(g.rows, g.cols)
}

// Resize reconstructs the grid at a new size, discarding all per-cell
// state.
func (g *Grid) Resize(rows, cols int) error {
	if rows < MinSize || cols < MinSize {
		return fmt.Errorf("%w: got %dx%d", ErrBadSize, rows, cols)
	}
	g.init(rows, cols)
	return nil
}

// Clone deep-copies the grid, annotations included. Each search session
// needs exclusive annotate access to its grid, so running two sessions
// side by side means cloning first.
func (g *Grid) Clone() *Grid {
	dup := &Grid{
		rows:  g.rows,
		cols:  g.cols,
		cells: make([]Cell, len(g.cells)),
		start: g.start,
		end:   g.end,
	}
	copy(dup.cells, g.cells)
	return dup
}

// String renders the grid as ASCII, one rune per cell: S/E for the
// special cells, # for walls, * for path cells, o for explored cells,
// the weight digit for weighted cells and . for plain ones.
func (g *Grid) String() string {
	var b strings.Builder
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			c := g.At(row, col)
			switch {
			case c.Role == Start:
				b.WriteByte('S')
			case c.Role == End:
				b.WriteByte('E')
			case c.Wall:
				b.WriteByte('#')
			case c.OnPath:
				b.WriteByte('*')
			case c.Explored:
				b.WriteByte('o')
			case c.Weight > 9:
				b.WriteByte('+')
			case c.Weight > 1:
				b.WriteByte(byte('0' + c.Weight))
			default:
				b.WriteByte('.')
			}
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
