package grid

import "math"

// Inf marks a distance that no relaxation has reached yet.
const Inf = math.MaxInt

type Role int8

const (
	Normal Role = iota
	Start
	End
)

func (r Role) String() string {
	switch r {
	case Start:
		return "start"
	case End:
		return "end"
	default:
		return "normal"
	}
}

// Cell is one square of the grid. Row and Col never change after
// construction. Wall is mutually exclusive with the Start/End roles and
// Weight is meaningless while Wall is set.
//
// Everything below Weight is a transient search annotation: it belongs to
// whichever search session currently borrows the grid and is wiped by
// (*Grid).ResetAnnotations.
type Cell struct {
	Row    int
	Col    int
	Role   Role
	Wall   bool
	Weight int

	Explored bool
	OnPath   bool
	Dist     int
	Prev     int // index of the predecessor cell, -1 when unset
	G, H, F  int
}

func (c *Cell) Special() bool {
	return c.Role != Normal
}

func (c *Cell) resetAnnotations() {
	c.Explored = false
	c.OnPath = false
	c.Dist = Inf
	c.Prev = -1
	c.G, c.H, c.F = 0, 0, 0
}

// Point is a (row, col) pair, the wire-friendly way to reference a cell.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
