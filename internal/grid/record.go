package grid

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrBadRecord   = errors.New("malformed grid record")
	ErrRecordRoles = errors.New("grid record must contain exactly one start and one end cell")
)

// CellRecord is the persisted form of a single cell. Transient search
// annotations are never part of it.
type CellRecord struct {
	Row     int  `json:"row"`
	Col     int  `json:"col"`
	IsStart bool `json:"isStart"`
	IsEnd   bool `json:"isEnd"`
	IsWall  bool `json:"isWall"`
	Weight  int  `json:"weight"`
}

// Record is the lossless wire form of a grid: dimensions plus a row-major
// cell sequence carrying role, wall and weight fields only.
type Record struct {
	Rows  int          `json:"rows"`
	Cols  int          `json:"cols"`
	Cells []CellRecord `json:"cells"`
}

// Snapshot captures the persistent fields of every cell in row-major
// order.
func (g *Grid) Snapshot() Record {
	rec := Record{
		Rows:  g.rows,
		Cols:  g.cols,
		Cells: make([]CellRecord, len(g.cells)),
	}
	for i := range g.cells {
		c := &g.cells[i]
		rec.Cells[i] = CellRecord{
			Row:     c.Row,
			Col:     c.Col,
			IsStart: c.Role == Start,
			IsEnd:   c.Role == End,
			IsWall:  c.Wall,
			Weight:  c.Weight,
		}
	}
	return rec
}

// MarshalJSON round-trips through Snapshot so a *Grid can be embedded in
// API payloads directly.
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Snapshot())
}

// Validate checks a record for shape errors without touching any grid. A
// cell flagged both wall and start/end is normalized in favor of the role
// rather than rejected.
func (rec *Record) Validate() error {
	if rec.Rows < MinSize || rec.Cols < MinSize {
		return fmt.Errorf("%w: size %dx%d", ErrBadRecord, rec.Rows, rec.Cols)
	}
	if len(rec.Cells) != rec.Rows*rec.Cols {
		return fmt.Errorf("%w: want %d cells, got %d",
			ErrBadRecord, rec.Rows*rec.Cols, len(rec.Cells))
	}
	var starts, ends int
	seen := make(map[Point]struct{}, len(rec.Cells))
	for _, cr := range rec.Cells {
		if cr.Row < 0 || cr.Row >= rec.Rows || cr.Col < 0 || cr.Col >= rec.Cols {
			return fmt.Errorf("%w: cell (%d,%d) out of bounds", ErrBadRecord, cr.Row, cr.Col)
		}
		p := Point{cr.Row, cr.Col}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("%w: duplicate cell (%d,%d)", ErrBadRecord, cr.Row, cr.Col)
		}
		seen[p] = struct{}{}
		if cr.Weight < 1 {
			return fmt.Errorf("%w: cell (%d,%d) has weight %d", ErrBadRecord, cr.Row, cr.Col, cr.Weight)
		}
		if cr.IsStart && cr.IsEnd {
			return fmt.Errorf("%w: cell (%d,%d) is both start and end", ErrBadRecord, cr.Row, cr.Col)
		}
		if cr.IsStart {
			starts++
		}
		if cr.IsEnd {
			ends++
		}
	}
	if starts != 1 || ends != 1 {
		return fmt.Errorf("%w: %d starts, %d ends", ErrRecordRoles, starts, ends)
	}
	return nil
}

// Load replaces the grid contents with the record, resizing first when
// the declared dimensions differ. Load is all-or-nothing: a record that
// fails validation leaves the grid exactly as it was.
func (g *Grid) Load(rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	g.init(rec.Rows, rec.Cols)
	// init placed default corner roles; overwrite everything below.
	g.cells[g.start].Role = Normal
	g.cells[g.end].Role = Normal
	for _, cr := range rec.Cells {
		c := g.At(cr.Row, cr.Col)
		i := g.Index(cr.Row, cr.Col)
		switch {
		case cr.IsStart:
			c.Role = Start
			c.Weight = 1
			g.start = i
		case cr.IsEnd:
			c.Role = End
			c.Weight = 1
			g.end = i
		default:
			c.Role = Normal
			c.Wall = cr.IsWall
			c.Weight = cr.Weight
			if c.Wall {
				c.Weight = 1
			}
		}
	}
	return nil
}

// FromRecord builds a fresh grid from a validated record.
func FromRecord(rec Record) (*Grid, error) {
	g := &Grid{}
	if err := g.Load(rec); err != nil {
		return nil, err
	}
	return g, nil
}
