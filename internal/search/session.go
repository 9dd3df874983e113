// Package search runs uniform-cost (Dijkstra) and heuristic-guided (A*)
// shortest-path searches over a grid, one frontier pop per step.
//
// A Session borrows its grid exclusively for annotation writes until it
// reaches a terminal state; callers pace the search themselves by calling
// Step, or hand control to Run for a tight loop. Sessions are single-use.
package search

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/pathviz/pathviz-server/internal/grid"
)

var (
	ErrNilGrid       = errors.New("search requires a grid")
	ErrMisconfigured = errors.New("grid start/end references are not set up")
)

// Session drives one search over one grid. OnProgress fires once per
// explored non-special cell and OnDone exactly once per session; both are
// optional and never required for correctness.
type Session struct {
	g        *grid.Grid
	algo     Algorithm
	state    State
	frontier frontier
	done     []bool
	explored int
	result   *Result
	stop     atomic.Bool
	nbuf     []int

	OnProgress func(explored int)
	OnDone     func(Result)
}

// New resets the grid's transient annotations and seeds a fresh session.
// It fails fast when the grid's special cells are missing or collapsed
// onto each other, so no step can ever start from a broken setup.
func New(g *grid.Grid, algo Algorithm) (*Session, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if algo != Dijkstra && algo != AStar {
		return nil, ErrBadAlgorithm
	}
	start, end := g.StartIndex(), g.EndIndex()
	if start == end || g.StartCell().Role != grid.Start || g.EndCell().Role != grid.End {
		return nil, ErrMisconfigured
	}

	g.ResetAnnotations()
	s := &Session{
		g:    g,
		algo: algo,
		done: make([]bool, g.Size()),
	}

	sc := g.StartCell()
	sc.Dist = 0
	switch algo {
	case Dijkstra:
		s.frontier = newUniformFrontier(g)
	case AStar:
		sc.G = 0
		sc.H = g.Manhattan(start, end)
		sc.F = sc.H
		f := newAstarFrontier(g)
		f.add(start)
		s.frontier = f
	}
	return s, nil
}

func (s *Session) Grid() *grid.Grid     { return s.g }
func (s *Session) Algorithm() Algorithm { return s.algo }
func (s *Session) State() State         { return s.state }

// Stop requests cooperative cancellation. It is observed at the top of
// the next step, never mid-relaxation.
func (s *Session) Stop() { s.stop.Store(true) }

// Stats returns the running explored count, the final path length (0
// until a successful terminal step) and the current state.
func (s *Session) Stats() (nodesExplored, pathLength int, state State) {
	if s.result != nil {
		pathLength = s.result.PathLength
	}
	return s.explored, pathLength, s.state
}

// Step finalizes exactly one cell and reports either Progress or the
// Terminal result. Calling Step on a terminal session repeats the
// terminal step.
func (s *Session) Step() Step {
	if s.state.Terminal() {
		return Step{Kind: Terminal, Explored: s.explored, Result: s.result}
	}
	if s.stop.Load() {
		return s.finish(Cancelled, false)
	}
	s.state = Running

	for {
		i, ok := s.frontier.pop()
		if !ok {
			return s.finish(Exhausted, false)
		}
		c := s.g.CellAt(i)
		if c.Wall {
			// only the seeded uniform-cost frontier holds walls; they
			// are discarded without counting as a step
			continue
		}
		if s.algo == Dijkstra && c.Dist == grid.Inf {
			// the cheapest remaining cell was never reached, so nothing
			// further is reachable even though the frontier is not empty
			return s.finish(Exhausted, false)
		}
		if s.done[i] {
			// stale duplicate left behind by a lazy re-push
			continue
		}
		s.done[i] = true
		s.explored++
		if !c.Special() {
			c.Explored = true
			if s.OnProgress != nil {
				s.OnProgress(s.explored)
			}
		}
		if i == s.g.EndIndex() {
			return s.finish(Found, true)
		}
		s.relax(i)
		return Step{Kind: Progress, Explored: s.explored}
	}
}

// Run drives the session to a terminal state in a tight loop. Context
// cancellation translates into a cooperative Stop between steps.
func (s *Session) Run(ctx context.Context) Result {
	for {
		select {
		case <-ctx.Done():
			s.Stop()
		default:
		}
		step := s.Step()
		if step.Kind == Terminal {
			return *step.Result
		}
	}
}

// relax offers every in-bounds, non-wall, not-yet-finalized neighbor a
// cheaper route through the just-finalized cell. Costs only ever
// decrease, so predecessor chains cannot form cycles.
func (s *Session) relax(i int) {
	c := s.g.CellAt(i)
	s.nbuf = s.g.Neighbors(i, s.nbuf[:0])
	for _, nb := range s.nbuf {
		n := s.g.CellAt(nb)
		if n.Wall || s.done[nb] {
			continue
		}
		cand := c.Dist + n.Weight
		if cand >= n.Dist {
			continue
		}
		n.Dist = cand
		n.Prev = i
		if s.algo == AStar {
			n.G = cand
			n.H = s.g.Manhattan(nb, s.g.EndIndex())
			n.F = cand + n.H
		}
		s.frontier.add(nb)
	}
}

func (s *Session) finish(state State, found bool) Step {
	s.state = state
	res := Result{NodesExplored: s.explored}
	if found {
		res.Success = true
		res.Path = s.reconstructPath()
		res.PathLength = len(res.Path)
	}
	s.result = &res
	if s.OnDone != nil {
		s.OnDone(res)
	}
	return Step{Kind: Terminal, Explored: s.explored, Result: s.result}
}

// reconstructPath follows predecessor indices from End back to Start,
// marks the cells and returns the path in Start→End order.
func (s *Session) reconstructPath() []grid.Point {
	var rev []grid.Point
	for cur := s.g.EndIndex(); cur != -1 && len(rev) <= s.g.Size(); {
		c := s.g.CellAt(cur)
		c.OnPath = true
		rev = append(rev, grid.Point{Row: c.Row, Col: c.Col})
		if cur == s.g.StartIndex() {
			break
		}
		cur = c.Prev
	}
	path := make([]grid.Point, len(rev))
	for k := range rev {
		path[len(rev)-1-k] = rev[k]
	}
	return path
}
