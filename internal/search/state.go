package search

import (
	"errors"
	"strings"

	"github.com/pathviz/pathviz-server/internal/grid"
)

// State tracks a session through its life. Found, Exhausted and
// Cancelled are terminal: a terminal session never steps again.
type State int8

const (
	Ready State = iota
	Running
	Found
	Exhausted
	Cancelled
)

func (s State) Terminal() bool {
	return s == Found || s == Exhausted || s == Cancelled
}

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

type Algorithm int8

const (
	Dijkstra Algorithm = iota + 1
	AStar
)

var ErrBadAlgorithm = errors.New(`algorithm must be one of "dijkstra", "astar"`)

func (a Algorithm) String() string {
	switch a {
	case Dijkstra:
		return "dijkstra"
	case AStar:
		return "astar"
	default:
		return "unknown"
	}
}

func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(s) {
	case "dijkstra", "uniform":
		return Dijkstra, nil
	case "astar", "a*":
		return AStar, nil
	default:
		return 0, ErrBadAlgorithm
	}
}

// Result is the payload of any terminal transition. PathLength counts
// cells, not edges, and Path is populated only on success.
type Result struct {
	Success       bool         `json:"success"`
	NodesExplored int          `json:"nodesExplored"`
	PathLength    int          `json:"pathLength"`
	Path          []grid.Point `json:"path,omitempty"`
}

type StepKind int8

const (
	// Progress steps carry the running explored count.
	Progress StepKind = iota + 1
	// Terminal steps carry the final result; every step after the first
	// terminal one repeats it.
	Terminal
)

// Step is what a single call to (*Session).Step yields.
type Step struct {
	Kind     StepKind
	Explored int
	Result   *Result
}
