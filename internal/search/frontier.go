package search

import (
	"container/heap"

	"github.com/pathviz/pathviz-server/internal/grid"
)

// frontier yields the next cell a session should finalize. The two
// implementations differ in what they hold: the uniform-cost frontier is
// seeded with every cell up front, the A* frontier only with discovered
// ones.
type frontier interface {
	// pop removes and returns the best candidate, or ok=false when the
	// frontier is empty.
	pop() (i int, ok bool)
	// add makes sure a just-relaxed cell is present.
	add(i int)
}

// uniformFrontier holds every cell in row-major order and pops the one
// with the smallest recorded distance. Ties go to the earliest cell in
// row-major order, which is what makes uniform-cost output deterministic.
type uniformFrontier struct {
	g     *grid.Grid
	items []int
}

func newUniformFrontier(g *grid.Grid) *uniformFrontier {
	items := make([]int, g.Size())
	for i := range items {
		items[i] = i
	}
	return &uniformFrontier{g: g, items: items}
}

func (f *uniformFrontier) pop() (int, bool) {
	if len(f.items) == 0 {
		return 0, false
	}
	best := 0
	for k := 1; k < len(f.items); k++ {
		if f.g.CellAt(f.items[k]).Dist < f.g.CellAt(f.items[best]).Dist {
			best = k
		}
	}
	i := f.items[best]
	f.items = append(f.items[:best], f.items[best+1:]...)
	return i, true
}

// add is a no-op: every cell is in the frontier from the start.
func (f *uniformFrontier) add(int) {}

// astarItem snapshots a cell's f-score at insertion time. seq breaks
// f-score ties by insertion order; container/heap alone gives no
// stability guarantee.
type astarItem struct {
	idx int
	f   int
	seq int
}

type astarHeap []astarItem

func (h astarHeap) Len() int { return len(h) }

func (h astarHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}

func (h astarHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *astarHeap) Push(x any) { *h = append(*h, x.(astarItem)) }

func (h *astarHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// astarFrontier is a lazy-decrease-key min-heap on f-score: improving a
// cell pushes a fresh item and the stale one is skipped by the session
// when it eventually surfaces.
type astarFrontier struct {
	g   *grid.Grid
	h   astarHeap
	seq int
}

func newAstarFrontier(g *grid.Grid) *astarFrontier {
	f := &astarFrontier{g: g}
	heap.Init(&f.h)
	return f
}

func (f *astarFrontier) pop() (int, bool) {
	if f.h.Len() == 0 {
		return 0, false
	}
	item := heap.Pop(&f.h).(astarItem)
	return item.idx, true
}

func (f *astarFrontier) add(i int) {
	f.seq++
	heap.Push(&f.h, astarItem{idx: i, f: f.g.CellAt(i).F, seq: f.seq})
}
