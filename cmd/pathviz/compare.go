package main

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/pathviz/pathviz-server/internal/grid"
	"github.com/pathviz/pathviz-server/internal/handlers"
	"github.com/pathviz/pathviz-server/internal/search"
)

type CompareResultDTO struct {
	Dijkstra search.Result `json:"dijkstra"`
	AStar    search.Result `json:"astar"`
	// Agree is false only if one algorithm found a path the other
	// missed or the path costs diverge, which would mean a bug.
	Agree bool `json:"agree"`
}

// pathCost sums the entry weights along a path. The start cell costs
// nothing; equally optimal paths may differ cell by cell but never in
// total cost.
func pathCost(g *grid.Grid, path []grid.Point) int {
	cost := 0
	for i := 1; i < len(path); i++ {
		cost += g.At(path[i].Row, path[i].Col).Weight
	}
	return cost
}

// handleCompare runs both algorithms against independent copies of the
// same layout and reports them side by side.
func (app *application) handleCompare(w http.ResponseWriter, r *http.Request) {
	layout := app.fetchAccessibleLayout(w, r)
	if layout == nil {
		return
	}

	rec, err := layout.Record()
	if err != nil {
		app.internalError(w, "failed to decode stored layout", "error", err)
		return
	}
	g, err := grid.FromRecord(rec)
	if err != nil {
		app.internalError(w, "stored layout failed validation", "error", err)
		return
	}

	var results [2]search.Result
	eg, ctx := errgroup.WithContext(r.Context())
	for i, algo := range []search.Algorithm{search.Dijkstra, search.AStar} {
		session, err := search.New(g.Clone(), algo)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			handlers.SendErrorOrLog(w, app.logger, err)
			return
		}
		eg.Go(func() error {
			results[i] = session.Run(ctx)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		app.internalError(w, "comparison run failed", "error", err)
		return
	}

	dijkstra, astar := results[0], results[1]
	handlers.SendJSONOrLog(w, app.logger, CompareResultDTO{
		Dijkstra: dijkstra,
		AStar:    astar,
		Agree: dijkstra.Success == astar.Success &&
			pathCost(g, dijkstra.Path) == pathCost(g, astar.Path),
	})
}
