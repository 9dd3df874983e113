package main

import (
	"net/http"

	"github.com/pathviz/pathviz-server/internal/grid"
	"github.com/pathviz/pathviz-server/internal/handlers"
	"github.com/pathviz/pathviz-server/internal/maze"
)

// handleGenerateMaze carves a fresh maze into a stored layout and
// persists the result.
func (app *application) handleGenerateMaze(w http.ResponseWriter, r *http.Request) {
	layout := app.fetchAccessibleLayout(w, r)
	if layout == nil {
		return
	}

	dto, err := decodeMaze(r.URL.Query())
	if err != nil {
		app.badRequest(w)
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

	rnd := seededRand(dto.Seed)
	if dto.RandomEndpoints {
		maze.RandomizeStartEnd(g, rnd)
	}
	maze.Generate(g, rnd)
	if dto.WeightFill > 0 {
		maze.RandomizeWeights(g, rnd, dto.WeightFill)
	}

	updated, err := app.repo.UpdateGridLayout(r.Context(), layout.PublicId, g.Snapshot())
	if err != nil {
		app.internalError(w, "failed to update grid layout", "error", err)
		return
	}

	layoutDTO, err := NewGridLayoutDTO(updated)
	if err != nil {
		app.internalError(w, "failed to create grid layout dto", "error", err)
		return
	}
	handlers.SendJSONOrLog(w, app.logger, layoutDTO)
}
