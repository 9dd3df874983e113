package main

import (
	"fmt"
	"math/rand/v2"
	"net/http"

	"github.com/google/uuid"

	"github.com/pathviz/pathviz-server/internal/grid"
	"github.com/pathviz/pathviz-server/internal/handlers"
	"github.com/pathviz/pathviz-server/internal/maze"
	"github.com/pathviz/pathviz-server/internal/repository"
)

var ErrGridTooLarge = fmt.Errorf("grid dimensions may not exceed %d", grid.MaxSize)

// seededRand honors an explicit seed for reproducible generation and
// falls back to a random one.
func seededRand(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	return createRand()
}

func (app *application) handleNewGrid(w http.ResponseWriter, r *http.Request) {
	dto, err := decodeNewGrid(r.URL.Query())
	if err != nil {
		app.badRequest(w)
		return
	}
	if dto.Rows > grid.MaxSize || dto.Cols > grid.MaxSize {
		w.WriteHeader(http.StatusBadRequest)
		handlers.SendErrorOrLog(w, app.logger, ErrGridTooLarge)
		return
	}

	g, err := grid.New(dto.Rows, dto.Cols)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		handlers.SendErrorOrLog(w, app.logger, err)
		return
	}

	rnd := seededRand(dto.Seed)
	if dto.RandomEndpoints {
		maze.RandomizeStartEnd(g, rnd)
	}
	if dto.Maze {
		maze.Generate(g, rnd)
	}
	if dto.WeightFill > 0 {
		maze.RandomizeWeights(g, rnd, dto.WeightFill)
	}

	params := repository.CreateGridLayoutParams{
		PublicId: uuid.NewString(),
		Name:     dto.Name,
	}
	if userId, ok := app.authenticatedUserId(r); ok {
		params.UserId = &userId
	}

	layout, err := app.repo.CreateGridLayout(r.Context(), g.Snapshot(), params)
	if err != nil {
		app.internalError(w, "failed to create grid layout", "error", err)
		return
	}

	layoutDTO, err := NewGridLayoutDTO(layout)
	if err != nil {
		app.internalError(w, "failed to create grid layout dto", "error", err)
		return
	}

	handlers.SendJSONOrLog(w, app.logger, layoutDTO)
}
