package main

import (
	"net/http"

	"github.com/pathviz/pathviz-server/internal/grid"
	"github.com/pathviz/pathviz-server/internal/handlers"
	"github.com/pathviz/pathviz-server/internal/search"
)

type SolveResultDTO struct {
	Algorithm string        `json:"algorithm"`
	Result    search.Result `json:"result"`
}

func (app *application) handleSolve(w http.ResponseWriter, r *http.Request) {
	layout := app.fetchAccessibleLayout(w, r)
	if layout == nil {
		return
	}

	dto, err := decodeSolve(r.URL.Query())
	if err != nil {
		app.badRequest(w)
		return
	}
	algo, err := search.ParseAlgorithm(dto.Algorithm)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		handlers.SendErrorOrLog(w, app.logger, err)
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

	session, err := search.New(g, algo)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		handlers.SendErrorOrLog(w, app.logger, err)
		return
	}

	handlers.SendJSONOrLog(w, app.logger, SolveResultDTO{
		Algorithm: algo.String(),
		Result:    session.Run(r.Context()),
	})
}
