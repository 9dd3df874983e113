package main

import (
	"encoding/json"
	"net/http"

	"github.com/pathviz/pathviz-server/internal/grid"
	"github.com/pathviz/pathviz-server/internal/handlers"
)

// handleSaveGrid replaces a stored layout with the record in the request
// body. The record is validated up front so a bad payload never clobbers
// the stored grid.
func (app *application) handleSaveGrid(w http.ResponseWriter, r *http.Request) {
	layout := app.fetchAccessibleLayout(w, r)
	if layout == nil {
		return
	}

	var rec grid.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		app.badRequest(w)
		return
	}
	if err := rec.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		handlers.SendErrorOrLog(w, app.logger, err)
		return
	}

	updated, err := app.repo.UpdateGridLayout(r.Context(), layout.PublicId, rec)
	if err != nil {
		app.internalError(w, "failed to update grid layout", "error", err)
		return
	}

	dto, err := NewGridLayoutDTO(updated)
	if err != nil {
		app.internalError(w, "failed to create grid layout dto", "error", err)
		return
	}
	handlers.SendJSONOrLog(w, app.logger, dto)
}
