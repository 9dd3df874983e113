package main

import (
	"net/http"

	"github.com/pathviz/pathviz-server/internal/handlers"
)

func (app *application) handleDeleteGrid(w http.ResponseWriter, r *http.Request) {
	layout := app.fetchAccessibleLayout(w, r)
	if layout == nil {
		return
	}

	if err := app.repo.DeleteGridLayout(r.Context(), layout.PublicId); err != nil {
		app.internalError(w, "failed to delete grid layout", "error", err)
		return
	}

	handlers.SendMessageOrLog(w, app.logger, "deleted")
}
