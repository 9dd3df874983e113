package main

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/pathviz/pathviz-server/internal/handlers"
	"github.com/pathviz/pathviz-server/internal/repository"
)

// fetchAccessibleLayout loads the layout named by the {id} path value and
// enforces ownership. A nil layout means the response was already written.
func (app *application) fetchAccessibleLayout(
	w http.ResponseWriter, r *http.Request,
) *repository.GridLayout {
	publicId := r.PathValue("id")
	if publicId == "" {
		app.badRequest(w)
		return nil
	}

	layout, err := app.repo.FetchGridLayout(r.Context(), publicId)
	if errors.Is(err, pgx.ErrNoRows) {
		app.notFound(w)
		return nil
	}
	if err != nil {
		app.internalError(w, "failed to fetch grid layout", "error", err)
		return nil
	}

	if !app.mayAccess(r, layout) {
		app.unauthorized(w)
		return nil
	}
	return layout
}

func (app *application) handleFetchGrid(w http.ResponseWriter, r *http.Request) {
	layout := app.fetchAccessibleLayout(w, r)
	if layout == nil {
		return
	}

	dto, err := NewGridLayoutDTO(layout)
	if err != nil {
		app.internalError(w, "failed to create grid layout dto", "error", err)
		return
	}
	handlers.SendJSONOrLog(w, app.logger, dto)
}
