package main

import (
	"net/http"

	"github.com/pathviz/pathviz-server/internal/handlers"
)

func (app *application) handleListGrids(w http.ResponseWriter, r *http.Request) {
	userId, ok := app.authenticatedUserId(r)
	if !ok {
		app.unauthorized(w)
		return
	}

	layouts, err := app.repo.ListGridLayouts(r.Context(), userId)
	if err != nil {
		app.internalError(w, "failed to list grid layouts", "error", err)
		return
	}

	dtos := make([]GridLayoutDTO, 0, len(layouts))
	for _, layout := range layouts {
		dto, err := NewGridLayoutDTO(layout)
		if err != nil {
			app.internalError(w, "failed to create grid layout dto", "error", err)
			return
		}
		dtos = append(dtos, dto)
	}

	handlers.SendJSONOrLog(w, app.logger, dtos)
}
