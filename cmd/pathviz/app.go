package main

import (
	"log/slog"
	"net/http"

	"github.com/pathviz/pathviz-server/internal/config"
	"github.com/pathviz/pathviz-server/internal/middleware"
	"github.com/pathviz/pathviz-server/internal/repository"
)

type application struct {
	logger  *slog.Logger
	repo    *repository.Queries
	jwt     *config.JWT
	cookies *config.Cookies
	ws      *config.WebSocket
}

func (app *application) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /register", app.handleRegister)
	mux.HandleFunc("POST /login", app.handleLogin)
	mux.HandleFunc("POST /logout", app.handleLogout)
	mux.HandleFunc("GET /status", app.handleStatus)

	mux.HandleFunc("POST /grids", app.handleNewGrid)
	mux.HandleFunc("GET /grids", app.handleListGrids)
	mux.HandleFunc("GET /grids/{id}", app.handleFetchGrid)
	mux.HandleFunc("PUT /grids/{id}", app.handleSaveGrid)
	mux.HandleFunc("DELETE /grids/{id}", app.handleDeleteGrid)
	mux.HandleFunc("POST /grids/{id}/maze", app.handleGenerateMaze)
	mux.HandleFunc("POST /grids/{id}/solve", app.handleSolve)
	mux.HandleFunc("POST /grids/{id}/compare", app.handleCompare)
	mux.HandleFunc("GET /grids/{id}/connect", app.wsConnect)

	return mux
}

func (app *application) authenticatedUserId(r *http.Request) (int64, bool) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		return 0, false
	}
	return claims.UserId, true
}

// mayAccess reports whether the request is allowed to read or mutate a
// layout: anonymous layouts are open, owned layouts require the owner.
func (app *application) mayAccess(r *http.Request, layout *repository.GridLayout) bool {
	if layout.UserId == nil {
		return true
	}
	userId, ok := app.authenticatedUserId(r)
	return ok && userId == *layout.UserId
}

func (app *application) badRequest(w http.ResponseWriter) {
	w.WriteHeader(http.StatusBadRequest)
	w.Write([]byte("your request is invalid"))
}

func (app *application) unauthorized(w http.ResponseWriter) {
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte("you are not allowed to execute this operation"))
}

func (app *application) notFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("not found :("))
}

func (app *application) internalError(w http.ResponseWriter, msg string, args ...any) {
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte("internal error"))
	app.logger.Error(msg, args...)
}
