package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/pathviz/pathviz-server/internal/config"
	"github.com/pathviz/pathviz-server/internal/handlers"
	"github.com/pathviz/pathviz-server/internal/middleware"
	"github.com/pathviz/pathviz-server/internal/repository"
)

var (
	ErrBadAuthBody        = fmt.Errorf("request body must contain url-encoded username and password")
	ErrBadPasswordTooLong = fmt.Errorf("password too long")
	ErrUsernameTaken      = fmt.Errorf("username taken")
)

func (app *application) handleRegister(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.badRequest(w)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		w.WriteHeader(http.StatusBadRequest)
		handlers.SendErrorOrLog(w, app.logger, ErrBadAuthBody)
		return
	}

	passwordBytes := []byte(password)
	if len(passwordBytes) > 72 {
		w.WriteHeader(http.StatusBadRequest)
		handlers.SendErrorOrLog(w, app.logger, ErrBadPasswordTooLong)
		return
	}

	hash, err := bcrypt.GenerateFromPassword(passwordBytes, bcrypt.DefaultCost)
	if err != nil {
		app.internalError(w, "unable to hash password", "error", err)
		return
	}

	user, err := app.repo.CreateUser(r.Context(), repository.CreateUserParams{
		Username:     username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		w.WriteHeader(http.StatusConflict)
		handlers.SendErrorOrLog(w, app.logger, ErrUsernameTaken)
		return
	}
	if err != nil {
		app.internalError(w, "unable to insert user", "error", err)
		return
	}

	app.refreshAuth(w, user)
}

func (app *application) handleLogin(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.badRequest(w)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		w.WriteHeader(http.StatusBadRequest)
		handlers.SendErrorOrLog(w, app.logger, ErrBadAuthBody)
		return
	}

	user, err := app.repo.FetchUser(r.Context(), username)
	if errors.Is(err, pgx.ErrNoRows) {
		app.unauthorized(w)
		return
	}
	if err != nil {
		app.internalError(w, "could not fetch user from db", "error", err)
		return
	}

	err = bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password))
	if err != nil {
		app.unauthorized(w)
		return
	}

	app.refreshAuth(w, user)
}

func (app *application) refreshAuth(w http.ResponseWriter, user *repository.User) {
	token, err := app.jwt.Sign(config.NewUserClaims(user.UserId, user.Username))
	if err != nil {
		app.internalError(w, "failed to sign user claims", "error", err)
		return
	}
	if err := app.cookies.Refresh(w, token); err != nil {
		app.internalError(w, "failed to set auth cookies", "error", err)
		return
	}
	handlers.SendMessageOrLog(w, app.logger, "ok")
}

func (app *application) handleLogout(w http.ResponseWriter, r *http.Request) {
	app.cookies.Clear(w)
	handlers.SendMessageOrLog(w, app.logger, "ok")
}

func (app *application) handleStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		handlers.SendJSONOrLog(w, app.logger, map[string]any{
			"authenticated": false,
		})
		return
	}
	handlers.SendJSONOrLog(w, app.logger, map[string]any{
		"authenticated": true,
		"username":      claims.Username,
	})
}
