package main

import (
	"context"
	"errors"
	"fmt"
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	pathviz "github.com/pathviz/pathviz-server"
	"github.com/pathviz/pathviz-server/internal/config"
	"github.com/pathviz/pathviz-server/internal/database"
	"github.com/pathviz/pathviz-server/internal/middleware"
	"github.com/pathviz/pathviz-server/internal/repository"
)

// createRand seeds a generator per use; sharing one across request
// handlers would race.
func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func main() {
	var logger *slog.Logger
	if config.Development() {
		_ = godotenv.Load()
		logger = slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		)
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	db, err := database.ConnectAndMigrate(ctx, pathviz.Migrations)
	if err != nil {
		logger.Error("failed to connect and migrate db", "error", err)
		return
	}
	defer db.Close()

	jwt, err := config.NewJWT()
	if err != nil {
		logger.Error("failed to load jwt keys", "error", err)
		return
	}

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		logger.Error("failed to read cookies config", "error", err)
		return
	}

	ws, err := config.NewWebSocket()
	if err != nil {
		logger.Error("failed to read ws config", "error", err)
		return
	}

	basePath := config.BasePath()
	port := config.Port()

	app := &application{
		logger:  logger,
		repo:    repository.New(db),
		jwt:     jwt,
		cookies: cookies,
		ws:      ws,
	}
	handler := middleware.Wrap(
		app.ServeMux(),
		middleware.Auth(cookies),
		middleware.Cors(),
		middleware.Logging(logger),
	)
	server := &http.Server{
		Addr:    port,
		Handler: handler,
	}

	errCh := make(chan error, 1)

	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to listen and serve: %w", err)
		}
		close(errCh)
	}()

	logger.Info("pathviz online", slog.String("port", port), slog.String("base path", basePath))

	select {
	case <-ctx.Done():
		break
	case err := <-errCh:
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}

	sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()

	server.Shutdown(sCtx)
}
