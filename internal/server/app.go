// Package server initializes and runs the SevenTour backend: it opens the
// database, runs migrations, wires services, and serves the REST API with
// graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/seventour/seventour/internal/logging"
	"github.com/seventour/seventour/internal/server/config"
	"github.com/seventour/seventour/internal/server/googleauth"
	"github.com/seventour/seventour/internal/server/httpapi"
	"github.com/seventour/seventour/internal/server/repositories/repomanager"
	"github.com/seventour/seventour/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config       *config.Config
	logger       logging.Logger
	userService  *services.UserService
	tourService  *services.TourService
	mediaService *services.MediaService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := repomanager.OpenDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	google := googleauth.NewGoogleVerifier(cfg.GoogleClientID)

	return &App{
		config:       cfg,
		logger:       logger,
		userService:  services.NewUserService(db, rm, google, cfg),
		tourService:  services.NewTourService(db, rm),
		mediaService: services.NewMediaService(db, rm, cfg),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the API until the context is cancelled or the listener fails,
// then drains in-flight requests.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	api := httpapi.New(app.userService, app.tourService, app.mediaService,
		[]byte(app.config.SecretKey), app.logger)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: api,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "server error", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err)
	}

	app.logger.Info(shutdownCtx, "Server stopped")
}
