// Package cli implements the interactive SevenTour client: browsing tour
// packages, countries and destinations, and the full authentication flow
// (register, login, Google sign-in, logout) on top of the session manager.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/seventour/seventour/internal/client/api"
	"github.com/seventour/seventour/internal/client/config"
	"github.com/seventour/seventour/internal/client/credstore"
	"github.com/seventour/seventour/internal/client/session"
	"github.com/seventour/seventour/internal/logging"
)

type App struct {
	config  *config.Config
	api     api.Client
	session *session.Manager
	logger  logging.Logger
	reader  *bufio.Reader

	// returnTo remembers the view a guard redirect interrupted, so a
	// successful login can send the user back there.
	returnTo string
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	store, _, err := credstore.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	creds := session.NewCredentials()
	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, creds)
	manager := session.NewManager(apiClient, store, creds, logger)

	return &App{
		config:  c,
		api:     apiClient,
		session: manager,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsAuthenticated
}

func (a *App) userLabel() string {
	s := a.session.Snapshot()
	if s.User == nil {
		return ""
	}
	return s.User.Email
}

func (a *App) Run(ctx context.Context) {
	// Validate any stored session before the first prompt; the REPL treats
	// the loading window as a barrier.
	a.session.Initialize(ctx)
	a.Root(ctx)
}
