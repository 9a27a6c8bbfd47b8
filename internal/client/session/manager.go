// Package session owns the client's authentication state: token acquisition,
// persistence, validation on startup, and expiry handling. The Manager is the
// single source of truth for "who is logged in"; every other component reads
// session state through Snapshot and never touches the credential store
// directly.
package session

import (
	"context"
	"sync"

	"github.com/seventour/seventour/internal/client/api"
	"github.com/seventour/seventour/internal/client/credstore"
	"github.com/seventour/seventour/internal/client/models"
	"github.com/seventour/seventour/internal/common"
	"github.com/seventour/seventour/internal/logging"
)

// Session is an immutable snapshot of the authentication state.
//
// IsLoading is true only during Initialize or an in-flight profile fetch;
// consumers must treat the initial IsLoading window as a barrier and make no
// allow/deny decisions until it clears.
type Session struct {
	IsAuthenticated bool
	User            *models.User
	IsLoading       bool
}

// Manager reconciles in-memory authentication state with the credential
// store and the remote profile endpoint.
//
// Operations may overlap; there is no serialization beyond natural request
// ordering, and the last response to land wins on the shared user/
// authenticated fields. The mutex protects field access, not operation
// ordering.
type Manager struct {
	api    api.Client
	store  credstore.Store
	creds  *Credentials
	logger logging.Logger

	mu      sync.Mutex
	user    *models.User
	authed  bool
	loading bool
}

// NewManager builds a Manager in its initial state: loading, no user. The
// caller must run Initialize once before consulting Snapshot for navigation
// decisions.
func NewManager(apiClient api.Client, store credstore.Store, creds *Credentials, logger logging.Logger) *Manager {
	return &Manager{
		api:     apiClient,
		store:   store,
		creds:   creds,
		logger:  logger.With("module", "session"),
		loading: true,
	}
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Session{IsAuthenticated: m.authed, User: m.user, IsLoading: m.loading}
}

// Initialize runs once at process start. If a stored access token exists it
// is attached as the bearer credential and validated by fetching the current
// profile; any failure there (transport, rejection, malformed response)
// clears both stored tokens, detaches the credential, and leaves the session
// anonymous. Without a stored token the session goes straight to anonymous
// with no network call. Always ends with IsLoading false.
func (m *Manager) Initialize(ctx context.Context) {
	defer m.setLoading(false)

	token, err := m.store.Get(ctx, common.AccessTokenKey)
	if err != nil {
		m.logger.Warn(ctx, "credential store read failed", "error", err)
		token = ""
	}
	if token == "" {
		m.setAnonymous()
		return
	}

	m.creds.attach(token)

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.logger.Warn(ctx, "stored token validation failed, logging out", "error", err)
		m.discardCredentials(ctx)
		m.setAnonymous()
		return
	}

	m.setAuthenticated(user)
}

// Login persists the token pair, attaches the bearer credential, and adopts
// the user profile. When the caller already has the profile (login and
// registration responses carry it inline) it is adopted directly; otherwise
// the profile is fetched remotely with the same failure handling as
// Initialize: on any failure both tokens are discarded and the session ends
// anonymous.
func (m *Manager) Login(ctx context.Context, accessToken, refreshToken string, user *models.User) error {
	if err := m.store.Set(ctx, common.AccessTokenKey, accessToken); err != nil {
		m.logger.Warn(ctx, "failed to persist access token", "error", err)
	}
	if refreshToken != "" {
		if err := m.store.Set(ctx, common.RefreshTokenKey, refreshToken); err != nil {
			m.logger.Warn(ctx, "failed to persist refresh token", "error", err)
		}
	}

	m.creds.attach(accessToken)

	if user != nil {
		m.setAuthenticated(user)
		return nil
	}

	fetched, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.logger.Warn(ctx, "profile fetch after login failed, logging out", "error", err)
		m.discardCredentials(ctx)
		m.setAnonymous()
		return err
	}

	m.setAuthenticated(fetched)
	return nil
}

// Logout clears both stored tokens, detaches the bearer credential, and
// resets the session to anonymous. A server-side invalidation call is
// attempted first, best-effort: its failure never blocks the local logout.
// Logout performs no navigation.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		m.logger.Warn(ctx, "server-side logout failed, continuing locally", "error", err)
	}

	m.discardCredentials(ctx)
	m.setAnonymous()
}

// FetchCurrentUser re-fetches the profile from the backend. On success the
// held user is replaced and returned. On failure the error is returned and
// the existing session state is left untouched: unlike Initialize, a failed
// refetch does not force logout, so a still-valid session is not destroyed
// by a transient network blip. This asymmetry is deliberate.
func (m *Manager) FetchCurrentUser(ctx context.Context) (*models.User, error) {
	m.setLoading(true)
	defer m.setLoading(false)

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.logger.Warn(ctx, "profile refetch failed, keeping session", "error", err)
		return nil, err
	}

	m.setAuthenticated(user)
	return user, nil
}

func (m *Manager) discardCredentials(ctx context.Context) {
	if err := m.store.Remove(ctx, common.AccessTokenKey); err != nil {
		m.logger.Warn(ctx, "failed to remove access token", "error", err)
	}
	if err := m.store.Remove(ctx, common.RefreshTokenKey); err != nil {
		m.logger.Warn(ctx, "failed to remove refresh token", "error", err)
	}
	m.creds.detach()
}

func (m *Manager) setAuthenticated(user *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
	m.authed = true
}

func (m *Manager) setAnonymous() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	m.authed = false
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = v
}
