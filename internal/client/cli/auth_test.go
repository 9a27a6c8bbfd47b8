package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seventour/seventour/internal/client/api"
	"github.com/seventour/seventour/internal/client/models"
	"github.com/seventour/seventour/internal/client/session"
	"github.com/seventour/seventour/internal/logging"
)

type memStore struct {
	data map[string]string
}

func newMemStore() *memStore { return &memStore{data: map[string]string{}} }

func (s *memStore) Set(ctx context.Context, key, value string) error {
	s.data[key] = value
	return nil
}
func (s *memStore) Get(ctx context.Context, key string) (string, error) {
	return s.data[key], nil
}
func (s *memStore) Remove(ctx context.Context, key string) error {
	delete(s.data, key)
	return nil
}
func (s *memStore) Clear(ctx context.Context) error {
	s.data = map[string]string{}
	return nil
}

type stubAPI struct {
	loginPayload *api.AuthPayload
	loginErr     error

	currentUser      *models.User
	currentUserErr   error
	currentUserCalls int
}

func (s *stubAPI) Login(ctx context.Context, email, password string) (*api.AuthPayload, error) {
	return s.loginPayload, s.loginErr
}
func (s *stubAPI) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthPayload, error) {
	return s.loginPayload, s.loginErr
}
func (s *stubAPI) GoogleLogin(ctx context.Context, idToken string) (*api.AuthPayload, error) {
	return s.loginPayload, s.loginErr
}
func (s *stubAPI) CurrentUser(ctx context.Context) (*models.User, error) {
	s.currentUserCalls++
	return s.currentUser, s.currentUserErr
}
func (s *stubAPI) Logout(ctx context.Context) error { return nil }
func (s *stubAPI) RefreshToken(ctx context.Context, refresh string) (string, error) {
	return "", nil
}
func (s *stubAPI) TourPackages(ctx context.Context, q api.PackageQuery) (*models.TourPackagePage, error) {
	return &models.TourPackagePage{}, nil
}
func (s *stubAPI) TourPackage(ctx context.Context, id int64) (*models.TourPackage, error) {
	return &models.TourPackage{ID: id}, nil
}
func (s *stubAPI) Countries(ctx context.Context, search string) (*models.CountryPage, error) {
	return &models.CountryPage{}, nil
}
func (s *stubAPI) Destinations(ctx context.Context, countryID int64) (*models.DestinationPage, error) {
	return &models.DestinationPage{}, nil
}
func (s *stubAPI) ProfilePhotoUpload(ctx context.Context) (*api.PhotoUpload, error) {
	return &api.PhotoUpload{}, nil
}
func (s *stubAPI) Ping(ctx context.Context) error { return nil }

func newTestApp(t *testing.T, stub *stubAPI) *App {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	creds := session.NewCredentials()
	manager := session.NewManager(stub, newMemStore(), creds, logger)
	manager.Initialize(context.Background())
	return &App{
		api:     stub,
		session: manager,
		logger:  logger,
		reader:  bufio.NewReader(strings.NewReader("")),
	}
}

func stubPrompts(t *testing.T, text string, password []byte) {
	t.Helper()
	origText, origPw := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		return text, nil
	}
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		pw := make([]byte, len(password))
		copy(pw, password)
		return pw, nil
	}
	t.Cleanup(func() { getSimpleText, getPassword = origText, origPw })
}

func TestLogin_AdoptsInlineProfile(t *testing.T) {
	user := &models.User{PK: 7, Email: "user@example.com"}
	stub := &stubAPI{loginPayload: &api.AuthPayload{
		AccessToken:  "acc",
		RefreshToken: "ref",
		User:         user,
	}}
	app := newTestApp(t, stub)
	stubPrompts(t, "user@example.com", []byte("secret"))

	require.NoError(t, app.Login(context.Background()))

	s := app.session.Snapshot()
	require.True(t, s.IsAuthenticated)
	require.Equal(t, "user@example.com", s.User.Email)
	// profile came inline, no fetch needed
	require.Zero(t, stub.currentUserCalls)
}

func TestLogin_SurfacesBackendRejection(t *testing.T) {
	stub := &stubAPI{loginErr: &api.APIError{
		StatusCode: 400,
		Fields:     map[string][]string{"non_field_errors": {"Unable to log in with provided credentials."}},
	}}
	app := newTestApp(t, stub)
	stubPrompts(t, "user@example.com", []byte("wrong"))

	require.Error(t, app.Login(context.Background()))
	require.False(t, app.session.Snapshot().IsAuthenticated)
}

func TestOpenProtected_RedirectsAnonymousThroughLogin(t *testing.T) {
	user := &models.User{PK: 1, Email: "back@example.com"}
	stub := &stubAPI{
		loginPayload: &api.AuthPayload{AccessToken: "acc", User: user},
		currentUser:  user,
	}
	app := newTestApp(t, stub)
	stubPrompts(t, "back@example.com", []byte("secret"))

	require.NoError(t, app.OpenProtected(context.Background(), "whoami"))

	// login succeeded and the interrupted view was reopened, which
	// refetches the profile
	require.True(t, app.session.Snapshot().IsAuthenticated)
	require.Equal(t, 1, stub.currentUserCalls)
	require.Empty(t, app.returnTo)
}

func TestOpenProtected_AllowsAuthenticated(t *testing.T) {
	user := &models.User{PK: 1, Email: "in@example.com"}
	stub := &stubAPI{
		loginPayload: &api.AuthPayload{AccessToken: "acc", User: user},
		currentUser:  user,
	}
	app := newTestApp(t, stub)
	stubPrompts(t, "in@example.com", []byte("secret"))
	require.NoError(t, app.Login(context.Background()))
	calls := stub.currentUserCalls

	require.NoError(t, app.OpenProtected(context.Background(), "whoami"))
	require.Equal(t, calls+1, stub.currentUserCalls)
}

func TestWhoAmI_FallsBackToCachedProfileOnFetchFailure(t *testing.T) {
	user := &models.User{PK: 3, Email: "cached@example.com"}
	stub := &stubAPI{
		loginPayload: &api.AuthPayload{AccessToken: "acc", User: user},
	}
	app := newTestApp(t, stub)
	stubPrompts(t, "cached@example.com", []byte("secret"))
	require.NoError(t, app.Login(context.Background()))

	stub.currentUserErr = io.ErrUnexpectedEOF
	require.NoError(t, app.WhoAmI(context.Background()))

	// the failed refetch did not destroy the session
	s := app.session.Snapshot()
	require.True(t, s.IsAuthenticated)
	require.Equal(t, "cached@example.com", s.User.Email)
}

func TestLogout_ClearsSession(t *testing.T) {
	user := &models.User{PK: 5, Email: "out@example.com"}
	stub := &stubAPI{loginPayload: &api.AuthPayload{AccessToken: "acc", User: user}}
	app := newTestApp(t, stub)
	stubPrompts(t, "out@example.com", []byte("secret"))
	require.NoError(t, app.Login(context.Background()))

	require.NoError(t, app.Logout(context.Background()))
	require.False(t, app.session.Snapshot().IsAuthenticated)
}
