package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// staticCreds is a trivial CredentialProvider for tests.
type staticCreds struct {
	token string
}

func (s *staticCreds) AccessToken() string { return s.token }

func newTestClient(t *testing.T, handler http.Handler, token string) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 5*time.Second, &staticCreds{token: token}), srv
}

func TestLogin_Success(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login/", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a@b.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"acc","refresh_token":"ref","user":{"pk":1,"email":"a@b.com"}}`))
	}), "")

	payload, err := c.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "acc", payload.AccessToken)
	require.Equal(t, "ref", payload.RefreshToken)
	require.Equal(t, "a@b.com", payload.User.Email)
}

func TestLogin_BadCredentials_SurfacesBackendMessage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"non_field_errors":["Unable to log in with provided credentials."]}`))
	}), "")

	_, err := c.Login(context.Background(), "x@y.com", "bad")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "Unable to log in with provided credentials.", apiErr.Message())
}

func TestRegister_FieldErrors(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"email":["A user is already registered with this e-mail address."],"password2":["The two password fields didn't match."]}`))
	}), "")

	_, err := c.Register(context.Background(), RegisterRequest{Email: "a@b.com"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t,
		[]string{"A user is already registered with this e-mail address."},
		apiErr.FieldMessages("email"))
	require.Contains(t, apiErr.Message(), "password2: The two password fields didn't match.")
}

func TestCurrentUser_AttachesBearerCredential(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"pk":7,"email":"a@b.com"}`))
	}), "abc123")

	user, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer abc123", gotAuth)
	require.EqualValues(t, 7, user.PK)
}

func TestCurrentUser_NoCredential_NoHeader(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"pk":1,"email":"a@b.com"}`))
	}), "")

	_, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestTransportFailure_IsErrUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force connection refused

	c := NewHTTPClient(srv.URL, time.Second, &staticCreds{})
	_, err := c.CurrentUser(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestTourPackages_QueryParameters(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "3", q.Get("country_id"))
		require.Equal(t, "beach", q.Get("search"))
		require.Equal(t, "2", q.Get("page"))
		require.Equal(t, "10", q.Get("page_size"))
		_, _ = w.Write([]byte(`{"count":25,"next":"http://x/api/v1/tours/packages/?page=3","previous":null,"results":[{"id":1,"title":"Bali Beach Week"}]}`))
	}), "")

	page, err := c.TourPackages(context.Background(), PackageQuery{
		CountryID: 3, Search: "beach", Page: 2, PageSize: 10,
	})
	require.NoError(t, err)
	require.EqualValues(t, 25, page.Count)
	require.NotNil(t, page.Next)
	require.Nil(t, page.Previous)
	require.Len(t, page.Results, 1)
	require.Equal(t, "Bali Beach Week", page.Results[0].Title)
}

func TestGoogleLogin_SendsIDTokenAsAccessToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "google-id-token", body["access_token"])
		_, _ = w.Write([]byte(`{"access_token":"acc","refresh_token":"ref","user":{"pk":2,"email":"g@b.com"}}`))
	}), "")

	payload, err := c.GoogleLogin(context.Background(), "google-id-token")
	require.NoError(t, err)
	require.Equal(t, "g@b.com", payload.User.Email)
}

func TestAPIError_Message_FallsBackToStatus(t *testing.T) {
	e := parseAPIError(http.StatusBadGateway, []byte("not json"))
	require.Equal(t, "request failed with status 502", e.Message())
}
