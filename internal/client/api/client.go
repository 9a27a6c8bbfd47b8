// Package api implements the REST client for the SevenTour backend.
//
// The client never mutates global state: the bearer credential is supplied by
// an injected CredentialProvider and re-resolved on every request, and all
// transport failures are translated into values the caller can branch on
// (ErrUnavailable for network problems, *APIError for rejected requests).
package api

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/seventour/seventour/internal/client/models"
)

var (
	// ErrUnavailable marks transport-level failures: no response was received.
	ErrUnavailable = errors.New("server unavailable")
)

// CredentialProvider supplies the current bearer credential for outbound
// requests. An empty string means "send no credential". It is queried on
// every request, so credential changes take effect immediately.
type CredentialProvider interface {
	AccessToken() string
}

// AuthPayload is the backend's response to a successful login, registration,
// or social-login call.
type AuthPayload struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// PackageQuery selects and pages tour packages.
type PackageQuery struct {
	CountryID int64
	VisaType  string
	PriceMin  string
	PriceMax  string
	Search    string
	Ordering  string
	Page      int
	PageSize  int
}

// PhotoUpload is the backend's answer to a profile-photo upload request:
// a presigned URL to PUT the image to, and the URL the profile will serve
// the photo from afterwards.
type PhotoUpload struct {
	UploadURL string `json:"upload_url"`
	PhotoURL  string `json:"photo_url"`
}

// Client is the operation surface of the backend used by the rest of the
// application.
type Client interface {
	Login(ctx context.Context, email, password string) (*AuthPayload, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthPayload, error)
	GoogleLogin(ctx context.Context, idToken string) (*AuthPayload, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	RefreshToken(ctx context.Context, refresh string) (string, error)

	TourPackages(ctx context.Context, q PackageQuery) (*models.TourPackagePage, error)
	TourPackage(ctx context.Context, id int64) (*models.TourPackage, error)
	Countries(ctx context.Context, search string) (*models.CountryPage, error)
	Destinations(ctx context.Context, countryID int64) (*models.DestinationPage, error)

	ProfilePhotoUpload(ctx context.Context) (*PhotoUpload, error)

	Ping(ctx context.Context) error
}

// APIError is a non-2xx response from the backend. Field-level messages keep
// the backend's keys ("non_field_errors", "email", ...) so calling UI can
// surface them verbatim.
type APIError struct {
	StatusCode int
	Fields     map[string][]string
}

// FieldMessages returns the messages recorded for a given field key.
func (e *APIError) FieldMessages(key string) []string {
	return e.Fields[key]
}

// Message flattens all field messages into one human-readable string,
// non-field errors first, joined with "; ". It never exposes the raw
// response object.
func (e *APIError) Message() string {
	var msgs []string
	msgs = append(msgs, e.Fields["non_field_errors"]...)
	msgs = append(msgs, e.Fields["detail"]...)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		if k == "non_field_errors" || k == "detail" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, m := range e.Fields[k] {
			msgs = append(msgs, fmt.Sprintf("%s: %s", k, m))
		}
	}

	if len(msgs) == 0 {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return strings.Join(msgs, "; ")
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message())
}
