package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/seventour/seventour/internal/server/models"
	"github.com/seventour/seventour/internal/server/services"
)

// The error body shapes mirror what browser clients of the previous stack
// already parse: either field-keyed message lists or a single "detail" string.

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeFieldErrors sends a 400-style body keyed by form field, e.g.
// {"email": ["This field is required."]}.
func writeFieldErrors(w http.ResponseWriter, status int, fields map[string][]string) {
	writeJSON(w, status, fields)
}

// writeDetail sends {"detail": "..."}.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeNonFieldError(w http.ResponseWriter, status int, msg string) {
	writeFieldErrors(w, status, map[string][]string{"non_field_errors": {msg}})
}

// userResponse is the wire shape of a user profile.
type userResponse struct {
	PK              int64   `json:"pk"`
	Email           string  `json:"email"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Role            string  `json:"role"`
	ProfilePhotoURL *string `json:"profile_photo_url"`
	ReferralCode    string  `json:"referral_code"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		PK:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Role:            u.Role,
		ProfilePhotoURL: u.ProfilePhotoURL,
		ReferralCode:    u.ReferralCode,
	}
}

// authResponse is the wire shape of a successful login, registration, or
// social-login call: the token pair plus the profile inline.
type authResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         userResponse `json:"user"`
}

func toAuthResponse(u *models.User, pair *services.TokenPair) authResponse {
	return authResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         toUserResponse(u),
	}
}

// listEnvelope is the paginated list envelope: total count plus absolute
// next/previous page URLs.
type listEnvelope struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}
