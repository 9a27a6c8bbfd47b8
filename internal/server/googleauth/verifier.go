// Package googleauth validates Google ID tokens for the social-login flow.
package googleauth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// Identity is the subset of a verified Google ID token the login flow needs.
type Identity struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
}

// Verifier validates a Google ID token and extracts the holder's identity.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

// idtokenValidate is a seam for testing idtoken.Validate.
var idtokenValidate = idtoken.Validate

// GoogleVerifier validates tokens against Google's public keys, checking the
// audience against the configured OAuth client id.
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	payload, err := idtokenValidate(ctx, idToken, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("id token validation failed: %w", err)
	}

	identity := &Identity{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if given, ok := payload.Claims["given_name"].(string); ok {
		identity.FirstName = given
	}
	if family, ok := payload.Claims["family_name"].(string); ok {
		identity.LastName = family
	}
	return identity, nil
}
