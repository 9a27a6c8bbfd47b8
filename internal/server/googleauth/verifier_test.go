package googleauth

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/api/idtoken"
)

func TestVerify_ExtractsIdentity(t *testing.T) {
	orig := idtokenValidate
	idtokenValidate = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		if token != "tok" || audience != "client-id" {
			t.Fatalf("unexpected args: token=%q audience=%q", token, audience)
		}
		return &idtoken.Payload{
			Subject: "google-123",
			Claims: map[string]interface{}{
				"email":       "alice@example.com",
				"given_name":  "Alice",
				"family_name": "Smith",
			},
		}, nil
	}
	defer func() { idtokenValidate = orig }()

	v := NewGoogleVerifier("client-id")
	got, err := v.Verify(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got.Subject != "google-123" || got.Email != "alice@example.com" ||
		got.FirstName != "Alice" || got.LastName != "Smith" {
		t.Fatalf("unexpected identity: %+v", got)
	}
}

func TestVerify_RejectsInvalidToken(t *testing.T) {
	orig := idtokenValidate
	idtokenValidate = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		return nil, errors.New("invalid token")
	}
	defer func() { idtokenValidate = orig }()

	v := NewGoogleVerifier("client-id")
	if _, err := v.Verify(context.Background(), "bad"); err == nil {
		t.Fatal("expected error for invalid token")
	}
}

func TestVerify_MissingClaimsAreEmpty(t *testing.T) {
	orig := idtokenValidate
	idtokenValidate = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		return &idtoken.Payload{Subject: "google-456", Claims: map[string]interface{}{}}, nil
	}
	defer func() { idtokenValidate = orig }()

	v := NewGoogleVerifier("client-id")
	got, err := v.Verify(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got.Email != "" || got.FirstName != "" {
		t.Fatalf("expected empty claims, got %+v", got)
	}
}
