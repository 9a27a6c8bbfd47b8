package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/seventour/seventour/internal/client/api"
	"github.com/seventour/seventour/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// surfaceError prints a human-readable message for any backend failure:
// field-level messages verbatim when the backend provided them, a generic
// retry-able line for transport problems.
func surfaceError(err error) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		fmt.Println("Error:", apiErr.Message())
		return
	}
	if errors.Is(err, api.ErrUnavailable) {
		fmt.Println("Server unavailable, please try again.")
		return
	}
	fmt.Println("Something went wrong, please try again.")
}

// Login prompts for credentials, authenticates against the backend, and
// hands the resulting token pair plus inline profile to the session manager.
// After a successful login the user is returned to the view a guard
// redirect captured, if any.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if err := ValidateEmail(email); err != nil {
		fmt.Println("Error:", err)
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	payload, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		surfaceError(err)
		return err
	}

	if err := a.session.Login(ctx, payload.AccessToken, payload.RefreshToken, payload.User); err != nil {
		surfaceError(err)
		return err
	}

	fmt.Printf("Welcome back, %s!\n", a.userLabel())
	a.resumeAfterLogin(ctx)
	return nil
}

// Register prompts for the registration form, validates it locally, and
// creates an account. The backend returns the token pair and profile inline,
// so the new user is logged in immediately.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	firstName, err := getSimpleText(a.reader, "First name (optional)", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name (optional)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	password2, err := getPassword(os.Stdout, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password2)

	if err := ValidateRegistration(email, password, password2); err != nil {
		fmt.Println("Error:", err)
		return err
	}

	payload, err := a.api.Register(ctx, api.RegisterRequest{
		Email:     email,
		Password:  string(password),
		Password2: string(password2),
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		surfaceError(err)
		return err
	}

	if err := a.session.Login(ctx, payload.AccessToken, payload.RefreshToken, payload.User); err != nil {
		surfaceError(err)
		return err
	}

	fmt.Println("Account created. Welcome!")
	a.resumeAfterLogin(ctx)
	return nil
}

// GoogleLogin exchanges a Google ID token for a backend session. Obtaining
// the ID token itself is delegated to the identity provider's own tooling;
// the user pastes it here.
func (a *App) GoogleLogin(ctx context.Context) error {
	idToken, err := getSimpleText(a.reader, "Paste Google ID token", os.Stdout)
	if err != nil {
		return err
	}
	if idToken == "" {
		fmt.Println("Error: empty token")
		return errors.New("empty token")
	}

	payload, err := a.api.GoogleLogin(ctx, idToken)
	if err != nil {
		surfaceError(err)
		return err
	}

	if err := a.session.Login(ctx, payload.AccessToken, payload.RefreshToken, payload.User); err != nil {
		surfaceError(err)
		return err
	}

	fmt.Printf("Signed in with Google as %s.\n", a.userLabel())
	a.resumeAfterLogin(ctx)
	return nil
}

// Logout delegates to the session manager: server-side invalidation is
// best-effort, local state always clears.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Println("Logged out.")
	return nil
}

// WhoAmI shows the current profile, re-fetched from the backend. A failed
// refetch keeps the session: the cached profile is shown instead.
func (a *App) WhoAmI(ctx context.Context) error {
	user, err := a.session.FetchCurrentUser(ctx)
	if err != nil {
		snapshot := a.session.Snapshot()
		if snapshot.User == nil {
			surfaceError(err)
			return err
		}
		fmt.Println("(showing cached profile, refresh failed)")
		user = snapshot.User
	}

	fmt.Printf("#%d %s", user.PK, user.Email)
	if user.FirstName != "" || user.LastName != "" {
		fmt.Printf(" (%s %s)", user.FirstName, user.LastName)
	}
	if user.Role != "" {
		fmt.Printf(" [%s]", user.Role)
	}
	fmt.Println()
	if user.ReferralCode != "" {
		fmt.Println("Referral code:", user.ReferralCode)
	}
	if user.ProfilePhotoURL != nil {
		fmt.Println("Photo:", *user.ProfilePhotoURL)
	}
	return nil
}
