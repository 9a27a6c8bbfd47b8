package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/seventour/seventour/internal/client/guard"
)

func (a *App) getStatus() string {
	s := a.session.Snapshot()
	if s.IsLoading {
		return "(validating...)"
	}
	if s.IsAuthenticated && s.User != nil {
		return fmt.Sprintf("(%s)", s.User.Email)
	}
	return "(guest)"
}

// OpenProtected routes a restricted view through the access check. An
// anonymous user is sent to the login flow first; the interrupted view is
// remembered and reopened once login succeeds.
func (a *App) OpenProtected(ctx context.Context, view string) error {
	res := guard.Evaluate(a.session.Snapshot(), view)
	switch res.Decision {
	case guard.Wait:
		fmt.Println("Session is still being validated, try again in a moment.")
		return nil
	case guard.RedirectToLogin:
		fmt.Println("Please log in first.")
		a.returnTo = res.ReturnTo
		return a.Login(ctx)
	}
	return a.openView(ctx, view)
}

func (a *App) openView(ctx context.Context, view string) error {
	switch view {
	case "whoami":
		return a.WhoAmI(ctx)
	case "photo":
		return a.SetPhoto(ctx)
	}
	return fmt.Errorf("unknown view %q", view)
}

// resumeAfterLogin reopens the view a redirect interrupted, if any. The
// stored target is cleared first so a failure inside the view cannot loop.
func (a *App) resumeAfterLogin(ctx context.Context) {
	if a.returnTo == "" {
		return
	}
	view := a.returnTo
	a.returnTo = ""
	_ = a.openView(ctx, view)
}

func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to SevenTour CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
