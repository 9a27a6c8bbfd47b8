// Package guard gates access to restricted views based on session state.
//
// Evaluate is a pure function and must be re-run on every navigation attempt
// and on every session change; its result is never cached.
package guard

import "github.com/seventour/seventour/internal/client/session"

// Decision is the outcome of evaluating a navigation attempt.
type Decision int

const (
	// Wait means the session is still being validated; show a neutral
	// waiting indicator and make no navigation decision yet.
	Wait Decision = iota

	// Allow lets the requested view render.
	Allow

	// RedirectToLogin sends the caller to the login entry point.
	RedirectToLogin
)

// Result carries the decision plus, for redirects, the originally requested
// view so the login flow can return the user there afterwards.
type Result struct {
	Decision Decision
	ReturnTo string
}

// Evaluate decides whether the view named by target may render for the
// given session snapshot.
func Evaluate(s session.Session, target string) Result {
	if s.IsLoading {
		return Result{Decision: Wait}
	}
	if !s.IsAuthenticated {
		return Result{Decision: RedirectToLogin, ReturnTo: target}
	}
	return Result{Decision: Allow}
}
