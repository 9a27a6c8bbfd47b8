package guard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seventour/seventour/internal/client/models"
	"github.com/seventour/seventour/internal/client/session"
)

func TestEvaluate_LoadingWaitsWithoutRedirect(t *testing.T) {
	res := Evaluate(session.Session{IsLoading: true}, "profile")
	require.Equal(t, Wait, res.Decision)
	require.Empty(t, res.ReturnTo)
}

func TestEvaluate_AnonymousRedirectsAndCapturesTarget(t *testing.T) {
	res := Evaluate(session.Session{IsAuthenticated: false}, "profile")
	require.Equal(t, RedirectToLogin, res.Decision)
	require.Equal(t, "profile", res.ReturnTo)
}

func TestEvaluate_AuthenticatedAllows(t *testing.T) {
	s := session.Session{
		IsAuthenticated: true,
		User:            &models.User{PK: 1, Email: "a@b.com"},
	}
	res := Evaluate(s, "profile")
	require.Equal(t, Allow, res.Decision)
}

// The guard is stateless: the same snapshot always yields the same decision,
// and a changed snapshot changes the decision on re-evaluation.
func TestEvaluate_ReflectsSessionChanges(t *testing.T) {
	require.Equal(t, RedirectToLogin, Evaluate(session.Session{}, "x").Decision)
	require.Equal(t, Allow, Evaluate(session.Session{IsAuthenticated: true}, "x").Decision)
}
