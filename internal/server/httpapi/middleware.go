package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/seventour/seventour/internal/server/auth"
)

type contextKey string

const userIDKey contextKey = "userID"

// requireAuth verifies the Bearer access token and stores the user id in the
// request context. Requests without a valid token get a 401 detail body.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Invalid token.")
			return
		}

		userIDString, err := auth.GetUserIDFromToken(tokenString, s.secret)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Invalid token.")
			return
		}
		userID, err := strconv.ParseInt(userIDString, 10, 64)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Invalid token.")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userIDFromContext returns the user id stored by requireAuth.
func userIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
