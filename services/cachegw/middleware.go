package cachegw

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
)

type contextKey string

const teamContextKey contextKey = "team"

// requireAuth accepts a request only when the Authorization header carries a
// bearer token exactly equal to the configured one.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.config.AuthToken)) != 1 {
			respondError(w, http.StatusUnauthorized, "Invalid or missing authorization token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// resolveTeam extracts the team scope from the teamId or slug query
// parameter, teamId taking precedence, and threads it through the request
// context. Any non-empty string is accepted as a namespace.
func resolveTeam(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		team := r.URL.Query().Get("teamId")
		if team == "" {
			team = r.URL.Query().Get("slug")
		}
		if team == "" {
			respondError(w, http.StatusBadRequest, "Either teamId or slug must be provided")
			return
		}
		ctx := context.WithValue(r.Context(), teamContextKey, team)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// teamFrom returns the team scope resolved by the middleware for this request.
func teamFrom(ctx context.Context) string {
	team, _ := ctx.Value(teamContextKey).(string)
	return team
}
