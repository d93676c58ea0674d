package httpapi

import (
	"net/http"
	"strings"

	"github.com/Alok0227/rallly/internal/server/auth"
)

// requireHousekeepingToken rejects the request with 401 before any pass
// executes unless it carries a valid bearer token with the housekeeping
// scope.
func (s *Server) requireHousekeepingToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing token"})
			return
		}

		scope, err := auth.GetScopeFromToken(token, s.secret)
		if err != nil || scope != auth.ScopeHousekeeping {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}

		next.ServeHTTP(w, r)
	})
}
