package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/surf-club-server/auth"
)

// identityHandler is a handler that runs for an authenticated caller.
type identityHandler func(w http.ResponseWriter, r *http.Request, id auth.Identity)

// Authenticated resolves the Bearer access token to an auth.Identity and
// passes it to h. The request itself is left untouched.
func (s *Server) Authenticated(h identityHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := s.sessions.Authenticate(r.Context(), bearerToken(r))
		if err != nil {
			writeError(w, err)
			return
		}
		h(w, r, id)
	}
}

// bearerToken returns the token of an "Authorization: Bearer <token>"
// header, or "" when there is none.
func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
