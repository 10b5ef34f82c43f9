package auth

import (
	"net/http"

	"github.com/weworkhere/server/cmd/utils"
)

const SessionTokenHeader = "X-Session-Token"

// RequireAuth validates the session token header and stashes the user id in
// the request context. Missing or invalid tokens fail closed with 401.
func (s *Service) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(SessionTokenHeader)
		if token == "" {
			utils.WriteError(w, utils.Unauthorized("Session token required"))
			return
		}

		user, err := s.ValidateSession(token)
		if err != nil {
			utils.WriteError(w, err)
			return
		}

		ctx := utils.WithUserID(r.Context(), user.ID)
		next(w, r.WithContext(ctx))
	}
}
