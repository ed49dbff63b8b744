package middleware

import (
	"net/http"

	"github.com/smash-arena/pos-terminal/internal/handler/http/response"
	"github.com/smash-arena/pos-terminal/internal/pkg/jwt"
)

// RequireAdmin requires the admin role
func RequireAdmin(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := jwtService.SessionFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !session.IsAdmin() {
				response.HandleError(w, jwt.ErrAdminOnly)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
