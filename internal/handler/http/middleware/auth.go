package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/smash-arena/pos-terminal/internal/handler/http/response"
	"github.com/smash-arena/pos-terminal/internal/pkg/backend"
	"github.com/smash-arena/pos-terminal/internal/pkg/jwt"
)

// TokenFromQuery reads the session token from the "token" query parameter;
// EventSource cannot set an Authorization header.
func TokenFromQuery(r *http.Request) string {
	return r.URL.Query().Get("token")
}

// AuthRequired rejects requests without a verified session token and
// forwards the raw token to backend calls made for the request.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, jwt.ErrInvalidToken)
				return
			}

			raw := jwtauth.TokenFromHeader(r)
			if raw == "" {
				raw = TokenFromQuery(r)
			}
			ctx := backend.WithToken(r.Context(), raw)

			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
