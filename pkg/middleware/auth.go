package middleware

import (
	"net/http"
	"strings"

	"github.com/portostore/portostore/pkg/auth"
	"github.com/portostore/portostore/pkg/response"
)

// AdminGuard returns a middleware that requires a valid admin bearer token.
// An empty secret disables the guard entirely — the auth boundary then has
// to live in front of this service (reverse proxy, gateway).
func AdminGuard(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" {
				response.Unauthorized(w)
				return
			}

			if _, err := auth.ValidateToken(token, secret); err != nil {
				response.Unauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
