package api

import (
	"net/http"

	"github.com/go-chi/jwtauth"

	"github.com/frontendhub/hub/pkg/hub"
)

// Verifier parses and validates a bearer token when one is present. It never
// rejects a request by itself; unauthenticated reads are allowed and the
// service decides which operations need a caller.
func Verifier(auth *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return jwtauth.Verifier(auth)
}

// IdentityLoader lifts the verified token's subject into the request context
// as the caller identity. Requests without a valid token pass through
// anonymous.
func IdentityLoader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			next.ServeHTTP(w, r)
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := hub.WithIdentity(r.Context(), hub.Identity{Subject: sub})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
