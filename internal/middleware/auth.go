package middleware

import (
	"context"
	"net/http"

	"github.com/pathviz/pathviz-server/internal/config"
)

type CtxKey int

const (
	CtxUserClaims CtxKey = iota
)

// Auth parses the auth cookie pair into user claims on the request
// context. Requests without valid cookies pass through anonymous, with
// any stale cookies cleared.
func Auth(cookies *config.Cookies) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParseUserClaims(r)
			if err != nil {
				if _, hasAuth := r.Cookie("auth"); hasAuth == nil {
					cookies.Clear(w)
				}
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxUserClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFrom extracts authenticated user claims placed by Auth, if any.
func ClaimsFrom(ctx context.Context) (*config.UserClaims, bool) {
	claims, ok := ctx.Value(CtxUserClaims).(*config.UserClaims)
	return claims, ok
}
