package middleware

import (
	"context"
	"net/http"
	"strings"

	guestauth "github.com/planloop/guestauth"
	"github.com/planloop/guestauth/transport"
)

type authResultContextKey struct{}

// AuthResultFromContext returns the validated identity injected by [Guard].
func AuthResultFromContext(ctx context.Context) (*guestauth.AuthResult, bool) {
	res, ok := ctx.Value(authResultContextKey{}).(*guestauth.AuthResult)
	return res, ok
}

// Guard validates the request's access credential and passes the request on
// with the identity in context. The cookie adapter is consulted first; a
// bearer token in the Authorization header works as a fallback for non-browser
// clients.
func Guard(engine *guestauth.Engine, cookies *transport.Adapter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			tokenStr, ok := accessCredential(r, cookies)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			res, err := engine.ValidateAccess(r.Context(), tokenStr)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), authResultContextKey{}, res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func accessCredential(r *http.Request, cookies *transport.Adapter) (string, bool) {
	if cookies != nil {
		if tokenStr, ok := cookies.ReadAccess(r); ok {
			return tokenStr, true
		}
	}
	return bearerToken(r.Header.Get("Authorization"))
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	tokenStr := value[len(bearer):]
	if tokenStr == "" {
		return "", false
	}

	return tokenStr, true
}
