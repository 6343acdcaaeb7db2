package middleware

import (
	"net/http"
	"strings"

	"notekeeper/internal/auth"
	"notekeeper/internal/httputil"
)

// AuthMiddleware validates the bearer token on every request before any
// handler logic runs and binds the decoded identity to the request context.
// Verification is stateless and per-request; there is no session store.
func AuthMiddleware(tokens auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicRoute(r) {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			r = httputil.WithIdentity(r, httputil.Identity{
				UserID:   claims.User.ID,
				Username: claims.User.Username,
				Fullname: claims.User.Fullname,
			})
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// isPublicRoute reports whether the request may proceed unauthenticated.
// Registration and login are public; the login refresh endpoint is not.
func isPublicRoute(r *http.Request) bool {
	// CORS pre-flight carries no Authorization header
	if r.Method == http.MethodOptions {
		return true
	}
	if r.URL.Path == "/health" {
		return true
	}
	if r.Method == http.MethodPost {
		switch r.URL.Path {
		case "/api/users", "/api/login":
			return true
		}
	}
	return false
}
