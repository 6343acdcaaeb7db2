package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller bound to a request by the auth
// middleware.
type Identity struct {
	UserID   string
	Username string
	Fullname string
}

// WithIdentity returns a request whose context carries the caller identity.
func WithIdentity(r *http.Request, id Identity) *http.Request {
	ctx := context.WithValue(r.Context(), identityKey, id)
	return r.WithContext(ctx)
}

// GetIdentity retrieves the caller identity from the request context.
// The zero Identity is returned when the middleware did not run.
func GetIdentity(r *http.Request) Identity {
	id, _ := r.Context().Value(identityKey).(Identity)
	return id
}
