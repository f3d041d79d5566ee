// internal/app/system/auth/context.go
package auth

import (
	"context"
	"net/http"

	"github.com/dalemusser/apollo/internal/domain/models"
)

// SessionUser is the authenticated caller, rebuilt from the users collection
// on every request so permission changes apply immediately.
type SessionUser struct {
	ID          string
	Name        string
	Email       string
	IsAdmin     bool
	TeamID      string
	Permissions []models.Permission
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok && u != nil
}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *SessionUser) context.Context {
	return context.WithValue(ctx, currentUserKey, u)
}

// WithTestUser attaches u to r. Handler tests use it instead of a token.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(WithUser(r.Context(), u))
}
