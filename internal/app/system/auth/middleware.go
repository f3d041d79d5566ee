// internal/app/system/auth/middleware.go
package auth

import (
	"context"
	"net/http"

	"github.com/dalemusser/apollo/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// UserFetcher loads the current state of a user. Implementations return nil
// when the user no longer exists.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *SessionUser
}

// Middleware authenticates bearer tokens.
type Middleware struct {
	tokens  *TokenService
	fetcher UserFetcher
	log     *zap.Logger
}

// NewMiddleware wires a Middleware.
func NewMiddleware(tokens *TokenService, fetcher UserFetcher, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, fetcher: fetcher, log: logger}
}

// LoadUser injects the user into context when the request carries a valid
// token. Requests without one pass through anonymously; RequireSignedIn
// decides whether that is acceptable.
func (m *Middleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := ExtractBearerToken(r.Header.Get("Authorization"))
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.tokens.Validate(raw)
		if err != nil {
			m.log.Debug("rejecting bearer token", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		u := m.fetcher.FetchUser(r.Context(), claims.Subject)
		if u == nil {
			m.log.Info("token subject not found", zap.String("user_id", claims.Subject))
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

// RequireSignedIn answers 401 unless LoadUser found a user.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
