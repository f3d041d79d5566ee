// internal/app/system/authz/require.go
package authz

import (
	"net/http"

	"github.com/dalemusser/apollo/internal/app/system/auth"
	"github.com/dalemusser/apollo/internal/app/system/httpjson"
	"github.com/dalemusser/apollo/internal/domain/models"
)

// RequirePermission answers 401 when nobody is signed in and 403 when the
// signed-in user lacks (action, module).
func RequirePermission(action models.Action, module models.Module) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := auth.CurrentUser(r)
			if !ok {
				httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !Has(u.Permissions, action, module) {
				httpjson.Error(w, http.StatusForbidden, "permission denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
