// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/apollo/internal/app/system/auth"
	"github.com/dalemusser/apollo/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Has reports whether perms grants action on module. Both halves must match
// exactly (case-sensitive). A nil or empty set grants nothing, so a caller
// whose permissions have not loaded yet is denied.
func Has(perms []models.Permission, action models.Action, module models.Module) bool {
	for _, p := range perms {
		if p.Action == action && p.Module == module {
			return true
		}
	}
	return false
}

// Can reports whether the current request's user holds (action, module).
// Returns false if no user is present.
func Can(r *http.Request, action models.Action, module models.Module) bool {
	u, ok := auth.CurrentUser(r)
	return ok && Has(u.Permissions, action, module)
}

// UserCtx returns the user's name, ObjectID and a found flag. A malformed id
// is reported as not found so callers can trust ok=true.
func UserCtx(r *http.Request) (name string, userID primitive.ObjectID, ok bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return "", primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return "", primitive.NilObjectID, false
	}
	return u.Name, oid, true
}

// IsAdmin reports whether the current request's user is an administrator.
func IsAdmin(r *http.Request) bool {
	u, ok := auth.CurrentUser(r)
	return ok && u.IsAdmin
}

// IsSelf reports whether idHex is the current user's own id.
func IsSelf(r *http.Request, idHex string) bool {
	u, ok := auth.CurrentUser(r)
	return ok && u.ID == idHex
}
