// internal/app/features/users/delete.go
package users

import (
	"net/http"

	"github.com/dalemusser/apollo/internal/app/system/authz"
	"github.com/dalemusser/apollo/internal/app/system/httpjson"
	"github.com/dalemusser/apollo/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /user/{id} (DELETE USERS). Users cannot delete
// their own account.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if authz.IsSelf(r, idHex) {
		httpjson.Error(w, http.StatusConflict, "cannot delete your own account")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete user")
	defer cancel()

	n, err := h.Users.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete user", zap.Error(err), zap.String("user_id", idHex))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "user not found")
		return
	}

	if _, actorID, ok := authz.UserCtx(r); ok {
		h.AuditLog.UserDeleted(ctx, r, actorID, id)
	}
	httpjson.NoContent(w)
}
