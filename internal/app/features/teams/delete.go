// internal/app/features/teams/delete.go
package teams

import (
	"net/http"

	"github.com/dalemusser/apollo/internal/app/store/audit"
	"github.com/dalemusser/apollo/internal/app/system/authz"
	"github.com/dalemusser/apollo/internal/app/system/httpjson"
	"github.com/dalemusser/apollo/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /team/{id} (DELETE TEAMS). Members keep their
// team_id; user info treats a missing team as none.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := teamID(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete team")
	defer cancel()

	n, err := h.Teams.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete team", zap.Error(err), zap.String("team_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "team not found")
		return
	}
	if _, actorID, ok := authz.UserCtx(r); ok {
		h.AuditLog.Changed(ctx, r, audit.EventTeamDeleted, actorID, id)
	}
	httpjson.NoContent(w)
}
