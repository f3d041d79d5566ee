// internal/app/features/teams/create.go
package teams

import (
	"net/http"

	"github.com/dalemusser/apollo/internal/app/store/audit"
	"github.com/dalemusser/apollo/internal/app/system/authz"
	"github.com/dalemusser/apollo/internal/app/system/httpjson"
	"github.com/dalemusser/apollo/internal/app/system/inputval"
	"github.com/dalemusser/apollo/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// decode reads and validates a team body. It writes the error response and
// returns false on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (teamInput, bool) {
	var in teamInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return in, false
	}
	in.normalize()
	fields, err := inputval.Struct(in)
	if err != nil {
		h.Log.Error("team: validation", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return in, false
	}
	if fields != nil {
		httpjson.Invalid(w, fields)
		return in, false
	}
	if (in.Plan != "" || in.PlanStatus != "") && !authz.IsAdmin(r) {
		httpjson.Error(w, http.StatusForbidden, "only administrators can change plans")
		return in, false
	}
	return in, true
}

// HandleCreate handles POST /team (CREATE TEAMS).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create team")
	defer cancel()

	team, err := h.Teams.Create(ctx, in.team())
	if err != nil {
		h.Log.Error("create team", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if _, actorID, ok := authz.UserCtx(r); ok {
		h.AuditLog.Changed(ctx, r, audit.EventTeamCreated, actorID, team.ID)
	}
	httpjson.Write(w, http.StatusCreated, team)
}
