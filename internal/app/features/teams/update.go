// internal/app/features/teams/update.go
package teams

import (
	"errors"
	"net/http"

	"github.com/dalemusser/apollo/internal/app/store/audit"
	teamstore "github.com/dalemusser/apollo/internal/app/store/teams"
	"github.com/dalemusser/apollo/internal/app/system/authz"
	"github.com/dalemusser/apollo/internal/app/system/httpjson"
	"github.com/dalemusser/apollo/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeGet handles GET /team/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := teamID(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get team")
	defer cancel()

	team, err := h.Teams.GetByID(ctx, id)
	if errors.Is(err, teamstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "team not found")
		return
	}
	if err != nil {
		h.Log.Error("get team", zap.Error(err), zap.String("team_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Write(w, http.StatusOK, h.withMembers(ctx, team))
}

// HandleUpdate handles PUT /team/{id} (UPDATE TEAMS).
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := teamID(w, r)
	if !ok {
		return
	}
	in, ok := h.decode(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update team")
	defer cancel()

	team, err := h.Teams.Update(ctx, id, in.team())
	if errors.Is(err, teamstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "team not found")
		return
	}
	if err != nil {
		h.Log.Error("update team", zap.Error(err), zap.String("team_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if _, actorID, ok := authz.UserCtx(r); ok {
		h.AuditLog.Changed(ctx, r, audit.EventTeamUpdated, actorID, id)
	}
	httpjson.Write(w, http.StatusOK, h.withMembers(ctx, team))
}

func teamID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid team id")
		return primitive.NilObjectID, false
	}
	return id, true
}
