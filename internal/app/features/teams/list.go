// internal/app/features/teams/list.go
package teams

import (
	"net/http"

	"github.com/dalemusser/apollo/internal/app/system/httpjson"
	"github.com/dalemusser/apollo/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeList handles GET /team.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list teams")
	defer cancel()

	teams, err := h.Teams.List(ctx)
	if err != nil {
		h.Log.Error("list teams", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	for i := range teams {
		teams[i] = h.withMembers(ctx, teams[i])
	}
	httpjson.Write(w, http.StatusOK, teams)
}
