// internal/app/features/userinfo/handler.go
package userinfo

import (
	"context"
	"errors"
	"net/http"
	"time"

	teamstore "github.com/dalemusser/apollo/internal/app/store/teams"
	userstore "github.com/dalemusser/apollo/internal/app/store/users"
	"github.com/dalemusser/apollo/internal/app/system/authz"
	"github.com/dalemusser/apollo/internal/app/system/httpjson"
	"github.com/dalemusser/apollo/internal/app/system/timeouts"
	"github.com/dalemusser/apollo/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	ListInvitedBy(ctx context.Context, inviterID primitive.ObjectID) ([]models.User, error)
}

type TeamStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Team, error)
}

// Handler serves information about the signed-in user.
type Handler struct {
	Users UserStore
	Teams TeamStore
	Log   *zap.Logger
}

// NewHandler creates a new userinfo handler.
func NewHandler(users UserStore, teams TeamStore, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Teams: teams, Log: logger}
}

type teamSummary struct {
	Name       string `json:"name"`
	PlanStatus string `json:"plan_status"`
}

// infoResponse is the stored user plus the team summary the web client
// shows in its header.
type infoResponse struct {
	models.User
	Team      teamSummary `json:"team"`
	IsProPlan bool        `json:"isProPlan"`
}

// ServeUserInfo handles GET /user/info.
//
// The user is re-read from the store so the permissions returned are the
// ones in force now. A missing team yields an empty summary.
func (h *Handler) ServeUserInfo(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "user info")
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if errors.Is(err, userstore.ErrNotFound) {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err != nil {
		h.Log.Error("user info: load user", zap.Error(err), zap.String("user_id", uid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := infoResponse{User: u}
	if u.TeamID != nil {
		team, err := h.Teams.GetByID(ctx, *u.TeamID)
		switch {
		case err == nil:
			resp.Team = teamSummary{Name: team.Name, PlanStatus: team.PlanStatus}
			resp.IsProPlan = team.IsProPlan()
		case errors.Is(err, teamstore.ErrNotFound):
			h.Log.Warn("user info: team missing", zap.String("team_id", u.TeamID.Hex()))
		default:
			h.Log.Error("user info: load team", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
	}
	httpjson.Write(w, http.StatusOK, resp)
}

type invitedUser struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type invitedItem struct {
	ID   string      `json:"id"`
	User invitedUser `json:"user"`
}

type invitedResponse struct {
	Items []invitedItem `json:"items"`
}

// ServeInvited handles GET /user/invited: the accounts created through the
// caller's invitation link, oldest first.
func (h *Handler) ServeInvited(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "invited users")
	defer cancel()

	users, err := h.Users.ListInvitedBy(ctx, uid)
	if err != nil {
		h.Log.Error("invited users: list", zap.Error(err), zap.String("user_id", uid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := invitedResponse{Items: make([]invitedItem, 0, len(users))}
	for _, u := range users {
		resp.Items = append(resp.Items, invitedItem{
			ID:   u.ID.Hex(),
			User: invitedUser{Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt},
		})
	}
	httpjson.Write(w, http.StatusOK, resp)
}
