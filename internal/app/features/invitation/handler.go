// internal/app/features/invitation/handler.go
package invitation

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/apollo/internal/app/system/authz"
	"github.com/dalemusser/apollo/internal/app/system/httpjson"
	"github.com/dalemusser/apollo/internal/app/system/timeouts"
	"github.com/dalemusser/apollo/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Store issues invitation tokens. *invitationstore.Store satisfies it.
type Store interface {
	GetOrCreate(ctx context.Context, inviterID primitive.ObjectID) (models.Invitation, error)
}

type Handler struct {
	Invitations Store
	BaseURL     string // public web origin, e.g. "https://app.apollo.com.br"
	Log         *zap.Logger
}

func NewHandler(invitations Store, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{Invitations: invitations, BaseURL: strings.TrimRight(baseURL, "/"), Log: logger}
}

type linkResponse struct {
	Link  string `json:"link"`
	Token string `json:"token"`
}

// ServeLink handles GET /invitation. The caller's token is created on first
// use and reused afterwards, so the link is stable.
func (h *Handler) ServeLink(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "invitation link")
	defer cancel()

	inv, err := h.Invitations.GetOrCreate(ctx, uid)
	if err != nil {
		h.Log.Error("invitation link", zap.Error(err), zap.String("user_id", uid.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	link := urlutil.AddOrSetQueryParams(h.BaseURL+"/signup", map[string]string{"invite": inv.Token})
	httpjson.Write(w, http.StatusOK, linkResponse{Link: link, Token: inv.Token})
}
