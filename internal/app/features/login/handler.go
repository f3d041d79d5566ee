// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/apollo/internal/app/store/users"
	"github.com/dalemusser/apollo/internal/app/system/auditlog"
	"github.com/dalemusser/apollo/internal/app/system/auth"
	"github.com/dalemusser/apollo/internal/app/system/httpjson"
	"github.com/dalemusser/apollo/internal/app/system/inputval"
	"github.com/dalemusser/apollo/internal/app/system/normalize"
	"github.com/dalemusser/apollo/internal/app/system/ratelimit"
	"github.com/dalemusser/apollo/internal/app/system/timeouts"
	"github.com/dalemusser/apollo/internal/domain/models"
	"go.uber.org/zap"
)

// UserStore is the subset of *userstore.Store used here.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Create(ctx context.Context, u models.User) (models.User, error)
}

// InvitationStore resolves invite tokens carried by signup requests.
type InvitationStore interface {
	GetByToken(ctx context.Context, token string) (models.Invitation, error)
}

type Handler struct {
	Users       UserStore
	Invitations InvitationStore
	Tokens      *auth.TokenService
	AuditLog    *auditlog.Logger
	Log         *zap.Logger

	// Limiter throttles login attempts. Nil disables throttling.
	Limiter *ratelimit.LoginLimiter
}

func NewHandler(users UserStore, invitations InvitationStore, tokens *auth.TokenService, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:       users,
		Invitations: invitations,
		Tokens:      tokens,
		AuditLog:    audit,
		Log:         logger,
	}
}

type loginInput struct {
	Email    string `json:"email" validate:"required,mailaddr"`
	Password string `json:"password" validate:"required,min=8"`
}

// sessionResponse is returned by both login and signup.
type sessionResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// HandleLogin handles POST /auth/login.
//
// Unknown emails and wrong passwords both answer 401 "invalid credentials"
// so the endpoint does not reveal which accounts exist.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.Email = normalize.Email(in.Email)
	if fields, err := inputval.Struct(in); err != nil {
		h.Log.Error("login: validation", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	} else if fields != nil {
		httpjson.Invalid(w, fields)
		return
	}

	if h.Limiter != nil && !h.Limiter.Allow(ratelimit.ClientIP(r), in.Email) {
		h.Log.Warn("login: rate limited", zap.String("email", in.Email))
		httpjson.Error(w, http.StatusTooManyRequests, "Muitas tentativas de login. Aguarde alguns minutos e tente novamente.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login")
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, in.Email)
	if errors.Is(err, userstore.ErrNotFound) {
		h.AuditLog.LoginFailedUserNotFound(ctx, r, in.Email)
		httpjson.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		h.Log.Error("login: user lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := auth.CheckPassword(u.PasswordHash, in.Password); err != nil {
		h.AuditLog.LoginFailedWrongPassword(ctx, r, u.ID, in.Email)
		httpjson.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.Tokens.Issue(u.ID.Hex())
	if err != nil {
		h.Log.Error("login: issue token", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if h.Limiter != nil {
		h.Limiter.Succeeded(in.Email)
	}
	h.AuditLog.LoginSuccess(ctx, r, u.ID, u.Email)
	httpjson.Write(w, http.StatusOK, sessionResponse{Token: token, User: u})
}

// invitationLookup maps an invite token to the inviter. An empty token is
// not an error.
func (h *Handler) invitationLookup(ctx context.Context, token string) (*models.Invitation, error) {
	if token == "" {
		return nil, nil
	}
	inv, err := h.Invitations.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
