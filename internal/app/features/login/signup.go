// internal/app/features/login/signup.go
package login

import (
	"errors"
	"net/http"
	"strings"

	invitationstore "github.com/dalemusser/apollo/internal/app/store/invitations"
	userstore "github.com/dalemusser/apollo/internal/app/store/users"
	"github.com/dalemusser/apollo/internal/app/system/auth"
	"github.com/dalemusser/apollo/internal/app/system/httpjson"
	"github.com/dalemusser/apollo/internal/app/system/inputval"
	"github.com/dalemusser/apollo/internal/app/system/normalize"
	"github.com/dalemusser/apollo/internal/app/system/timeouts"
	"github.com/dalemusser/apollo/internal/domain/models"
	"go.uber.org/zap"
)

type signupInput struct {
	Name            string `json:"name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,mailaddr"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Invite          string `json:"invite"`
}

// HandleSignup handles POST /auth/signup.
//
// A valid invite token records the inviter on the new account; an unknown
// token fails validation with {"invite": "invalid"}. New accounts start
// without permissions.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var in signupInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.Name = normalize.Name(in.Name)
	in.Email = normalize.Email(in.Email)
	in.Invite = strings.TrimSpace(in.Invite)
	if fields, err := inputval.Struct(in); err != nil {
		h.Log.Error("signup: validation", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	} else if fields != nil {
		httpjson.Invalid(w, fields)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "signup")
	defer cancel()

	inv, err := h.invitationLookup(ctx, in.Invite)
	if errors.Is(err, invitationstore.ErrNotFound) {
		httpjson.Invalid(w, map[string]string{"invite": "invalid"})
		return
	}
	if err != nil {
		h.Log.Error("signup: invitation lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		h.Log.Error("signup: hash password", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	u := models.User{Name: in.Name, Email: in.Email, PasswordHash: hash}
	if inv != nil {
		u.InvitedBy = &inv.InviterID
	}
	u, err = h.Users.Create(ctx, u)
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		httpjson.Error(w, http.StatusConflict, userstore.ErrDuplicateEmail.Error())
		return
	}
	if err != nil {
		h.Log.Error("signup: create user failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := h.Tokens.Issue(u.ID.Hex())
	if err != nil {
		h.Log.Error("signup: issue token", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.AuditLog.Signup(ctx, r, u.ID, u.InvitedBy)
	h.Log.Info("user signed up", zap.String("user_id", u.ID.Hex()), zap.Bool("invited", inv != nil))
	httpjson.Write(w, http.StatusCreated, sessionResponse{Token: token, User: u})
}
