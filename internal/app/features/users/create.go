// internal/app/features/users/create.go
package users

import (
	"errors"
	"net/http"

	userstore "github.com/dalemusser/apollo/internal/app/store/users"
	"github.com/dalemusser/apollo/internal/app/system/auth"
	"github.com/dalemusser/apollo/internal/app/system/authz"
	"github.com/dalemusser/apollo/internal/app/system/httpjson"
	"github.com/dalemusser/apollo/internal/app/system/inputval"
	"github.com/dalemusser/apollo/internal/app/system/timeouts"
	"github.com/dalemusser/apollo/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createInput struct {
	profile
	Password    string              `json:"password" validate:"omitempty,min=8"`
	TeamID      string              `json:"team_id" validate:"omitempty,mongodb"`
	IsAdmin     bool                `json:"isAdmin"`
	Permissions []models.Permission `json:"permissions"`
}

// HandleCreate handles POST /user (CREATE USERS).
//
// The password is optional; an account created without one cannot sign in
// until a password is set. Only administrators may grant permissions or the
// admin flag.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.normalize()

	fields, err := inputval.Struct(in)
	if err != nil {
		h.Log.Error("create user: validation", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	fields = merge(fields, checkPermissions(in.Permissions))
	if fields != nil {
		httpjson.Invalid(w, fields)
		return
	}
	if (in.IsAdmin || len(in.Permissions) > 0) && !authz.IsAdmin(r) {
		httpjson.Error(w, http.StatusForbidden, "only administrators can grant permissions")
		return
	}

	u := models.User{IsAdmin: in.IsAdmin, Permissions: dedupe(in.Permissions)}
	in.profile.apply(&u)
	if in.TeamID != "" {
		oid, _ := primitive.ObjectIDFromHex(in.TeamID)
		u.TeamID = &oid
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			h.Log.Error("create user: hash password", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		u.PasswordHash = hash
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create user")
	defer cancel()

	u, err = h.Users.Create(ctx, u)
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		httpjson.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("create user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	if _, actorID, ok := authz.UserCtx(r); ok {
		h.AuditLog.UserCreated(ctx, r, actorID, u.ID)
	}
	httpjson.Write(w, http.StatusCreated, u)
}
