// internal/app/features/users/update.go
package users

import (
	"errors"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/apollo/internal/app/store/users"
	"github.com/dalemusser/apollo/internal/app/system/auth"
	"github.com/dalemusser/apollo/internal/app/system/authz"
	"github.com/dalemusser/apollo/internal/app/system/httpjson"
	"github.com/dalemusser/apollo/internal/app/system/inputval"
	"github.com/dalemusser/apollo/internal/app/system/timeouts"
	"github.com/dalemusser/apollo/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// updateInput is a partial update. Absent fields keep their stored value.
type updateInput struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	PhoneNumber  *string `json:"phone_number"`
	Document     *string `json:"document"`
	CEP          *string `json:"cep"`
	Address      *string `json:"address"`
	Number       *string `json:"number"`
	Complement   *string `json:"complement"`
	Neighborhood *string `json:"neighborhood"`
	City         *string `json:"city"`
	State        *string `json:"state"`

	TeamID      *string              `json:"team_id"`
	IsAdmin     *bool                `json:"isAdmin"`
	Permissions *[]models.Permission `json:"permissions"`

	OldPassword        string `json:"oldPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

type passwordChange struct {
	NewPassword        string `json:"newPassword" validate:"required,min=8"`
	ConfirmNewPassword string `json:"confirmNewPassword" validate:"required,eqfield=NewPassword"`
}

// patch overlays the present fields onto p.
func (in updateInput) patch(p profile) profile {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.Name, in.Name)
	set(&p.Email, in.Email)
	set(&p.PhoneNumber, in.PhoneNumber)
	set(&p.Document, in.Document)
	set(&p.CEP, in.CEP)
	set(&p.Address, in.Address)
	set(&p.Number, in.Number)
	set(&p.Complement, in.Complement)
	set(&p.Neighborhood, in.Neighborhood)
	set(&p.City, in.City)
	set(&p.State, in.State)
	return p
}

// HandleUpdate handles PUT /user/{id}.
//
// Allowed for holders of UPDATE USERS and for the user editing their own
// account. Permissions and the admin flag are administrator-only; moving a
// user to another team needs UPDATE USERS. Changing one's own password
// requires oldPassword; an editor resetting someone else's does not.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}
	_, actorID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	self := authz.IsSelf(r, idHex)
	editor := authz.Can(r, models.ActionUpdate, models.ModuleUsers)
	if !self && !editor {
		httpjson.Error(w, http.StatusForbidden, "permission denied")
		return
	}

	var in updateInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if (in.IsAdmin != nil || in.Permissions != nil) && !authz.IsAdmin(r) {
		httpjson.Error(w, http.StatusForbidden, "only administrators can grant permissions")
		return
	}
	if in.TeamID != nil && !editor {
		httpjson.Error(w, http.StatusForbidden, "permission denied")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update user")
	defer cancel()

	current, err := h.Users.GetByID(ctx, id)
	if errors.Is(err, userstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.Log.Error("update user: load", zap.Error(err), zap.String("user_id", idHex))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	before := profileOf(current)
	after := in.patch(before)
	after.normalize()
	fields, err := inputval.Struct(after)
	if err != nil {
		h.Log.Error("update user: validation", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if in.Permissions != nil {
		fields = merge(fields, checkPermissions(*in.Permissions))
	}
	if in.TeamID != nil && *in.TeamID != "" {
		if _, err := primitive.ObjectIDFromHex(*in.TeamID); err != nil {
			fields = merge(fields, map[string]string{"team_id": "mongodb"})
		}
	}

	passwordChanged := in.NewPassword != "" || in.ConfirmNewPassword != ""
	if passwordChanged {
		pf, err := inputval.Struct(passwordChange{NewPassword: in.NewPassword, ConfirmNewPassword: in.ConfirmNewPassword})
		if err != nil {
			h.Log.Error("update user: validation", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		fields = merge(fields, pf)
		if self && current.PasswordHash != "" && auth.CheckPassword(current.PasswordHash, in.OldPassword) != nil {
			fields = merge(fields, map[string]string{"oldPassword": "mismatch"})
		}
	}
	if fields != nil {
		httpjson.Invalid(w, fields)
		return
	}

	up, changed := diff(before, after)
	if in.IsAdmin != nil {
		up.IsAdmin = in.IsAdmin
		changed = append(changed, "isAdmin")
	}
	if in.Permissions != nil {
		perms := dedupe(*in.Permissions)
		up.Permissions = &perms
		changed = append(changed, "permissions")
	}
	if in.TeamID != nil {
		var oid primitive.ObjectID
		if *in.TeamID != "" {
			oid, _ = primitive.ObjectIDFromHex(*in.TeamID)
		}
		up.TeamID = &oid
		changed = append(changed, "team_id")
	}
	if passwordChanged {
		hash, err := auth.HashPassword(in.NewPassword)
		if err != nil {
			h.Log.Error("update user: hash password", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		up.PasswordHash = &hash
	}

	u, err := h.Users.Update(ctx, id, up)
	switch {
	case errors.Is(err, userstore.ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, "user not found")
		return
	case errors.Is(err, userstore.ErrDuplicateEmail):
		httpjson.Error(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		h.Log.Error("update user", zap.Error(err), zap.String("user_id", idHex))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	if len(changed) > 0 {
		h.AuditLog.UserUpdated(ctx, r, actorID, id, strings.Join(changed, ","))
	}
	if passwordChanged {
		h.AuditLog.PasswordChanged(ctx, r, actorID, id)
	}
	httpjson.Write(w, http.StatusOK, u)
}

// diff returns an update holding only the fields that differ, plus their
// JSON names.
func diff(before, after profile) (userstore.Update, []string) {
	var up userstore.Update
	var changed []string
	cmp := func(name string, a, b string, dst **string) {
		if a != b {
			v := b
			*dst = &v
			changed = append(changed, name)
		}
	}
	cmp("name", before.Name, after.Name, &up.Name)
	cmp("email", before.Email, after.Email, &up.Email)
	cmp("phone_number", before.PhoneNumber, after.PhoneNumber, &up.PhoneNumber)
	cmp("document", before.Document, after.Document, &up.Document)
	cmp("cep", before.CEP, after.CEP, &up.CEP)
	cmp("address", before.Address, after.Address, &up.Address)
	cmp("number", before.Number, after.Number, &up.Number)
	cmp("complement", before.Complement, after.Complement, &up.Complement)
	cmp("neighborhood", before.Neighborhood, after.Neighborhood, &up.Neighborhood)
	cmp("city", before.City, after.City, &up.City)
	cmp("state", before.State, after.State, &up.State)
	return up, changed
}
