package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/apollo/internal/app/system/auth"
	"github.com/dalemusser/apollo/internal/app/system/authz"
	"github.com/dalemusser/apollo/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHas(t *testing.T) {
	perms := []models.Permission{
		{Action: models.ActionUpdate, Module: models.ModuleUsers},
		{Action: models.ActionDelete, Module: models.ModuleTeams},
	}

	tests := []struct {
		name   string
		perms  []models.Permission
		action models.Action
		module models.Module
		want   bool
	}{
		{"exact match", perms, models.ActionUpdate, models.ModuleUsers, true},
		{"second entry", perms, models.ActionDelete, models.ModuleTeams, true},
		{"action on other module", perms, models.ActionUpdate, models.ModuleTeams, false},
		{"missing action", perms, models.ActionCreate, models.ModuleUsers, false},
		{"case sensitive action", perms, "update", models.ModuleUsers, false},
		{"case sensitive module", perms, models.ActionUpdate, "users", false},
		{"nil set", nil, models.ActionUpdate, models.ModuleUsers, false},
		{"empty set", []models.Permission{}, models.ActionUpdate, models.ModuleUsers, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authz.Has(tt.perms, tt.action, tt.module); got != tt.want {
				t.Errorf("Has(%s, %s) = %v, want %v", tt.action, tt.module, got, tt.want)
			}
		})
	}
}

func TestHas_AllPermissions(t *testing.T) {
	all := models.AllPermissions()
	for _, m := range []models.Module{models.ModuleUsers, models.ModuleTeams, models.ModuleRequests} {
		for _, a := range []models.Action{models.ActionCreate, models.ActionUpdate, models.ActionDelete} {
			if !authz.Has(all, a, m) {
				t.Errorf("AllPermissions() missing (%s, %s)", a, m)
			}
		}
	}
}

func TestRequirePermission(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := authz.RequirePermission(models.ActionDelete, models.ModuleRequests)(ok)

	tests := []struct {
		name string
		user *auth.SessionUser
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"no permissions", &auth.SessionUser{ID: "u1"}, http.StatusForbidden},
		{"other permission", &auth.SessionUser{ID: "u1", Permissions: []models.Permission{
			{Action: models.ActionCreate, Module: models.ModuleRequests},
		}}, http.StatusForbidden},
		{"granted", &auth.SessionUser{ID: "u1", Permissions: []models.Permission{
			{Action: models.ActionDelete, Module: models.ModuleRequests},
		}}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("DELETE", "/request/1", nil)
			if tt.user != nil {
				req = auth.WithTestUser(req, tt.user)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestUserCtx(t *testing.T) {
	oid := primitive.NewObjectID()
	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: oid.Hex(), Name: "Ana"})
	name, id, ok := authz.UserCtx(req)
	if !ok || name != "Ana" || id != oid {
		t.Errorf("UserCtx: got %q %v %v", name, id, ok)
	}

	bad := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: "not-hex"})
	if _, _, ok := authz.UserCtx(bad); ok {
		t.Error("malformed id should report ok=false")
	}
	if !authz.IsSelf(req, oid.Hex()) || authz.IsSelf(req, "other") {
		t.Error("IsSelf mismatch")
	}
}
