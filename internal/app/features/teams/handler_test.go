package teams_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/dalemusser/apollo/internal/app/features/teams"
	teamstore "github.com/dalemusser/apollo/internal/app/store/teams"
	"github.com/dalemusser/apollo/internal/app/system/auth"
	"github.com/dalemusser/apollo/internal/domain/models"
	"github.com/dalemusser/apollo/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeStore struct {
	mu    sync.Mutex
	order []primitive.ObjectID
	teams map[primitive.ObjectID]models.Team
}

func (f *fakeStore) List(context.Context) ([]models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Team{}
	for _, id := range f.order {
		if t, ok := f.teams[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) GetByID(_ context.Context, id primitive.ObjectID) (models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.teams[id]
	if !ok {
		return models.Team{}, teamstore.ErrNotFound
	}
	return t, nil
}

func (f *fakeStore) Create(_ context.Context, t models.Team) (models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = primitive.NewObjectID()
	if t.Status == "" {
		t.Status = models.TeamActive
	}
	f.teams[t.ID] = t
	f.order = append(f.order, t.ID)
	return t, nil
}

func (f *fakeStore) Update(_ context.Context, id primitive.ObjectID, t models.Team) (models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.teams[id]
	if !ok {
		return models.Team{}, teamstore.ErrNotFound
	}
	t.ID = id
	if t.Status == "" {
		t.Status = cur.Status
	}
	if t.Plan == "" {
		t.Plan = cur.Plan
	}
	if t.PlanStatus == "" {
		t.PlanStatus = cur.PlanStatus
	}
	f.teams[id] = t
	return t, nil
}

func (f *fakeStore) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.teams[id]; !ok {
		return 0, nil
	}
	delete(f.teams, id)
	return 1, nil
}

type fakeCounter struct {
	counts map[primitive.ObjectID]int64
	err    error
}

func (f fakeCounter) CountByTeam(_ context.Context, id primitive.ObjectID) (int64, error) {
	return f.counts[id], f.err
}

var (
	createTeams = models.Permission{Action: models.ActionCreate, Module: models.ModuleTeams}
	updateTeams = models.Permission{Action: models.ActionUpdate, Module: models.ModuleTeams}
	deleteTeams = models.Permission{Action: models.ActionDelete, Module: models.ModuleTeams}
)

func newHandler(counter teams.MemberCounter) (*teams.Handler, *fakeStore) {
	store := &fakeStore{teams: map[primitive.ObjectID]models.Team{}}
	return teams.NewHandler(store, counter, nil, zap.NewNop()), store
}

func do(t *testing.T, h *teams.Handler, user *auth.SessionUser, method, path string, body any) *testutil.ResponseRecorder {
	t.Helper()
	req := testutil.JSONRequest(t, method, path, body)
	if user != nil {
		req = auth.WithTestUser(req, user)
	}
	rec := testutil.NewRecorder()
	teams.Routes(h).ServeHTTP(rec, req)
	return rec
}

func TestRoutes_Gates(t *testing.T) {
	h, store := newHandler(nil)
	existing, _ := store.Create(context.Background(), models.Team{Name: "Sul"})
	path := "/" + existing.ID.Hex()
	body := map[string]string{"name": "Norte"}

	tests := []struct {
		name   string
		user   *auth.SessionUser
		method string
		path   string
		status int
	}{
		{"anonymous list", nil, "GET", "/", http.StatusUnauthorized},
		{"list", testutil.PlainUser(), "GET", "/", http.StatusOK},
		{"get", testutil.PlainUser(), "GET", path, http.StatusOK},
		{"create denied", testutil.UserWith(updateTeams), "POST", "/", http.StatusForbidden},
		{"create", testutil.UserWith(createTeams), "POST", "/", http.StatusCreated},
		{"update denied", testutil.UserWith(createTeams), "PUT", path, http.StatusForbidden},
		{"update", testutil.UserWith(updateTeams), "PUT", path, http.StatusOK},
		{"delete denied", testutil.UserWith(createTeams, updateTeams), "DELETE", path, http.StatusForbidden},
		{"delete", testutil.UserWith(deleteTeams), "DELETE", path, http.StatusNoContent},
		{"delete again", testutil.UserWith(deleteTeams), "DELETE", path, http.StatusNotFound},
		{"bad id", testutil.UserWith(deleteTeams), "DELETE", "/nope", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b any
			if tt.method == "POST" || tt.method == "PUT" {
				b = body
			}
			do(t, h, tt.user, tt.method, tt.path, b).AssertStatus(t, tt.status)
		})
	}
}

func TestHandleCreate_SanitizesAndNormalizes(t *testing.T) {
	h, store := newHandler(nil)
	rec := do(t, h, testutil.UserWith(createTeams), "POST", "/", map[string]string{
		"name":        "  Afiliados <b>Sul</b> ",
		"description": `<p>Equipe de <i>vendas</i> &amp; suporte</p>`,
		"leadEmail":   "Lider@Example.com",
		"leadPhone":   "(51) 99999-0000",
		"tags":        " vendas, ,sul ,  ",
		"startDate":   "2026-01-15",
	})
	rec.AssertStatus(t, http.StatusCreated)

	var got models.Team
	rec.DecodeJSON(t, &got)
	stored, err := store.GetByID(context.Background(), got.ID)
	if err != nil {
		t.Fatalf("not stored: %v", err)
	}
	if stored.Name != "Afiliados Sul" {
		t.Errorf("name: got %q", stored.Name)
	}
	if stored.Description != "Equipe de vendas & suporte" {
		t.Errorf("description: got %q", stored.Description)
	}
	if stored.LeadEmail != "lider@example.com" || stored.LeadPhone != "51999990000" {
		t.Errorf("lead contact: %q %q", stored.LeadEmail, stored.LeadPhone)
	}
	if stored.Tags != "vendas, sul" {
		t.Errorf("tags: got %q", stored.Tags)
	}
	if stored.Status != models.TeamActive {
		t.Errorf("status default: got %q", stored.Status)
	}
}

func TestHandleCreate_Invalid(t *testing.T) {
	h, _ := newHandler(nil)
	tests := []struct {
		name string
		user *auth.SessionUser
		body map[string]string
		code int
		want string
	}{
		{"missing name", testutil.UserWith(createTeams), map[string]string{"description": "x"}, http.StatusUnprocessableEntity, `"name":"required"`},
		{"bad status", testutil.UserWith(createTeams), map[string]string{"name": "Sul", "status": "archived"}, http.StatusUnprocessableEntity, `"status":"oneof"`},
		{"bad start date", testutil.UserWith(createTeams), map[string]string{"name": "Sul", "startDate": "15/01/2026"}, http.StatusUnprocessableEntity, `"startDate":"datetime"`},
		{"bad lead email", testutil.UserWith(createTeams), map[string]string{"name": "Sul", "leadEmail": "lider"}, http.StatusUnprocessableEntity, `"leadEmail":"mailaddr"`},
		{"non-numeric limit", testutil.UserWith(createTeams), map[string]string{"name": "Sul", "membersLimit": "dez"}, http.StatusUnprocessableEntity, `"membersLimit":"numeric"`},
		{"plan by non-admin", testutil.UserWith(createTeams), map[string]string{"name": "Sul", "plan": "Enterprise"}, http.StatusForbidden, "administrators"},
		{"unknown plan", testutil.AdminUser(), map[string]string{"name": "Sul", "plan": "Gold"}, http.StatusUnprocessableEntity, `"plan":"oneof"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.user, "POST", "/", tt.body)
			rec.AssertStatus(t, tt.code)
			rec.AssertContains(t, tt.want)
		})
	}
}

func TestHandleUpdate_KeepsPlanForNonAdmins(t *testing.T) {
	h, store := newHandler(nil)
	team, _ := store.Create(context.Background(), models.Team{Name: "Sul", Plan: "Professional", PlanStatus: "active"})

	rec := do(t, h, testutil.UserWith(updateTeams), "PUT", "/"+team.ID.Hex(), map[string]string{"name": "Sul Renovado", "status": "inactive"})
	rec.AssertStatus(t, http.StatusOK)

	stored, _ := store.GetByID(context.Background(), team.ID)
	if stored.Name != "Sul Renovado" || stored.Status != models.TeamInactive {
		t.Errorf("not updated: %+v", stored)
	}
	if stored.Plan != "Professional" || stored.PlanStatus != "active" {
		t.Errorf("plan changed: %q %q", stored.Plan, stored.PlanStatus)
	}

	do(t, h, testutil.UserWith(updateTeams), "PUT", "/"+primitive.NewObjectID().Hex(), map[string]string{"name": "X Y"}).
		AssertStatus(t, http.StatusNotFound)
}

func TestServeList_LiveMemberCount(t *testing.T) {
	h, store := newHandler(nil)
	a, _ := store.Create(context.Background(), models.Team{Name: "A", Members: 99})
	b, _ := store.Create(context.Background(), models.Team{Name: "B"})
	h.Members = fakeCounter{counts: map[primitive.ObjectID]int64{a.ID: 3, b.ID: 1}}

	rec := do(t, h, testutil.PlainUser(), "GET", "/", nil)
	rec.AssertStatus(t, http.StatusOK)
	var got []models.Team
	rec.DecodeJSON(t, &got)
	if len(got) != 2 || got[0].Members != 3 || got[1].Members != 1 {
		t.Errorf("unexpected members %+v", got)
	}

	h.Members = fakeCounter{err: errors.New("boom")}
	rec = do(t, h, testutil.PlainUser(), "GET", "/", nil)
	rec.DecodeJSON(t, &got)
	if got[0].Members != 99 {
		t.Errorf("failed count should keep stored value, got %d", got[0].Members)
	}
}

func TestServeGet_NotFound(t *testing.T) {
	h, _ := newHandler(nil)
	do(t, h, testutil.PlainUser(), "GET", "/"+primitive.NewObjectID().Hex(), nil).AssertStatus(t, http.StatusNotFound)
}
