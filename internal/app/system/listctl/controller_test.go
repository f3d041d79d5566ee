package listctl_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/apollo/internal/app/system/listctl"
	"github.com/dalemusser/apollo/internal/app/system/search"
	"github.com/dalemusser/apollo/internal/domain/models"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

type user struct {
	ID   string
	Name string
}

func (u user) EntityID() string { return u.ID }

type form struct{ Name string }

type payload struct{ Name string }

// fakeClient is an in-memory Client. Hooks, when set, run before the call
// returns and may block to control completion order.
type fakeClient struct {
	mu     sync.Mutex
	items  []user
	nextID int
	err    error
	calls  []string
	onList func()
	onUpd  func()
	onRm   func()
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) List(ctx context.Context) ([]user, error) {
	f.record("list")
	if f.onList != nil {
		f.onList()
	}
	if f.err != nil {
		return nil, f.err
	}
	return append([]user(nil), f.items...), nil
}

func (f *fakeClient) Create(ctx context.Context, p payload) (user, error) {
	f.record("create")
	if f.err != nil {
		return user{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	// The server normalizes names; controllers must keep its version.
	return user{ID: "new-" + strconv.Itoa(f.nextID), Name: strings.TrimSpace(p.Name)}, nil
}

func (f *fakeClient) Update(ctx context.Context, id string, p payload) (user, error) {
	f.record("update")
	if f.onUpd != nil {
		f.onUpd()
	}
	if f.err != nil {
		return user{}, f.err
	}
	return user{ID: id, Name: strings.TrimSpace(p.Name)}, nil
}

func (f *fakeClient) Remove(ctx context.Context, id string) error {
	f.record("remove")
	if f.onRm != nil {
		f.onRm()
	}
	return f.err
}

type recorder struct {
	mu    sync.Mutex
	notes []listctl.Notification
}

func (r *recorder) Notify(n listctl.Notification) {
	r.mu.Lock()
	r.notes = append(r.notes, n)
	r.mu.Unlock()
}

func (r *recorder) kinds() []listctl.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []listctl.Kind
	for _, n := range r.notes {
		if n.Level == listctl.LevelError {
			out = append(out, n.Kind)
		}
	}
	return out
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notes)
}

var allUsers = []models.Permission{
	{Action: models.ActionCreate, Module: models.ModuleUsers},
	{Action: models.ActionUpdate, Module: models.ModuleUsers},
	{Action: models.ActionDelete, Module: models.ModuleUsers},
}

func newController(t *testing.T, client *fakeClient, perms []models.Permission) (*listctl.Controller[user, form, payload, payload], *recorder) {
	t.Helper()
	rec := &recorder{}
	c := listctl.New(listctl.Config[user, form, payload, payload]{
		Module:      models.ModuleUsers,
		Client:      client,
		Permissions: perms,
		Match: search.Fields(search.Field[user]{
			Name: "name", Get: func(u user) string { return u.Name }, Normalize: search.Fold,
		}),
		CreatePayload: func(f form) payload { return payload(f) },
		UpdatePayload: func(f form) payload { return payload(f) },
		Messages:      listctl.Messages{Created: "Usuário criado.", Updated: "Usuário atualizado.", Deleted: "Usuário excluído."},
		Notifier:      rec,
		Log:           zap.NewNop(),
	})
	t.Cleanup(c.Close)
	return c, rec
}

func seeded() *fakeClient {
	return &fakeClient{items: []user{{ID: "1", Name: "Ana"}, {ID: "2", Name: "Bia"}}}
}

func loaded(t *testing.T, client *fakeClient, perms []models.Permission) (*listctl.Controller[user, form, payload, payload], *recorder) {
	t.Helper()
	c, rec := newController(t, client, perms)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c, rec
}

func TestLoad(t *testing.T) {
	c, _ := loaded(t, seeded(), nil)
	s := c.Snapshot()
	if diff := cmp.Diff([]user{{"1", "Ana"}, {"2", "Bia"}}, s.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if s.Loading {
		t.Error("loading should be cleared after Load")
	}
}

func TestLoad_FailureKeepsCollection(t *testing.T) {
	client := seeded()
	c, rec := loaded(t, client, nil)

	client.err = errors.New("boom")
	err := c.Load(context.Background())
	if !listctl.IsKind(err, listctl.FetchFailed) {
		t.Fatalf("expected FetchFailed, got %v", err)
	}
	if !errors.Is(err, client.err) {
		t.Error("error should unwrap to the remote cause")
	}
	if diff := cmp.Diff([]user{{"1", "Ana"}, {"2", "Bia"}}, c.Snapshot().Items); diff != "" {
		t.Errorf("collection changed on failure (-want +got):\n%s", diff)
	}
	if c.Loading() {
		t.Error("loading should be cleared after failure")
	}
	if diff := cmp.Diff([]listctl.Kind{listctl.FetchFailed}, rec.kinds()); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
}

func TestLoading_TrueWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	client := seeded()
	client.onList = func() {
		close(entered)
		<-release
	}
	c, _ := newController(t, client, nil)

	done := make(chan error)
	go func() { done <- c.Load(context.Background()) }()
	<-entered
	if !c.Loading() {
		t.Error("Loading() should be true while the list call is in flight")
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Loading() {
		t.Error("Loading() should be false once the call returns")
	}
}

// Every guarded operation is a no-op without the matching permission and
// never reaches the client.
func TestPermissionFailClosed(t *testing.T) {
	sets := map[string][]models.Permission{
		"nil":          nil,
		"empty":        {},
		"other module": {{Action: models.ActionCreate, Module: models.ModuleTeams}, {Action: models.ActionUpdate, Module: models.ModuleTeams}, {Action: models.ActionDelete, Module: models.ModuleTeams}},
		"lowercase":    {{Action: "create", Module: "users"}, {Action: "update", Module: "users"}, {Action: "delete", Module: "users"}},
	}
	for name, perms := range sets {
		t.Run(name, func(t *testing.T) {
			client := seeded()
			c, rec := loaded(t, client, perms)
			before := c.Snapshot()

			if err := c.RequestCreate(); !errors.Is(err, listctl.ErrPermissionDenied) {
				t.Errorf("RequestCreate: got %v", err)
			}
			if err := c.RequestEdit(user{ID: "1", Name: "Ana"}); !errors.Is(err, listctl.ErrPermissionDenied) {
				t.Errorf("RequestEdit: got %v", err)
			}
			if _, err := c.Save(context.Background(), form{Name: "X"}); !errors.Is(err, listctl.ErrPermissionDenied) {
				t.Errorf("Save: got %v", err)
			}
			if err := c.Delete(context.Background(), "1"); !errors.Is(err, listctl.ErrPermissionDenied) {
				t.Errorf("Delete: got %v", err)
			}

			if diff := cmp.Diff(before, c.Snapshot(), cmp.AllowUnexported(listctl.FormState[user]{})); diff != "" {
				t.Errorf("state changed (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"list"}, client.Calls()); diff != "" {
				t.Errorf("client calls (-want +got):\n%s", diff)
			}
			want := []listctl.Kind{listctl.PermissionDenied, listctl.PermissionDenied, listctl.PermissionDenied, listctl.PermissionDenied}
			if diff := cmp.Diff(want, rec.kinds()); diff != "" {
				t.Errorf("notifications (-want +got):\n%s", diff)
			}
			if c.CanCreate() || c.CanUpdate() || c.CanDelete() {
				t.Error("Can* should all be false")
			}
		})
	}
}

func TestSave_UpdateDeniedWhileEditingWithoutUpdate(t *testing.T) {
	client := seeded()
	c, _ := loaded(t, client, []models.Permission{{Action: models.ActionUpdate, Module: models.ModuleUsers}})
	if err := c.RequestEdit(user{ID: "1", Name: "Ana"}); err != nil {
		t.Fatal(err)
	}
	c.SetPermissions([]models.Permission{{Action: models.ActionCreate, Module: models.ModuleUsers}})

	if _, err := c.Save(context.Background(), form{Name: "Ana Maria"}); !errors.Is(err, listctl.ErrPermissionDenied) {
		t.Fatalf("Save with stale edit permission: got %v", err)
	}
	if got := client.Calls(); len(got) != 1 {
		t.Errorf("client should not be called, calls=%v", got)
	}
	if !c.Form().Open() {
		t.Error("form should stay open after a denied save")
	}
}

func TestFilteredView(t *testing.T) {
	client := &fakeClient{items: []user{
		{ID: "1", Name: "Ana"}, {ID: "2", Name: "Bia"}, {ID: "3", Name: "Mariana"}, {ID: "4", Name: "João"},
	}}
	c, _ := loaded(t, client, nil)

	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"1", "2", "3", "4"}},
		{"ana", []string{"1", "3"}},
		{"ANA", []string{"1", "3"}},
		{"joao", []string{"4"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			c.SetSearchTerm(tt.term)
			var got []string
			for u := range c.FilteredView() {
				got = append(got, u.ID)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("filtered ids (-want +got):\n%s", diff)
			}
		})
	}

	if len(c.Snapshot().Items) != 4 {
		t.Error("search must not mutate the collection")
	}
}

func TestFilteredView_Restartable(t *testing.T) {
	c, _ := loaded(t, seeded(), allUsers)
	view := c.FilteredView()

	first := 0
	for range view {
		first++
	}
	if _, err := c.Save(context.Background(), form{Name: "Carla"}); err != nil {
		t.Fatal(err)
	}
	second := 0
	for range view {
		second++
	}
	if first != 2 || second != 3 {
		t.Errorf("restart should observe new state: first=%d second=%d", first, second)
	}

	// Early break stops iteration.
	n := 0
	for range view {
		n++
		break
	}
	if n != 1 {
		t.Errorf("break: got %d", n)
	}
}

func TestSave_CreateAppendsServerRepresentation(t *testing.T) {
	client := seeded()
	c, rec := loaded(t, client, allUsers)

	if err := c.RequestCreate(); err != nil {
		t.Fatal(err)
	}
	if c.Form().Mode() != listctl.FormCreating {
		t.Fatalf("mode: got %v", c.Form().Mode())
	}
	created, err := c.Save(context.Background(), form{Name: "  Carla  "})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	items := c.Snapshot().Items
	if len(items) != 3 {
		t.Fatalf("len: got %d, want 3", len(items))
	}
	if diff := cmp.Diff(user{ID: created.ID, Name: "Carla"}, items[2]); diff != "" {
		t.Errorf("appended entity (-want +got):\n%s", diff)
	}
	n := 0
	for _, u := range items {
		if u.ID == created.ID {
			n++
		}
	}
	if n != 1 {
		t.Errorf("expected exactly one entity with id %s, got %d", created.ID, n)
	}
	if c.Form().Open() {
		t.Error("form should close after a successful create")
	}
	if rec.count() != 1 || len(rec.kinds()) != 0 {
		t.Errorf("expected one success notification, got %+v", rec.notes)
	}
}

func TestSave_NilMappersSendZeroPayload(t *testing.T) {
	client := seeded()
	c := listctl.New(listctl.Config[user, form, payload, payload]{
		Module:      models.ModuleUsers,
		Client:      client,
		Permissions: allUsers,
	})
	t.Cleanup(c.Close)
	ctx := context.Background()
	if err := c.Load(ctx); err != nil {
		t.Fatal(err)
	}

	if err := c.RequestCreate(); err != nil {
		t.Fatal(err)
	}
	created, err := c.Save(ctx, form{Name: "Carla"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "" {
		t.Errorf("create payload: got name %q, want zero payload", created.Name)
	}

	if err := c.RequestEdit(user{ID: "1", Name: "Ana"}); err != nil {
		t.Fatal(err)
	}
	updated, err := c.Save(ctx, form{Name: "Ana Maria"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "" {
		t.Errorf("update payload: got name %q, want zero payload", updated.Name)
	}
	if diff := cmp.Diff([]string{"list", "create", "update"}, client.Calls()); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}
}

func TestSave_UpdateReplacesByID(t *testing.T) {
	client := &fakeClient{items: []user{{"1", "Ana"}, {"2", "Bia"}, {"3", "Carla"}}}
	c, _ := loaded(t, client, allUsers)

	if err := c.RequestEdit(user{ID: "2", Name: "Bia"}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Save(context.Background(), form{Name: "Beatriz "}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	want := []user{{"1", "Ana"}, {"2", "Beatriz"}, {"3", "Carla"}}
	if diff := cmp.Diff(want, c.Snapshot().Items); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
}

func TestSave_FailureLeavesStateAndFormOpen(t *testing.T) {
	tests := []struct {
		name string
		open func(c *listctl.Controller[user, form, payload, payload]) error
		kind listctl.Kind
	}{
		{"create", func(c *listctl.Controller[user, form, payload, payload]) error { return c.RequestCreate() }, listctl.CreateFailed},
		{"update", func(c *listctl.Controller[user, form, payload, payload]) error {
			return c.RequestEdit(user{ID: "1", Name: "Ana"})
		}, listctl.UpdateFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := seeded()
			c, rec := loaded(t, client, allUsers)
			if err := tt.open(c); err != nil {
				t.Fatal(err)
			}
			before := c.Snapshot().Items

			client.err = errors.New("422")
			_, err := c.Save(context.Background(), form{Name: "X"})
			if !listctl.IsKind(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
			if diff := cmp.Diff(before, c.Snapshot().Items); diff != "" {
				t.Errorf("collection changed (-want +got):\n%s", diff)
			}
			if !c.Form().Open() {
				t.Error("form should stay open after a failed save")
			}
			if c.Loading() {
				t.Error("loading should be cleared")
			}
			if diff := cmp.Diff([]listctl.Kind{tt.kind}, rec.kinds()); diff != "" {
				t.Errorf("notifications (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	client := &fakeClient{items: []user{{"1", "Ana"}, {"2", "Bia"}, {"3", "Carla"}}}
	c, _ := loaded(t, client, allUsers)

	if err := c.Delete(context.Background(), "2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if diff := cmp.Diff([]user{{"1", "Ana"}, {"3", "Carla"}}, c.Snapshot().Items); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
}

func TestDelete_FailureLeavesState(t *testing.T) {
	client := seeded()
	c, rec := loaded(t, client, allUsers)
	client.err = errors.New("404")

	err := c.Delete(context.Background(), "1")
	if !listctl.IsKind(err, listctl.DeleteFailed) {
		t.Fatalf("expected DeleteFailed, got %v", err)
	}
	if diff := cmp.Diff([]user{{"1", "Ana"}, {"2", "Bia"}}, c.Snapshot().Items); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]listctl.Kind{listctl.DeleteFailed}, rec.kinds()); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
}

func TestCancelForm_AlwaysSucceeds(t *testing.T) {
	t.Run("no permissions", func(t *testing.T) {
		c, _ := loaded(t, seeded(), nil)
		c.CancelForm()
		if c.Form().Open() {
			t.Error("form should be closed")
		}
	})
	t.Run("editing", func(t *testing.T) {
		c, _ := loaded(t, seeded(), allUsers)
		_ = c.RequestEdit(user{ID: "1"})
		c.CancelForm()
		if _, ok := c.Form().Target(); ok || c.Form().Open() {
			t.Error("cancel should clear target and close")
		}
	})
	t.Run("while loading", func(t *testing.T) {
		release := make(chan struct{})
		entered := make(chan struct{})
		client := seeded()
		client.onUpd = func() {
			close(entered)
			<-release
		}
		c, _ := loaded(t, client, allUsers)
		_ = c.RequestEdit(user{ID: "1", Name: "Ana"})

		done := make(chan error)
		go func() {
			_, err := c.Save(context.Background(), form{Name: "Ana Maria"})
			done <- err
		}()
		<-entered
		c.CancelForm()
		if c.Form().Open() {
			t.Error("cancel while loading should close the form")
		}
		close(release)
		if err := <-done; err != nil {
			t.Fatal(err)
		}
	})
}

// A save that completes after the user reopened the form leaves the new form
// alone.
func TestSave_DoesNotCloseReopenedForm(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	client := seeded()
	client.onUpd = func() {
		close(entered)
		<-release
	}
	c, _ := loaded(t, client, allUsers)
	_ = c.RequestEdit(user{ID: "1", Name: "Ana"})

	done := make(chan error)
	go func() {
		_, err := c.Save(context.Background(), form{Name: "Ana Maria"})
		done <- err
	}()
	<-entered
	c.CancelForm()
	_ = c.RequestEdit(user{ID: "2", Name: "Bia"})
	close(release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	target, ok := c.Form().Target()
	if !ok || target.ID != "2" {
		t.Errorf("reopened form should survive, got %v %v", target, ok)
	}
	if got := c.Snapshot().Items[0].Name; got != "Ana Maria" {
		t.Errorf("update should still apply, got %q", got)
	}
}

func TestExampleScenario(t *testing.T) {
	client := seeded()
	c, rec := loaded(t, client, []models.Permission{{Action: models.ActionUpdate, Module: models.ModuleUsers}})

	if err := c.RequestEdit(user{ID: "2", Name: "Bia"}); err != nil {
		t.Fatalf("RequestEdit: %v", err)
	}
	target, ok := c.Form().Target()
	if !ok || target.ID != "2" {
		t.Fatalf("editing target: got %v %v", target, ok)
	}

	if err := c.Delete(context.Background(), "1"); !errors.Is(err, listctl.ErrPermissionDenied) {
		t.Fatalf("Delete: got %v", err)
	}
	if diff := cmp.Diff([]user{{"1", "Ana"}, {"2", "Bia"}}, c.Snapshot().Items); diff != "" {
		t.Errorf("delete without permission changed items:\n%s", diff)
	}

	if _, err := c.Save(context.Background(), form{Name: "Beatriz"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if diff := cmp.Diff([]user{{"1", "Ana"}, {"2", "Beatriz"}}, c.Snapshot().Items); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
	if f := c.Form(); f.Open() || f.Mode() != listctl.FormClosed {
		t.Error("form should be closed")
	}
	if diff := cmp.Diff([]listctl.Kind{listctl.PermissionDenied}, rec.kinds()); diff != "" {
		t.Errorf("error notifications (-want +got):\n%s", diff)
	}
}

// Update and delete of the same id race; the one completing last wins.
func TestRace_LastCompletionWins(t *testing.T) {
	t.Run("delete completes last", func(t *testing.T) {
		updEntered, updRelease := make(chan struct{}), make(chan struct{})
		rmEntered, rmRelease := make(chan struct{}), make(chan struct{})
		client := seeded()
		client.onUpd = func() { close(updEntered); <-updRelease }
		client.onRm = func() { close(rmEntered); <-rmRelease }
		c, _ := loaded(t, client, allUsers)
		_ = c.RequestEdit(user{ID: "2", Name: "Bia"})

		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); _, _ = c.Save(context.Background(), form{Name: "Beatriz"}) }()
		<-updEntered
		go func() { defer wg.Done(); _ = c.Delete(context.Background(), "2") }()
		<-rmEntered

		close(updRelease)
		waitFor(t, func() bool { return c.Snapshot().Items[1].Name == "Beatriz" })
		close(rmRelease)
		wg.Wait()

		if diff := cmp.Diff([]user{{"1", "Ana"}}, c.Snapshot().Items); diff != "" {
			t.Errorf("items (-want +got):\n%s", diff)
		}
	})

	t.Run("update completes last", func(t *testing.T) {
		updEntered, updRelease := make(chan struct{}), make(chan struct{})
		client := seeded()
		client.onUpd = func() { close(updEntered); <-updRelease }
		c, _ := loaded(t, client, allUsers)
		_ = c.RequestEdit(user{ID: "2", Name: "Bia"})

		done := make(chan error)
		go func() {
			_, err := c.Save(context.Background(), form{Name: "Beatriz"})
			done <- err
		}()
		<-updEntered
		if err := c.Delete(context.Background(), "2"); err != nil {
			t.Fatal(err)
		}
		close(updRelease)
		if err := <-done; err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff([]user{{"1", "Ana"}, {"2", "Beatriz"}}, c.Snapshot().Items); diff != "" {
			t.Errorf("items (-want +got):\n%s", diff)
		}
	})
}

func TestClose_InFlightCompletionIsNoop(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	client := seeded()
	c, rec := newController(t, client, allUsers)
	client.onList = func() {
		close(entered)
		<-release
	}

	done := make(chan error)
	go func() { done <- c.Load(context.Background()) }()
	<-entered
	c.Close()
	close(release)

	if err := <-done; !errors.Is(err, listctl.ErrClosed) {
		t.Errorf("Load after close: got %v", err)
	}
	if len(c.Snapshot().Items) != 0 {
		t.Error("closed controller should not apply the late response")
	}
	if rec.count() != 0 {
		t.Errorf("closed controller should not notify, got %+v", rec.notes)
	}
}

func TestClose_FailedCompletionIsSilent(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	client := seeded()
	c, rec := loaded(t, client, allUsers)
	client.err = errors.New("boom")
	client.onRm = func() {
		close(entered)
		<-release
	}

	done := make(chan error)
	go func() { done <- c.Delete(context.Background(), "1") }()
	<-entered
	c.Close()
	close(release)
	<-done

	if rec.count() != 0 {
		t.Errorf("closed controller should not notify, got %+v", rec.notes)
	}
	if _, err := c.Save(context.Background(), form{}); !errors.Is(err, listctl.ErrClosed) {
		t.Errorf("Save after close: got %v", err)
	}
	if c.Loading() {
		t.Error("loading should be cleared")
	}
}

func TestConcurrentUse(t *testing.T) {
	c, _ := loaded(t, seeded(), allUsers)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func() { defer wg.Done(); _ = c.Load(context.Background()) }()
		go func() { defer wg.Done(); c.SetSearchTerm("a"); _ = c.Filtered() }()
		go func() { defer wg.Done(); _ = c.RequestCreate(); c.CancelForm() }()
	}
	wg.Wait()
	if c.Loading() {
		t.Error("loading should settle to false")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met")
}

func TestDeniedMessagesPerAction(t *testing.T) {
	rec := &recorder{}
	c := listctl.New(listctl.Config[user, form, payload, payload]{
		Module:        models.ModuleUsers,
		Client:        seeded(),
		CreatePayload: func(f form) payload { return payload(f) },
		UpdatePayload: func(f form) payload { return payload(f) },
		Messages: listctl.Messages{
			DeniedCreate: "sem criar",
			DeniedUpdate: "sem editar",
			DeniedDelete: "sem excluir",
		},
		Notifier: rec,
	})
	defer c.Close()

	_ = c.RequestCreate()
	_ = c.RequestEdit(user{ID: "1"})
	_ = c.Delete(context.Background(), "1")

	var got []string
	for _, n := range rec.notes {
		got = append(got, n.Message)
	}
	if diff := cmp.Diff([]string{"sem criar", "sem editar", "sem excluir"}, got); diff != "" {
		t.Errorf("messages (-want +got):\n%s", diff)
	}
}
