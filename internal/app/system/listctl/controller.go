// internal/app/system/listctl/controller.go
package listctl

import (
	"context"
	"iter"
	"slices"
	"sync"

	"github.com/dalemusser/apollo/internal/app/system/authz"
	"github.com/dalemusser/apollo/internal/app/system/search"
	"github.com/dalemusser/apollo/internal/domain/models"
	"go.uber.org/zap"
)

// Entity is anything with a stable, unique id.
type Entity interface {
	EntityID() string
}

// Client performs the network round trips for one resource kind.
type Client[E Entity, C, U any] interface {
	List(ctx context.Context) ([]E, error)
	Create(ctx context.Context, payload C) (E, error)
	Update(ctx context.Context, id string, payload U) (E, error)
	Remove(ctx context.Context, id string) error
}

// Config wires a Controller for one entity kind. F is the form data the
// presentational layer submits; CreatePayload and UpdatePayload map it to
// the client's payload types.
type Config[E Entity, F, C, U any] struct {
	Module      models.Module
	Client      Client[E, C, U]
	Permissions []models.Permission

	// Match filters the collection for FilteredView. Nil matches everything.
	Match search.Matcher[E]

	// A nil mapper sends the zero payload.
	CreatePayload func(F) C
	UpdatePayload func(F) U

	Messages Messages
	Notifier Notifier
	Log      *zap.Logger
}

// Snapshot is a read-only copy of the controller state.
type Snapshot[E any] struct {
	Items      []E
	Loading    bool
	SearchTerm string
	Form       FormState[E]
}

// Controller owns the list state of one resource kind.
type Controller[E Entity, F, C, U any] struct {
	module   models.Module
	client   Client[E, C, U]
	match    search.Matcher[E]
	toCreate func(F) C
	toUpdate func(F) U
	msgs     Messages
	notifier Notifier
	log      *zap.Logger

	// mu guards the fields below. It is never held across a Client call or
	// a Notify call.
	mu       sync.Mutex
	perms    []models.Permission
	items    []E
	inflight int
	term     string
	form     FormState[E]
	formGen  uint64
	closed   bool
}

// New builds a Controller. The permission slice is copied.
func New[E Entity, F, C, U any](cfg Config[E, F, C, U]) *Controller[E, F, C, U] {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	toCreate := cfg.CreatePayload
	if toCreate == nil {
		toCreate = func(F) (zero C) { return zero }
	}
	toUpdate := cfg.UpdatePayload
	if toUpdate == nil {
		toUpdate = func(F) (zero U) { return zero }
	}
	return &Controller[E, F, C, U]{
		module:   cfg.Module,
		client:   cfg.Client,
		match:    cfg.Match,
		toCreate: toCreate,
		toUpdate: toUpdate,
		msgs:     cfg.Messages.withDefaults(),
		notifier: cfg.Notifier,
		log:      log.With(zap.String("module", string(cfg.Module))),
		perms:    slices.Clone(cfg.Permissions),
	}
}

// SetPermissions replaces the permission set, e.g. after the session's user
// info is reloaded.
func (c *Controller[E, F, C, U]) SetPermissions(perms []models.Permission) {
	c.mu.Lock()
	c.perms = slices.Clone(perms)
	c.mu.Unlock()
}

func (c *Controller[E, F, C, U]) can(a models.Action) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return authz.Has(c.perms, a, c.module)
}

func (c *Controller[E, F, C, U]) CanCreate() bool { return c.can(models.ActionCreate) }
func (c *Controller[E, F, C, U]) CanUpdate() bool { return c.can(models.ActionUpdate) }
func (c *Controller[E, F, C, U]) CanDelete() bool { return c.can(models.ActionDelete) }

// Loading reports whether any remote call is in flight.
func (c *Controller[E, F, C, U]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0
}

// Snapshot copies the current state.
func (c *Controller[E, F, C, U]) Snapshot() Snapshot[E] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot[E]{
		Items:      slices.Clone(c.items),
		Loading:    c.inflight > 0,
		SearchTerm: c.term,
		Form:       c.form,
	}
}

// Form returns the current form state.
func (c *Controller[E, F, C, U]) Form() FormState[E] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// SetSearchTerm replaces the active search term. Any string is accepted.
func (c *Controller[E, F, C, U]) SetSearchTerm(term string) {
	c.mu.Lock()
	c.term = term
	c.mu.Unlock()
}

// FilteredView yields the entities matching the current search term, in
// collection order. Each iteration takes a fresh copy of the collection and
// term, so the sequence can be ranged over repeatedly and always reflects
// the state at the moment iteration starts.
func (c *Controller[E, F, C, U]) FilteredView() iter.Seq[E] {
	return func(yield func(E) bool) {
		c.mu.Lock()
		items := slices.Clone(c.items)
		term := c.term
		c.mu.Unlock()

		for _, e := range items {
			if c.match != nil && !c.match(e, term) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Filtered collects FilteredView into a slice.
func (c *Controller[E, F, C, U]) Filtered() []E {
	return slices.Collect(c.FilteredView())
}

// Load replaces the collection with the server's. On failure the collection
// is left as it was.
func (c *Controller[E, F, C, U]) Load(ctx context.Context) error {
	if !c.begin() {
		return ErrClosed
	}
	defer c.end()

	items, err := c.client.List(ctx)
	if err != nil {
		return c.fail(FetchFailed, "list", err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.items = slices.Clone(items)
	c.mu.Unlock()
	return nil
}

// RequestCreate opens the form in create mode.
func (c *Controller[E, F, C, U]) RequestCreate() error {
	return c.openForm(models.ActionCreate, creatingForm[E]())
}

// RequestEdit opens the form in edit mode for e.
func (c *Controller[E, F, C, U]) RequestEdit(e E) error {
	return c.openForm(models.ActionUpdate, editingForm(e))
}

func (c *Controller[E, F, C, U]) openForm(a models.Action, f FormState[E]) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if !authz.Has(c.perms, a, c.module) {
		c.mu.Unlock()
		return c.deny(a)
	}
	c.form = f
	c.formGen++
	c.mu.Unlock()
	return nil
}

// CancelForm closes the form. It never fails and needs no permission.
func (c *Controller[E, F, C, U]) CancelForm() {
	c.mu.Lock()
	c.form = closedForm[E]()
	c.formGen++
	c.mu.Unlock()
}

// Save submits the form. When an entity is being edited it is updated by
// id; otherwise a new entity is created and appended. The server's returned
// representation is what lands in the collection. On success the form is
// closed unless it was reopened while the call was in flight; on failure it
// stays open.
func (c *Controller[E, F, C, U]) Save(ctx context.Context, form F) (E, error) {
	var zero E

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	target, editing := c.form.Target()
	action := models.ActionCreate
	if editing {
		action = models.ActionUpdate
	}
	if !authz.Has(c.perms, action, c.module) {
		c.mu.Unlock()
		return zero, c.deny(action)
	}
	gen := c.formGen
	c.inflight++
	c.mu.Unlock()
	defer c.end()

	if editing {
		return c.update(ctx, target.EntityID(), form, gen)
	}
	return c.create(ctx, form, gen)
}

func (c *Controller[E, F, C, U]) create(ctx context.Context, form F, gen uint64) (E, error) {
	var zero E
	created, err := c.client.Create(ctx, c.toCreate(form))
	if err != nil {
		return zero, c.fail(CreateFailed, "create", err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	c.items = append(c.items, created)
	c.closeFormIf(gen)
	c.mu.Unlock()

	c.success(c.msgs.Created)
	return created, nil
}

func (c *Controller[E, F, C, U]) update(ctx context.Context, id string, form F, gen uint64) (E, error) {
	var zero E
	updated, err := c.client.Update(ctx, id, c.toUpdate(form))
	if err != nil {
		return zero, c.fail(UpdateFailed, "update", err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	// A delete of the same id may have completed first; the update finished
	// later, so its representation wins and goes back at the end.
	if i := c.indexOf(id); i >= 0 {
		c.items[i] = updated
	} else {
		c.items = append(c.items, updated)
	}
	c.closeFormIf(gen)
	c.mu.Unlock()

	c.success(c.msgs.Updated)
	return updated, nil
}

// Delete removes the entity with id, remotely and then locally.
func (c *Controller[E, F, C, U]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if !authz.Has(c.perms, models.ActionDelete, c.module) {
		c.mu.Unlock()
		return c.deny(models.ActionDelete)
	}
	c.inflight++
	c.mu.Unlock()
	defer c.end()

	if err := c.client.Remove(ctx, id); err != nil {
		return c.fail(DeleteFailed, "remove", err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.items = slices.DeleteFunc(c.items, func(e E) bool { return e.EntityID() == id })
	c.mu.Unlock()

	c.success(c.msgs.Deleted)
	return nil
}

// Close disposes the controller. Calls still in flight complete without
// touching state or raising notifications, and later calls return ErrClosed.
func (c *Controller[E, F, C, U]) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// begin registers an in-flight call unless the controller is closed.
func (c *Controller[E, F, C, U]) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.inflight++
	return true
}

func (c *Controller[E, F, C, U]) end() {
	c.mu.Lock()
	c.inflight--
	c.mu.Unlock()
}

// indexOf must be called with mu held.
func (c *Controller[E, F, C, U]) indexOf(id string) int {
	return slices.IndexFunc(c.items, func(e E) bool { return e.EntityID() == id })
}

// closeFormIf must be called with mu held.
func (c *Controller[E, F, C, U]) closeFormIf(gen uint64) {
	if c.formGen == gen {
		c.form = closedForm[E]()
		c.formGen++
	}
}

func (c *Controller[E, F, C, U]) deny(a models.Action) error {
	c.log.Info("action denied", zap.String("action", string(a)))
	c.notify(Notification{Level: LevelError, Kind: PermissionDenied, Message: c.msgs.denied(a)})
	return &Error{Kind: PermissionDenied, Module: c.module}
}

// fail logs and reports a remote failure. After Close it only returns the
// error.
func (c *Controller[E, F, C, U]) fail(k Kind, op string, err error) error {
	le := &Error{Kind: k, Module: c.module, Err: err}
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return le
	}
	c.log.Warn("remote call failed", zap.String("op", op), zap.Error(err))
	c.notify(Notification{Level: LevelError, Kind: k, Message: c.msgs.forKind(k)})
	return le
}

func (c *Controller[E, F, C, U]) success(msg string) {
	if msg == "" {
		return
	}
	c.notify(Notification{Level: LevelSuccess, Message: msg})
}

func (c *Controller[E, F, C, U]) notify(n Notification) {
	if c.notifier != nil {
		c.notifier.Notify(n)
	}
}
