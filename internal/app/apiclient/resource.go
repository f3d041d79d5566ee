// internal/app/apiclient/resource.go
package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

// Resource is the CRUD surface of one collection endpoint: GET and POST on
// the base path, GET, PUT and DELETE on base/{id}.
type Resource[E, C, U any] struct {
	c    *Client
	path string
}

// NewResource binds a Resource to path, e.g. "/team".
func NewResource[E, C, U any](c *Client, path string) *Resource[E, C, U] {
	return &Resource[E, C, U]{c: c, path: path}
}

func (r *Resource[E, C, U]) item(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// List returns the collection in server order.
func (r *Resource[E, C, U]) List(ctx context.Context) ([]E, error) {
	var out []E
	if err := r.c.Do(ctx, http.MethodGet, r.path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource[E, C, U]) Get(ctx context.Context, id string) (E, error) {
	var out E
	err := r.c.Do(ctx, http.MethodGet, r.item(id), nil, &out)
	return out, err
}

// Create posts payload and returns the stored entity.
func (r *Resource[E, C, U]) Create(ctx context.Context, payload C) (E, error) {
	var out E
	err := r.c.Do(ctx, http.MethodPost, r.path, payload, &out)
	return out, err
}

// Update puts payload to id and returns the entity after the change.
func (r *Resource[E, C, U]) Update(ctx context.Context, id string, payload U) (E, error) {
	var out E
	err := r.c.Do(ctx, http.MethodPut, r.item(id), payload, &out)
	return out, err
}

func (r *Resource[E, C, U]) Remove(ctx context.Context, id string) error {
	return r.c.Do(ctx, http.MethodDelete, r.item(id), nil, nil)
}
