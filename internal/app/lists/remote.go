// internal/app/lists/remote.go

// Package lists binds the generic list controller to the three back-office
// collections. Each file supplies, for one entity, the row shown to the user,
// the form it submits, the payload mappers, the search fields and the
// Portuguese notification texts.
package lists

import (
	"context"

	"github.com/dalemusser/apollo/internal/app/apiclient"
	"github.com/dalemusser/apollo/internal/app/system/listctl"
)

// remote adapts an apiclient.Resource that speaks in API models D to the
// row type R the controller keeps.
type remote[D any, R listctl.Entity, C, U any] struct {
	res   *apiclient.Resource[D, C, U]
	toRow func(D) R
}

func (r remote[D, R, C, U]) List(ctx context.Context) ([]R, error) {
	items, err := r.res.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]R, 0, len(items))
	for _, it := range items {
		rows = append(rows, r.toRow(it))
	}
	return rows, nil
}

func (r remote[D, R, C, U]) Create(ctx context.Context, payload C) (R, error) {
	d, err := r.res.Create(ctx, payload)
	if err != nil {
		var zero R
		return zero, err
	}
	return r.toRow(d), nil
}

func (r remote[D, R, C, U]) Update(ctx context.Context, id string, payload U) (R, error) {
	d, err := r.res.Update(ctx, id, payload)
	if err != nil {
		var zero R
		return zero, err
	}
	return r.toRow(d), nil
}

func (r remote[D, R, C, U]) Remove(ctx context.Context, id string) error {
	return r.res.Remove(ctx, id)
}
