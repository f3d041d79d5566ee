package main

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/dalemusser/apollo/internal/app/apiclient"
	"github.com/dalemusser/apollo/internal/app/system/listctl"
	"github.com/dalemusser/apollo/internal/domain/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// controller is the part of a list controller the entity commands drive.
type controller[R listctl.Entity, F any] interface {
	Load(ctx context.Context) error
	SetSearchTerm(term string)
	Filtered() []R
	Snapshot() listctl.Snapshot[R]
	RequestCreate() error
	RequestEdit(e R) error
	Save(ctx context.Context, form F) (R, error)
	Delete(ctx context.Context, id string) error
	Close()
}

type column[R any] struct {
	title string
	get   func(R) string
}

// kind describes one resource screen: how to build its controller, what
// the table shows and which form fields --field may set.
type kind[R listctl.Entity, F any] struct {
	use     string
	alias   string
	short   string
	build   func(*apiclient.Client, []models.Permission, listctl.Notifier, *zap.Logger) controller[R, F]
	columns []column[R]
	fields  map[string]func(*F, string)
	fromRow func(R) F
}

func (k kind[R, F]) fieldNames() []string {
	names := make([]string, 0, len(k.fields))
	for n := range k.fields {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// apply sets key=value pairs on form.
func (k kind[R, F]) apply(form *F, pairs []string) error {
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok {
			return fmt.Errorf("--field %q: want key=value", p)
		}
		set, ok := k.fields[strings.TrimSpace(key)]
		if !ok {
			return fmt.Errorf("unknown field %q (known: %s)", key, strings.Join(k.fieldNames(), ", "))
		}
		set(form, value)
	}
	return nil
}

func (k kind[R, F]) print(c *cli, rows []R) error {
	if len(rows) == 0 {
		fmt.Fprintln(c.out, "Nenhum registro encontrado.")
		return nil
	}
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	titles := make([]string, len(k.columns))
	for i, col := range k.columns {
		titles[i] = col.title
	}
	fmt.Fprintln(w, strings.Join(titles, "\t"))
	cells := make([]string, len(k.columns))
	for _, r := range rows {
		for i, col := range k.columns {
			cells[i] = col.get(r)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}

func entityCmd[R listctl.Entity, F any](c *cli, k kind[R, F]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   k.use,
		Short: k.short,
	}
	if k.alias != "" {
		cmd.Aliases = []string{k.alias}
	}

	// open signs in, builds the controller with the session's grants and
	// loads the collection.
	open := func(ctx context.Context) (controller[R, F], error) {
		api, info, err := c.session(ctx)
		if err != nil {
			return nil, err
		}
		ctl := k.build(api, info.Permissions, c.notifier(), c.log)
		if err := ctl.Load(ctx); err != nil {
			ctl.Close()
			return nil, err
		}
		return ctl, nil
	}

	var term string
	list := &cobra.Command{
		Use:   "list",
		Short: "List " + k.use,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer ctl.Close()
			ctl.SetSearchTerm(term)
			return k.print(c, ctl.Filtered())
		},
	}
	list.Flags().StringVarP(&term, "search", "s", "", "Only rows matching this term")

	var createFields []string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create one of " + k.use,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var form F
			if err := k.apply(&form, createFields); err != nil {
				return err
			}
			ctl, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer ctl.Close()
			if err := ctl.RequestCreate(); err != nil {
				return err
			}
			row, err := ctl.Save(cmd.Context(), form)
			if err != nil {
				return err
			}
			return k.print(c, []R{row})
		},
	}
	create.Flags().StringArrayVarP(&createFields, "field", "f", nil, "key=value to set (repeatable; known: "+strings.Join(k.fieldNames(), ", ")+")")

	var updateFields []string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit one of " + k.use,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer ctl.Close()
			items := ctl.Snapshot().Items
			i := slices.IndexFunc(items, func(r R) bool { return r.EntityID() == args[0] })
			if i < 0 {
				return fmt.Errorf("%s: no record with id %q", k.use, args[0])
			}
			if err := ctl.RequestEdit(items[i]); err != nil {
				return err
			}
			form := k.fromRow(items[i])
			if err := k.apply(&form, updateFields); err != nil {
				return err
			}
			row, err := ctl.Save(cmd.Context(), form)
			if err != nil {
				return err
			}
			return k.print(c, []R{row})
		},
	}
	update.Flags().StringArrayVarP(&updateFields, "field", "f", nil, "key=value to change (repeatable)")

	del := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete one of " + k.use,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer ctl.Close()
			return ctl.Delete(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, create, update, del)
	return cmd
}
