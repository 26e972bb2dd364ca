// Package entity builds the command tree of one list page: list, filter,
// show, create, update and delete, backed by the listing controller, the
// filter form and the editor.
package entity

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"helpdesk/internal/application/editor"
	"helpdesk/internal/application/filterform"
	"helpdesk/internal/application/listing"
	"helpdesk/internal/domain/shared"
	pvo "helpdesk/internal/domain/permission/value_objects"
	"helpdesk/internal/interfaces/cli/app"
	"helpdesk/internal/shared/errors"
)

// Definition describes one entity page.
type Definition[T, F, Form any] struct {
	Use      string
	Aliases  []string
	Short    string
	Resource pvo.Resource
	Fields   []filterform.Field
	Headers  []string
	Row      func(T) []string
	Store    func(c *app.Container) shared.Repository[T, F, Form]
	Spec     func(c *app.Container) editor.Spec[T, Form]
	// Prepare runs on the form after the --set values are applied and
	// before it is saved.
	Prepare func(ctx context.Context, c *app.Container, cmd *cobra.Command, form *Form) error
	// Flags registers extra create/update flags read by Prepare.
	Flags func(cmd *cobra.Command)
}

// Page is one entity page bound to a wired container.
type Page[T, F, Form any] struct {
	Controller *listing.Controller[T, F]
	Filter     *filterform.Form[F]
	Editor     *editor.Editor[T, Form]
	Store      shared.Repository[T, F, Form]
}

// Open binds the definition to c.
func (d Definition[T, F, Form]) Open(c *app.Container) *Page[T, F, Form] {
	store := d.Store(c)
	log := c.Log.Named(d.Use)
	ctrl := listing.NewController[T, F](store, c.PageSize(), log)
	return &Page[T, F, Form]{
		Controller: ctrl,
		Filter:     filterform.New[F](ctrl, d.Fields...),
		Editor:     editor.New[T, Form](store, d.Spec(c), ctrl, c.Prompt.Confirm, log),
		Store:      store,
	}
}

// NewCommand returns the entity command with its CRUD subcommands and any
// extra subcommands.
func NewCommand[T, F, Form any](opts *app.Options, d Definition[T, F, Form], extra ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:     d.Use,
		Aliases: d.Aliases,
		Short:   d.Short,
	}

	cmd.AddCommand(
		newListCommand(opts, d),
		newFilterCommand(opts, d),
		newShowCommand(opts, d),
		newCreateCommand(opts, d),
		newUpdateCommand(opts, d),
		newDeleteCommand(opts, d),
	)
	cmd.AddCommand(extra...)
	return cmd
}

func newListCommand[T, F, Form any](opts *app.Options, d Definition[T, F, Form]) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + d.Use + " page by page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(d.Resource, pvo.ActionRead); err != nil {
					return err
				}
				p := d.Open(c)
				if err := p.Controller.Load(ctx, page); err != nil {
					return err
				}
				return PrintView(c, d, p.Controller.Displayed())
			})
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	return cmd
}

func newFilterCommand[T, F, Form any](opts *app.Options, d Definition[T, F, Form]) *cobra.Command {
	var page int
	values := make(map[string]*string, len(d.Fields))

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Search " + d.Use,
		Long:  "Search " + d.Use + ". Without any criteria the first unfiltered page is shown.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(d.Resource, pvo.ActionRead); err != nil {
					return err
				}
				p := d.Open(c)
				for _, f := range d.Fields {
					if err := p.Filter.Set(f.Name, *values[f.Name]); err != nil {
						return err
					}
				}
				if err := p.Filter.SearchPage(ctx, page); err != nil {
					return err
				}
				return PrintView(c, d, p.Controller.Displayed())
			})
		},
	}

	for _, f := range d.Fields {
		usage := f.Label
		if len(f.Options) > 0 {
			usage = fmt.Sprintf("%s %v", f.Label, f.Options)
		}
		values[f.Name] = cmd.Flags().String(f.Name, "", usage)
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	return cmd
}

func newShowCommand[T, F, Form any](opts *app.Options, d Definition[T, F, Form]) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ParseID(args[0])
			if err != nil {
				return err
			}
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(d.Resource, pvo.ActionRead); err != nil {
					return err
				}
				rec, err := d.Store(c).Get(ctx, id)
				if err != nil {
					return err
				}
				return PrintRecords(c, d, []T{rec}, "")
			})
		},
	}
}

func newCreateCommand[T, F, Form any](opts *app.Options, d Definition[T, F, Form]) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a record from --set key=value pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(d.Resource, pvo.ActionCreate); err != nil {
					return err
				}
				p := d.Open(c)
				p.Editor.Open(nil)
				return save(ctx, c, cmd, d, p, sets)
			})
		},
	}
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "Field value as key=value (repeatable)")
	if d.Flags != nil {
		d.Flags(cmd)
	}
	return cmd
}

func newUpdateCommand[T, F, Form any](opts *app.Options, d Definition[T, F, Form]) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a record; only changed fields are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ParseID(args[0])
			if err != nil {
				return err
			}
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(d.Resource, pvo.ActionUpdate); err != nil {
					return err
				}
				p := d.Open(c)
				rec, err := p.Store.Get(ctx, id)
				if err != nil {
					return err
				}
				p.Editor.Open(&rec)
				return save(ctx, c, cmd, d, p, sets)
			})
		},
	}
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "Field value as key=value (repeatable); an empty value clears the field")
	if d.Flags != nil {
		d.Flags(cmd)
	}
	return cmd
}

func save[T, F, Form any](ctx context.Context, c *app.Container, cmd *cobra.Command, d Definition[T, F, Form], p *Page[T, F, Form], sets []string) error {
	form := p.Editor.Form()
	if err := app.Assign(form, sets); err != nil {
		return err
	}
	if d.Prepare != nil {
		if err := d.Prepare(ctx, c, cmd, form); err != nil {
			return err
		}
	}

	saved, err := p.Editor.Save(ctx)
	if err != nil {
		if alert := p.Editor.Alert(); alert != "" && errors.GetAppError(err) == nil {
			return fmt.Errorf("%s: %w", alert, err)
		}
		return err
	}
	c.Out.Message("Registro salvo com sucesso")
	return PrintRecords(c, d, []T{saved}, "")
}

func newDeleteCommand[T, F, Form any](opts *app.Options, d Definition[T, F, Form]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a record after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ParseID(args[0])
			if err != nil {
				return err
			}
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(d.Resource, pvo.ActionDelete); err != nil {
					return err
				}
				deleted, err := d.Open(c).Editor.Delete(ctx, id)
				if err != nil {
					return err
				}
				if !deleted {
					c.Out.Message("Exclusão cancelada")
					return nil
				}
				c.Out.Message("Registro %d excluído", id)
				return nil
			})
		},
	}
	AddYesFlag(cmd)
	return cmd
}

// AddYesFlag adds the --yes flag that answers confirmations.
func AddYesFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP("yes", "y", false, "Answer yes to confirmation prompts")
}

// ParseID parses a positive record ID argument.
func ParseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("ID inválido: %q", arg))
	}
	return id, nil
}

// PrintView prints a list page with its pager position.
func PrintView[T, F, Form any](c *app.Container, d Definition[T, F, Form], view listing.View[T]) error {
	footer := fmt.Sprintf("Página %d de %d · %d registro(s)", view.Page, view.TotalPages, view.Total)
	if view.Filtered {
		footer += " · filtrado"
	}
	return c.Out.Print(view, table(d, view.Items, footer))
}

// PrintRecords prints records as a table or as structured output.
func PrintRecords[T, F, Form any](c *app.Container, d Definition[T, F, Form], items []T, footer string) error {
	var v any = items
	if len(items) == 1 {
		v = items[0]
	}
	return c.Out.Print(v, table(d, items, footer))
}

func table[T, F, Form any](d Definition[T, F, Form], items []T, footer string) app.Table {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, d.Row(it))
	}
	return app.Table{Headers: d.Headers, Rows: rows, Footer: footer}
}
