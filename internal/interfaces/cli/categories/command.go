// Package categories manages the ticket categories. The server returns them
// as one unpaginated list.
package categories

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	pvo "helpdesk/internal/domain/permission/value_objects"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/interfaces/cli/app"
	"helpdesk/internal/interfaces/cli/entity"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/utils"
)

var headers = []string{"ID", "Nome", "Descrição"}

func rows(categories []ticket.Category) [][]string {
	out := make([][]string, 0, len(categories))
	for _, cat := range categories {
		desc := "-"
		if cat.Description != nil {
			desc = *cat.Description
		}
		out = append(out, []string{strconv.FormatInt(cat.ID, 10), cat.Name, desc})
	}
	return out
}

func NewCommand(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"categorias"},
		Short:   "Ticket categories",
	}
	cmd.AddCommand(
		newListCommand(opts),
		newCreateCommand(opts),
		newUpdateCommand(opts),
		newDeleteCommand(opts),
	)
	return cmd
}

func newListCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(pvo.ResourceCategory, pvo.ActionRead); err != nil {
					return err
				}
				all, err := c.API.Categories.ListAll(ctx)
				if err != nil {
					return err
				}
				return c.Out.Print(all, app.Table{
					Headers: headers,
					Rows:    rows(all),
					Footer:  fmt.Sprintf("%d categoria(s)", len(all)),
				})
			})
		},
	}
}

func newCreateCommand(opts *app.Options) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category from --set nome=... descricao=...",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(pvo.ResourceCategory, pvo.ActionCreate); err != nil {
					return err
				}
				var form ticket.CategoryForm
				if err := app.Assign(&form, sets); err != nil {
					return err
				}
				if err := utils.ValidateStruct(form); err != nil {
					return err
				}
				created, err := c.API.Categories.Create(ctx, form)
				if err != nil {
					return err
				}
				c.Out.Message("Categoria %d criada", created.ID)
				return c.Out.Data(created)
			})
		},
	}
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "Field as key=value")
	return cmd
}

func newUpdateCommand(opts *app.Options) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entity.ParseID(args[0])
			if err != nil {
				return err
			}
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(pvo.ResourceCategory, pvo.ActionUpdate); err != nil {
					return err
				}
				current, err := find(ctx, c, id)
				if err != nil {
					return err
				}
				form := ticket.CategoryForm{Name: current.Name, Description: current.Description}
				if err := app.Assign(&form, sets); err != nil {
					return err
				}
				if err := utils.ValidateStruct(form); err != nil {
					return err
				}
				updated, err := c.API.Categories.Update(ctx, id, form)
				if err != nil {
					return err
				}
				c.Out.Message("Categoria %d atualizada", updated.ID)
				return c.Out.Data(updated)
			})
		},
	}
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "Field as key=value")
	return cmd
}

func newDeleteCommand(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a category after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entity.ParseID(args[0])
			if err != nil {
				return err
			}
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(pvo.ResourceCategory, pvo.ActionDelete); err != nil {
					return err
				}
				if !c.Prompt.Confirm("Excluir esta categoria?") {
					c.Out.Message("Exclusão cancelada")
					return nil
				}
				if err := c.API.Categories.Delete(ctx, id); err != nil {
					return err
				}
				c.Out.Message("Categoria %d excluída", id)
				return nil
			})
		},
	}
	entity.AddYesFlag(cmd)
	return cmd
}

func find(ctx context.Context, c *app.Container, id int64) (ticket.Category, error) {
	all, err := c.API.Categories.ListAll(ctx)
	if err != nil {
		return ticket.Category{}, err
	}
	for _, cat := range all {
		if cat.ID == id {
			return cat, nil
		}
	}
	return ticket.Category{}, errors.NewNotFoundError(fmt.Sprintf("Categoria %d não encontrada", id))
}
