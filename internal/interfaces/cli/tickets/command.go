package tickets

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"helpdesk/internal/application/editor"
	"helpdesk/internal/application/filterform"
	"helpdesk/internal/domain/shared"
	"helpdesk/internal/domain/ticket"
	pvo "helpdesk/internal/domain/permission/value_objects"
	"helpdesk/internal/interfaces/cli/app"
	"helpdesk/internal/interfaces/cli/entity"
	"helpdesk/internal/shared/biztime"
)

// Definition is the tickets page.
var Definition = entity.Definition[ticket.Ticket, ticket.Filter, ticket.Form]{
	Use:      "tickets",
	Aliases:  []string{"chamados", "ticket"},
	Short:    "Support tickets",
	Resource: pvo.ResourceTicket,
	Fields:   filterform.TicketFields(),
	Headers:  []string{"ID", "Título", "Status", "Prioridade", "Categoria", "Técnico", "Aberto em"},
	Row: func(t ticket.Ticket) []string {
		var opened string
		if t.CreatedAt != nil {
			opened = biztime.FormatDateTime(*t.CreatedAt)
		}
		return []string{
			strconv.FormatInt(t.ID, 10),
			t.Title,
			app.Label(t.Status),
			app.Label(t.Priority),
			optionalID(t.CategoryID),
			optionalID(t.TechnicianID),
			opened,
		}
	},
	Store: func(c *app.Container) shared.Repository[ticket.Ticket, ticket.Filter, ticket.Form] {
		return c.API.Tickets
	},
	Spec: func(c *app.Container) editor.Spec[ticket.Ticket, ticket.Form] {
		return editor.TicketSpec()
	},
}

func NewCommand(opts *app.Options) *cobra.Command {
	return entity.NewCommand(opts, Definition,
		newResolveCommand(opts),
		newCommentCommand(opts),
		newCommentsCommand(opts),
		newThreadCommand(opts),
	)
}

func optionalID(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}

func newResolveCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve ID",
		Short: "Mark a ticket resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entity.ParseID(args[0])
			if err != nil {
				return err
			}
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(pvo.ResourceTicket, pvo.ActionResolve); err != nil {
					return err
				}
				th := c.Thread(nil)
				if err := th.Open(ctx, id); err != nil {
					return err
				}
				defer th.Close()

				if th.State().Resolved {
					c.Out.Message("Chamado %d já está resolvido", id)
					return nil
				}
				if err := th.Resolve(ctx); err != nil {
					return err
				}
				st := th.State()
				c.Out.Message("Chamado %d resolvido em %s", id, biztime.FormatDateTime(*st.ResolvedAt))
				return c.Out.Data(st)
			})
		},
	}
}

func newCommentCommand(opts *app.Options) *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "comment ID",
		Short: "Post a comment on a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entity.ParseID(args[0])
			if err != nil {
				return err
			}
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(pvo.ResourceComment, pvo.ActionComment); err != nil {
					return err
				}
				th := c.Thread(nil)
				if err := th.Open(ctx, id); err != nil {
					return err
				}
				defer th.Close()

				if err := th.Submit(ctx, text); err != nil {
					return err
				}
				c.Out.Message("Comentário enviado")
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&text, "text", "t", "", "Comment text")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}
