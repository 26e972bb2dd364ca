package tickets

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"helpdesk/internal/application/thread"
	"helpdesk/internal/domain/ticket"
	pvo "helpdesk/internal/domain/permission/value_objects"
	"helpdesk/internal/interfaces/cli/app"
	"helpdesk/internal/interfaces/cli/entity"
	"helpdesk/internal/interfaces/cli/threadview"
	"helpdesk/internal/shared/biztime"
)

func newThreadCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "thread ID",
		Short: "Follow a ticket conversation live",
		Long:  "Open the comment thread of a ticket, receive new comments as they are posted, reply and resolve.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entity.ParseID(args[0])
			if err != nil {
				return err
			}
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(pvo.ResourceComment, pvo.ActionRead); err != nil {
					return err
				}
				th := c.Thread(c.Feed(ctx))
				if err := th.Open(ctx, id); err != nil {
					return err
				}
				defer th.Close()

				var viewerID int64
				if u := c.Session.Current(); u != nil {
					viewerID = u.ID
				}
				m := threadview.New(ctx, &gated{Thread: th, c: c}, viewerID, c.Markdown.PlainText)
				return threadview.Run(ctx, m)
			})
		},
	}
}

// gated checks permissions before the view posts or resolves.
type gated struct {
	*thread.Thread
	c *app.Container
}

func (g *gated) Submit(ctx context.Context, text string) error {
	if err := g.c.Require(pvo.ResourceComment, pvo.ActionComment); err != nil {
		return err
	}
	return g.Thread.Submit(ctx, text)
}

func (g *gated) Resolve(ctx context.Context) error {
	if err := g.c.Require(pvo.ResourceTicket, pvo.ActionResolve); err != nil {
		return err
	}
	return g.Thread.Resolve(ctx)
}

func newCommentsCommand(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "comments",
		Aliases: []string{"comentarios"},
		Short:   "Read, edit and delete ticket comments",
	}
	cmd.AddCommand(
		newCommentsListCommand(opts),
		newCommentsEditCommand(opts),
		newCommentsDeleteCommand(opts),
	)
	return cmd
}

var commentHeaders = []string{"ID", "Autor", "Data", "Comentário"}

func commentRows(c *app.Container, comments []ticket.Comment) [][]string {
	rows := make([][]string, 0, len(comments))
	for _, cm := range comments {
		text := c.Markdown.PlainText(cm.Text)
		if thread.Classify(cm, 0) == thread.ClassSystem {
			text = "[chamado resolvido]"
		}
		rows = append(rows, []string{
			strconv.FormatInt(cm.ID, 10),
			cm.AuthorName(),
			biztime.FormatDateTime(cm.CreatedAt),
			text,
		})
	}
	return rows
}

func newCommentsListCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list TICKET_ID",
		Short: "Print the comment thread of a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entity.ParseID(args[0])
			if err != nil {
				return err
			}
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(pvo.ResourceComment, pvo.ActionRead); err != nil {
					return err
				}
				th := c.Thread(nil)
				if err := th.Open(ctx, id); err != nil {
					return err
				}
				defer th.Close()

				st := th.State()
				footer := "Em aberto"
				if st.Resolved && st.ResolvedAt != nil {
					footer = "Resolvido em " + biztime.FormatDateTime(*st.ResolvedAt)
				}
				return c.Out.Print(st, app.Table{
					Headers: commentHeaders,
					Rows:    commentRows(c, st.Comments),
					Footer:  footer,
				})
			})
		},
	}
}

func newCommentsEditCommand(opts *app.Options) *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "edit COMMENT_ID",
		Short: "Change the text of a comment",
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
				if err := c.Thread(nil).Edit(ctx, id, text); err != nil {
					return err
				}
				c.Out.Message("Comentário %d atualizado", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&text, "text", "t", "", "New comment text")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newCommentsDeleteCommand(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete COMMENT_ID",
		Short: "Delete a comment after confirmation",
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
				if !c.Prompt.Confirm("Excluir este comentário?") {
					c.Out.Message("Exclusão cancelada")
					return nil
				}
				if err := c.Thread(nil).Remove(ctx, id); err != nil {
					return err
				}
				c.Out.Message("Comentário %d excluído", id)
				return nil
			})
		},
	}
	entity.AddYesFlag(cmd)
	return cmd
}
