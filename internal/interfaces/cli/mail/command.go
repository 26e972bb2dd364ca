// Package mail sends operator email and browses the dispatch log.
package mail

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"helpdesk/internal/application/dispatch"
	"helpdesk/internal/domain/mail"
	pvo "helpdesk/internal/domain/permission/value_objects"
	"helpdesk/internal/interfaces/cli/app"
	"helpdesk/internal/interfaces/cli/entity"
	"helpdesk/internal/shared/utils"
)

func NewCommand(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mail",
		Aliases: []string{"email"},
		Short:   "Send email and read the dispatch log",
	}
	cmd.AddCommand(
		newSendCommand(opts),
		newBulkCommand(opts),
		newLogsCommand(opts),
	)
	return cmd
}

func resultRows(results []mail.Result) [][]string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		logID := "-"
		if r.LogID != nil {
			logID = strconv.FormatInt(*r.LogID, 10)
		}
		rows = append(rows, []string{app.Label(r.Status), r.Message, logID})
	}
	return rows
}

var resultHeaders = []string{"Status", "Mensagem", "Registro"}

func newSendCommand(opts *app.Options) *cobra.Command {
	var (
		msg      mail.Message
		bodyFile string
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one email; the body is Markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(pvo.ResourceMail, pvo.ActionSend); err != nil {
					return err
				}
				if bodyFile != "" {
					data, err := afero.ReadFile(c.Fs, bodyFile)
					if err != nil {
						return fmt.Errorf("failed to read body file: %w", err)
					}
					msg.Body = string(data)
				}
				result, err := c.Dispatch.Send(ctx, msg)
				if err != nil {
					return err
				}
				return c.Out.Print(result, app.Table{Headers: resultHeaders, Rows: resultRows([]mail.Result{result})})
			})
		},
	}
	cmd.Flags().StringVar(&msg.To, "to", "", "Recipient address")
	cmd.Flags().StringVar(&msg.Subject, "subject", "", "Subject line")
	cmd.Flags().StringVar(&msg.Body, "body", "", "Markdown body")
	cmd.Flags().StringVar(&bodyFile, "body-file", "", "Read the Markdown body from a file")
	cmd.MarkFlagsMutuallyExclusive("body", "body-file")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newBulkCommand(opts *app.Options) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Send one email to many recipients from a YAML file",
		Long: `Send the same message to every recipient listed in a YAML file:

  subject: Manutenção programada
  to: [ana@example.com, joao@example.com]
  body: |
    **Sábado** das 8h às 12h.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(pvo.ResourceMail, pvo.ActionSend); err != nil {
					return err
				}
				data, err := afero.ReadFile(c.Fs, file)
				if err != nil {
					return fmt.Errorf("failed to read batch file: %w", err)
				}
				batch, err := dispatch.ParseBatch(data)
				if err != nil {
					return err
				}
				if !c.Prompt.Confirm(fmt.Sprintf("Enviar para %d destinatário(s)?", len(batch.To))) {
					c.Out.Message("Envio cancelado")
					return nil
				}
				results, err := c.Dispatch.SendBatch(ctx, batch)
				if err != nil {
					return err
				}
				return c.Out.Print(results, app.Table{
					Headers: resultHeaders,
					Rows:    resultRows(results),
					Footer:  fmt.Sprintf("%d envio(s)", len(results)),
				})
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Batch file")
	_ = cmd.MarkFlagRequired("file")
	entity.AddYesFlag(cmd)
	return cmd
}

var logHeaders = []string{"ID", "Destinatário", "Assunto", "Status", "Enviado em"}

func logRows(logs []mail.Log) [][]string {
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []string{strconv.FormatInt(l.ID, 10), l.Recipient, l.Subject, app.Label(l.Status), l.SentAt})
	}
	return rows
}

func newLogsCommand(opts *app.Options) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Browse the dispatch log",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(pvo.ResourceMail, pvo.ActionRead); err != nil {
					return err
				}
				p := utils.ValidatePagination(page, c.PageSize())
				result, err := c.Dispatch.Logs(ctx, p.Page, p.PageSize)
				if err != nil {
					return err
				}
				footer := fmt.Sprintf("Página %d de %d · %d registro(s)",
					result.Meta.CurrentPage, max(result.Meta.LastPage, 1), result.Meta.Total)
				return c.Out.Print(result, app.Table{Headers: logHeaders, Rows: logRows(result.Items), Footer: footer})
			})
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page to show")
	cmd.AddCommand(newLogShowCommand(opts), newLogDeleteCommand(opts))
	return cmd
}

func newLogShowCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one dispatch record with its body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entity.ParseID(args[0])
			if err != nil {
				return err
			}
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(pvo.ResourceMail, pvo.ActionRead); err != nil {
					return err
				}
				entry, err := c.Dispatch.Log(ctx, id)
				if err != nil {
					return err
				}
				footer := c.Markdown.PlainText(entry.Body)
				if entry.Error != nil {
					footer = "Erro: " + *entry.Error + "\n" + footer
				}
				return c.Out.Print(entry, app.Table{Headers: logHeaders, Rows: logRows([]mail.Log{entry}), Footer: footer})
			})
		},
	}
}

func newLogDeleteCommand(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a dispatch record after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entity.ParseID(args[0])
			if err != nil {
				return err
			}
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(pvo.ResourceMail, pvo.ActionDelete); err != nil {
					return err
				}
				if !c.Prompt.Confirm("Excluir este registro de envio?") {
					c.Out.Message("Exclusão cancelada")
					return nil
				}
				if err := c.Dispatch.DeleteLog(ctx, id); err != nil {
					return err
				}
				c.Out.Message("Registro %d excluído", id)
				return nil
			})
		},
	}
	entity.AddYesFlag(cmd)
	return cmd
}
