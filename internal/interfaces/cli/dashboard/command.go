package dashboard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	appdashboard "helpdesk/internal/application/dashboard"
	pvo "helpdesk/internal/domain/permission/value_objects"
	"helpdesk/internal/interfaces/cli/app"
)

func NewCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"painel"},
		Short:   "Ticket totals by status, priority and day",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(pvo.ResourceDashboard, pvo.ActionRead); err != nil {
					return err
				}
				report, err := c.Dashboard.Report(ctx)
				if err != nil {
					return err
				}
				return c.Out.Print(report, Table(report))
			})
		},
	}
}

// Table flattens the report into one section per grouping.
func Table(r appdashboard.Report) app.Table {
	var rows [][]string
	section := func(name string, counts []appdashboard.Count, label func(string) string) {
		for _, ct := range counts {
			rows = append(rows, []string{name, label(ct.Key), strconv.FormatInt(ct.Total, 10)})
		}
	}
	section("Status", r.ByStatus, app.Label[string])
	section("Prioridade", r.ByPriority, app.Label[string])
	section("Últimos 7 dias", r.LastSevenDays, func(day string) string { return day })

	footer := fmt.Sprintf("Total: %d chamado(s)", r.Total)
	if r.MeanResolutionHours != nil {
		footer += fmt.Sprintf(" · tempo médio de resolução %.1f h", *r.MeanResolutionHours)
	}
	return app.Table{Headers: []string{"Grupo", "Chave", "Total"}, Rows: rows, Footer: footer}
}
