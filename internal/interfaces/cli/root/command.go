// Package root assembles the helpdesk command tree.
package root

import (
	"github.com/spf13/cobra"

	"helpdesk/internal/interfaces/cli/app"
	"helpdesk/internal/interfaces/cli/auth"
	"helpdesk/internal/interfaces/cli/categories"
	"helpdesk/internal/interfaces/cli/clients"
	"helpdesk/internal/interfaces/cli/contracts"
	"helpdesk/internal/interfaces/cli/dashboard"
	mailcmd "helpdesk/internal/interfaces/cli/mail"
	"helpdesk/internal/interfaces/cli/migrate"
	"helpdesk/internal/interfaces/cli/orders"
	"helpdesk/internal/interfaces/cli/tickets"
	"helpdesk/internal/interfaces/cli/users"
)

func NewCommand() *cobra.Command {
	opts := &app.Options{}
	cmd := &cobra.Command{
		Use:   "helpdesk",
		Short: "Helpdesk - support tickets from the terminal",
		Long: `Helpdesk is the operator console of the support API: sign in, browse and filter
tickets, clients, contracts and service orders, follow ticket conversations live
and send email.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts.BindFlags(cmd)

	cmd.AddCommand(auth.NewCommands(opts)...)
	cmd.AddCommand(
		tickets.NewCommand(opts),
		categories.NewCommand(opts),
		clients.NewCommand(opts),
		contracts.NewCommand(opts),
		orders.NewCommand(opts),
		users.NewCommand(opts),
		mailcmd.NewCommand(opts),
		dashboard.NewCommand(opts),
		migrate.NewCommand(opts),
	)
	return cmd
}
