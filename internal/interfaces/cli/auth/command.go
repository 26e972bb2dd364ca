// Package auth signs the console in and out.
package auth

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"helpdesk/internal/domain/user"
	"helpdesk/internal/interfaces/cli/app"
	"helpdesk/internal/shared/constants"
	"helpdesk/internal/shared/errors"
)

func NewCommands(opts *app.Options) []*cobra.Command {
	return []*cobra.Command{
		newLoginCommand(opts),
		newLogoutCommand(opts),
		newWhoamiCommand(opts),
	}
}

func newLoginCommand(opts *app.Options) *cobra.Command {
	var creds user.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if creds.Email == "" {
					email, err := c.Prompt.Line("E-mail")
					if err != nil {
						return err
					}
					creds.Email = email
				}
				password, err := c.Prompt.Password("Senha")
				if err != nil {
					return err
				}
				creds.Password = password

				u, err := c.Session.Login(ctx, creds)
				if err != nil {
					return err
				}
				c.Out.Message("Bem-vindo, %s", u.FullName)
				return c.Out.Data(u)
			})
		},
	}
	cmd.Flags().StringVarP(&creds.Email, "email", "e", "", "Account e-mail (prompted when empty)")
	cmd.Flags().StringVar(&creds.RecaptchaToken, "recaptcha-token", "", "Challenge token, when the server requires one")
	return cmd
}

func newLogoutCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Session.Logout(ctx); err != nil {
					return err
				}
				c.Out.Message("Sessão encerrada")
				return nil
			})
		},
	}
}

func newWhoamiCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				u := c.Session.Current()
				if u == nil {
					return errors.NewUnauthorizedError(constants.ErrMsgNotSignedIn)
				}
				return c.Out.Print(u, app.Table{
					Headers: []string{"ID", "Nome", "E-mail", "Tipo"},
					Rows:    [][]string{{strconv.FormatInt(u.ID, 10), u.FullName, u.Email, app.Label(u.Role)}},
				})
			})
		},
	}
}
