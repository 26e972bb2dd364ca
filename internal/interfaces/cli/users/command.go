package users

import (
	"strconv"

	"github.com/spf13/cobra"

	"helpdesk/internal/application/editor"
	"helpdesk/internal/application/filterform"
	pvo "helpdesk/internal/domain/permission/value_objects"
	"helpdesk/internal/domain/shared"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/interfaces/cli/app"
	"helpdesk/internal/interfaces/cli/entity"
	"helpdesk/internal/shared/biztime"
)

var Definition = entity.Definition[user.User, user.Filter, user.Form]{
	Use:      "users",
	Aliases:  []string{"usuarios", "user"},
	Short:    "User accounts",
	Resource: pvo.ResourceUser,
	Fields:   filterform.UserFields(),
	Headers:  []string{"ID", "Nome", "E-mail", "Tipo", "Criado em"},
	Row: func(u user.User) []string {
		created := "-"
		if u.CreatedAt != nil {
			created = biztime.FormatDate(*u.CreatedAt)
		}
		return []string{strconv.FormatInt(u.ID, 10), u.FullName, u.Email, app.Label(u.Role), created}
	},
	Store: func(c *app.Container) shared.Repository[user.User, user.Filter, user.Form] {
		return c.API.Users
	},
	Spec: func(c *app.Container) editor.Spec[user.User, user.Form] {
		return editor.UserSpec()
	},
}

func NewCommand(opts *app.Options) *cobra.Command {
	return entity.NewCommand(opts, Definition)
}
