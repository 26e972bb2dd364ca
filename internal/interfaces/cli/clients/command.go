package clients

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"helpdesk/internal/application/editor"
	"helpdesk/internal/application/filterform"
	"helpdesk/internal/domain/client"
	"helpdesk/internal/domain/shared"
	pvo "helpdesk/internal/domain/permission/value_objects"
	"helpdesk/internal/interfaces/cli/app"
	"helpdesk/internal/interfaces/cli/entity"
)

const (
	flagPostalCode = "cep"
	flagAddress    = "address"
)

var Definition = entity.Definition[client.Client, client.Filter, client.Form]{
	Use:      "clients",
	Aliases:  []string{"clientes", "client"},
	Short:    "Customers and their addresses",
	Resource: pvo.ResourceClient,
	Fields:   filterform.ClientFields(),
	Headers:  []string{"ID", "Nome", "E-mail", "Telefone", "Cidade/UF"},
	Row: func(cl client.Client) []string {
		phone := "-"
		if cl.Phone != nil {
			phone = *cl.Phone
		}
		place := "-"
		if addr, ok := cl.PrimaryAddress(); ok {
			place = addr.City + "/" + addr.State
		}
		return []string{strconv.FormatInt(cl.ID, 10), cl.Name, cl.Email, phone, place}
	},
	Store: func(c *app.Container) shared.Repository[client.Client, client.Filter, client.Form] {
		return c.API.Clients
	},
	Spec: func(c *app.Container) editor.Spec[client.Client, client.Form] {
		return editor.ClientSpec(c.API.Addresses)
	},
	Flags: func(cmd *cobra.Command) {
		cmd.Flags().String(flagPostalCode, "", "Fill the address from a postal code (CEP)")
		cmd.Flags().StringArray(flagAddress, nil, "Address field as key=value: rua, numero, bairro, cidade, estado, cep")
	},
	Prepare: prepareAddress,
}

// prepareAddress applies the postal-code lookup first so explicit --address
// values can still override what it filled.
func prepareAddress(ctx context.Context, c *app.Container, cmd *cobra.Command, form *client.Form) error {
	code, _ := cmd.Flags().GetString(flagPostalCode)
	pairs, _ := cmd.Flags().GetStringArray(flagAddress)

	if code != "" {
		if err := editor.LookupPostalCode(ctx, c.API.Addresses, form, code); err != nil {
			return err
		}
	}
	if len(pairs) > 0 {
		if form.Address == nil {
			form.Address = &client.AddressForm{}
		}
		if err := app.Assign(form.Address, pairs); err != nil {
			return err
		}
	}
	return nil
}

func NewCommand(opts *app.Options) *cobra.Command {
	return entity.NewCommand(opts, Definition, newPostalCodeCommand(opts))
}

func newPostalCodeCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "cep CODE",
		Short: "Look up the address of a postal code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd, opts, func(ctx context.Context, c *app.Container) error {
				if err := c.Require(pvo.ResourceAddress, pvo.ActionRead); err != nil {
					return err
				}
				var form client.Form
				if err := editor.LookupPostalCode(ctx, c.API.Addresses, &form, args[0]); err != nil {
					return err
				}
				a := form.Address
				neighborhood := "-"
				if a.Neighborhood != nil {
					neighborhood = *a.Neighborhood
				}
				return c.Out.Print(a, app.Table{
					Headers: []string{"CEP", "Rua", "Bairro", "Cidade", "UF"},
					Rows:    [][]string{{*a.PostalCode, a.Street, neighborhood, a.City, a.State}},
				})
			})
		},
	}
}
