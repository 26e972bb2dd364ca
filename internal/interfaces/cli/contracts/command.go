package contracts

import (
	"strconv"

	"github.com/spf13/cobra"

	"helpdesk/internal/application/editor"
	"helpdesk/internal/application/export"
	"helpdesk/internal/application/filterform"
	"helpdesk/internal/domain/contract"
	"helpdesk/internal/domain/shared"
	pvo "helpdesk/internal/domain/permission/value_objects"
	"helpdesk/internal/interfaces/cli/app"
	"helpdesk/internal/interfaces/cli/entity"
)

var Definition = entity.Definition[contract.Contract, contract.Filter, contract.Form]{
	Use:      "contracts",
	Aliases:  []string{"contratos", "contract"},
	Short:    "Service contracts",
	Resource: pvo.ResourceContract,
	Fields:   filterform.ContractFields(),
	Headers:  []string{"ID", "Número", "Cliente", "Início", "Fim", "Valor", "Ativo"},
	Row: func(ct contract.Contract) []string {
		clientName := strconv.FormatInt(ct.ClientID, 10)
		if ct.Client != nil {
			clientName = ct.Client.Name
		}
		end := "-"
		if ct.EndDate != nil {
			end = *ct.EndDate
		}
		active := "Não"
		if ct.Active {
			active = "Sim"
		}
		return []string{
			strconv.FormatInt(ct.ID, 10),
			ct.Number,
			clientName,
			ct.StartDate,
			end,
			strconv.FormatFloat(ct.TotalValue, 'f', 2, 64),
			active,
		}
	},
	Store: func(c *app.Container) shared.Repository[contract.Contract, contract.Filter, contract.Form] {
		return c.API.Contracts
	},
	Spec: func(c *app.Container) editor.Spec[contract.Contract, contract.Form] {
		return editor.ContractSpec()
	},
}

func NewCommand(opts *app.Options) *cobra.Command {
	return entity.NewCommand(opts, Definition,
		entity.NewPDFCommand(opts, pvo.ResourceContract, "contrato", func(c *app.Container) export.Downloader {
			return c.API.Contracts.PDF
		}),
	)
}
