package orders

import (
	"strconv"

	"github.com/spf13/cobra"

	"helpdesk/internal/application/editor"
	"helpdesk/internal/application/export"
	"helpdesk/internal/application/filterform"
	"helpdesk/internal/domain/serviceorder"
	"helpdesk/internal/domain/shared"
	pvo "helpdesk/internal/domain/permission/value_objects"
	"helpdesk/internal/interfaces/cli/app"
	"helpdesk/internal/interfaces/cli/entity"
)

var Definition = entity.Definition[serviceorder.ServiceOrder, serviceorder.Filter, serviceorder.Form]{
	Use:      "orders",
	Aliases:  []string{"ordens", "os"},
	Short:    "Service orders",
	Resource: pvo.ResourceServiceOrder,
	Fields:   filterform.ServiceOrderFields(),
	Headers:  []string{"ID", "Cliente", "Técnico", "Chamado", "Status", "Atendimento", "Abertura"},
	Row: func(o serviceorder.ServiceOrder) []string {
		clientName := strconv.FormatInt(o.ClientID, 10)
		if o.Client != nil {
			clientName = o.Client.Name
		}
		technician := "-"
		switch {
		case o.Technician != nil:
			technician = o.Technician.FullName
		case o.TechnicianID != nil:
			technician = strconv.FormatInt(*o.TechnicianID, 10)
		}
		ticketRef := "-"
		if o.TicketID != nil {
			ticketRef = "#" + strconv.FormatInt(*o.TicketID, 10)
		}
		opened := "-"
		if o.OpenedAt != nil {
			opened = *o.OpenedAt
		}
		return []string{
			strconv.FormatInt(o.ID, 10),
			clientName,
			technician,
			ticketRef,
			app.Label(o.Status),
			app.Label(o.Mode),
			opened,
		}
	},
	Store: func(c *app.Container) shared.Repository[serviceorder.ServiceOrder, serviceorder.Filter, serviceorder.Form] {
		return c.API.ServiceOrders
	},
	Spec: func(c *app.Container) editor.Spec[serviceorder.ServiceOrder, serviceorder.Form] {
		return editor.ServiceOrderSpec()
	},
}

func NewCommand(opts *app.Options) *cobra.Command {
	return entity.NewCommand(opts, Definition,
		entity.NewPDFCommand(opts, pvo.ResourceServiceOrder, "ordem-de-servico", func(c *app.Container) export.Downloader {
			return c.API.ServiceOrders.PDF
		}),
	)
}
