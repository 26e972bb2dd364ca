package serviceorder

import (
	"context"

	"helpdesk/internal/domain/contract"
	"helpdesk/internal/domain/shared"
	vo "helpdesk/internal/domain/serviceorder/valueobjects"
)

type TechnicianRef struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

type TicketRef struct {
	ID    int64  `json:"id"`
	Title string `json:"titulo"`
}

// ServiceOrder records the field or remote work done for a client.
type ServiceOrder struct {
	ID                int64               `json:"id"`
	TicketID          *int64              `json:"chamadoId,omitempty"`
	ClientID          int64               `json:"clienteId"`
	TechnicianID      *int64              `json:"tecnicoId,omitempty"`
	Problem           string              `json:"descricaoProblema"`
	Solution          *string             `json:"descricaoSolucao,omitempty"`
	Status            vo.OrderStatus      `json:"status"`
	Mode              vo.ServiceMode      `json:"tipoAtendimento"`
	OpenedAt          *string             `json:"dataAbertura,omitempty"`
	ClosedAt          *string             `json:"dataFechamento,omitempty"`
	HoursSpent        *float64            `json:"tempoGastoHoras,omitempty"`
	Price             *float64            `json:"valorServico,omitempty"`
	Materials         *string             `json:"materiaisUtilizados,omitempty"`
	TechnicianNotes   *string             `json:"observacoesTecnico,omitempty"`
	CustomerSignature *string             `json:"assinaturaCliente,omitempty"`
	Rating            *int                `json:"avaliacaoCliente,omitempty"`
	Client            *contract.ClientRef `json:"cliente,omitempty"`
	Technician        *TechnicianRef      `json:"tecnico,omitempty"`
	Ticket            *TicketRef          `json:"chamado,omitempty"`
}

type Filter struct {
	ClientID     *int64          `json:"clienteId,omitempty"`
	TechnicianID *int64          `json:"tecnicoId,omitempty"`
	TicketID     *int64          `json:"chamadoId,omitempty"`
	Status       *vo.OrderStatus `json:"status,omitempty"`
	Mode         *vo.ServiceMode `json:"tipoAtendimento,omitempty"`
	From         *string         `json:"dataInicio,omitempty"`
	To           *string         `json:"dataFim,omitempty"`
}

type Form struct {
	TicketID        *int64         `json:"chamadoId"`
	ClientID        int64          `json:"clienteId" validate:"required,gt=0"`
	TechnicianID    *int64         `json:"tecnicoId"`
	Problem         string         `json:"descricaoProblema" validate:"required"`
	Solution        *string        `json:"descricaoSolucao"`
	Status          vo.OrderStatus `json:"status" validate:"required,oneof=aberta em_andamento finalizada cancelada"`
	Mode            vo.ServiceMode `json:"tipoAtendimento" validate:"required,oneof=presencial remoto"`
	ClosedAt        *string        `json:"dataFechamento" validate:"omitempty,datetime=2006-01-02"`
	HoursSpent      *float64       `json:"tempoGastoHoras" validate:"omitempty,gte=0"`
	Price           *float64       `json:"valorServico" validate:"omitempty,gte=0"`
	Materials       *string        `json:"materiaisUtilizados"`
	TechnicianNotes *string        `json:"observacoesTecnico"`
	Rating          *int           `json:"avaliacaoCliente" validate:"omitempty,min=1,max=5"`
}

func NewForm() Form {
	return Form{
		Status: vo.StatusOpen,
		Mode:   vo.ModeRemote,
	}
}

func FormFrom(o ServiceOrder) Form {
	return Form{
		TicketID:        o.TicketID,
		ClientID:        o.ClientID,
		TechnicianID:    o.TechnicianID,
		Problem:         o.Problem,
		Solution:        o.Solution,
		Status:          o.Status,
		Mode:            o.Mode,
		ClosedAt:        o.ClosedAt,
		HoursSpent:      o.HoursSpent,
		Price:           o.Price,
		Materials:       o.Materials,
		TechnicianNotes: o.TechnicianNotes,
		Rating:          o.Rating,
	}
}

type ServiceOrderRepository interface {
	shared.Repository[ServiceOrder, Filter, Form]
	PDF(ctx context.Context, orderID int64) ([]byte, error)
}
