package ticket

import (
	"time"

	vo "helpdesk/internal/domain/ticket/valueobjects"
)

// Ticket is a support request as the API returns it.
type Ticket struct {
	ID           int64           `json:"id"`
	Title        string          `json:"titulo"`
	Description  string          `json:"descricao"`
	Status       vo.TicketStatus `json:"status"`
	Priority     vo.Priority     `json:"prioridade"`
	UserID       int64           `json:"userId"`
	TechnicianID *int64          `json:"tecnicoId,omitempty"`
	CategoryID   *int64          `json:"categoriaId,omitempty"`
	CreatedAt    *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time      `json:"updatedAt,omitempty"`
	ClosedAt     *time.Time      `json:"closedAt,omitempty"`
}

// Filter holds ticket search criteria. Nil fields are left out of the request.
type Filter struct {
	Status       *vo.TicketStatus `json:"status,omitempty"`
	Priority     *vo.Priority     `json:"prioridade,omitempty"`
	CategoryID   *int64           `json:"categoriaId,omitempty"`
	TechnicianID *int64           `json:"tecnicoId,omitempty"`
	UserID       *int64           `json:"userId,omitempty"`
	From         *string          `json:"dataInicio,omitempty"`
	To           *string          `json:"dataFim,omitempty"`
	Search       *string          `json:"search,omitempty"`
}

// Form is the editable part of a ticket sent on create and update.
type Form struct {
	Title        string          `json:"titulo" validate:"required,max=255"`
	Description  string          `json:"descricao" validate:"required"`
	Status       vo.TicketStatus `json:"status" validate:"required,oneof=aberto em_progresso resolvido cancelado"`
	Priority     vo.Priority     `json:"prioridade" validate:"required,oneof=baixa media alta urgente"`
	UserID       int64           `json:"userId" validate:"required,gt=0"`
	TechnicianID *int64          `json:"tecnicoId"`
	CategoryID   *int64          `json:"categoriaId"`
}

// NewForm returns the defaults of a ticket being created.
func NewForm() Form {
	return Form{
		Status:   vo.StatusOpen,
		Priority: vo.PriorityMedium,
	}
}

// FormFrom pre-populates a form with the editable fields of t.
func FormFrom(t Ticket) Form {
	return Form{
		Title:        t.Title,
		Description:  t.Description,
		Status:       t.Status,
		Priority:     t.Priority,
		UserID:       t.UserID,
		TechnicianID: t.TechnicianID,
		CategoryID:   t.CategoryID,
	}
}

// Category groups tickets by subject.
type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nome"`
	Description *string `json:"descricao,omitempty"`
}

type CategoryForm struct {
	Name        string  `json:"nome" validate:"required,max=100"`
	Description *string `json:"descricao"`
}
