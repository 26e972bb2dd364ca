package contract

import (
	"context"

	"helpdesk/internal/domain/shared"
)

// ClientRef is the client summary embedded in contract and order payloads.
type ClientRef struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

// Contract is a service agreement with a client. Dates travel as YYYY-MM-DD.
type Contract struct {
	ID         int64      `json:"id"`
	ClientID   int64      `json:"clienteId"`
	Number     string     `json:"numeroContrato"`
	StartDate  string     `json:"dataInicio"`
	EndDate    *string    `json:"dataFim,omitempty"`
	TotalValue float64    `json:"valorTotal"`
	Active     bool       `json:"ativo"`
	Client     *ClientRef `json:"cliente,omitempty"`
}

type Filter struct {
	Number     *string `json:"numeroContrato,omitempty"`
	ClientName *string `json:"clienteNome,omitempty"`
	ClientID   *int64  `json:"clienteId,omitempty"`
	Active     *bool   `json:"ativo,omitempty"`
}

type Form struct {
	ClientID   int64   `json:"clienteId" validate:"required,gt=0"`
	Number     string  `json:"numeroContrato" validate:"required,max=50"`
	StartDate  string  `json:"dataInicio" validate:"required,datetime=2006-01-02"`
	EndDate    *string `json:"dataFim" validate:"omitempty,datetime=2006-01-02"`
	TotalValue float64 `json:"valorTotal" validate:"gte=0"`
	Active     bool    `json:"ativo"`
}

func NewForm() Form {
	return Form{Active: true}
}

func FormFrom(c Contract) Form {
	return Form{
		ClientID:   c.ClientID,
		Number:     c.Number,
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
		TotalValue: c.TotalValue,
		Active:     c.Active,
	}
}

type ContractRepository interface {
	shared.Repository[Contract, Filter, Form]
	PDF(ctx context.Context, contractID int64) ([]byte, error)
}
