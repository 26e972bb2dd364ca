package client

import (
	"time"

	"helpdesk/internal/domain/shared"
)

// Client is a customer company or person serviced by the helpdesk.
type Client struct {
	ID        int64      `json:"id"`
	Name      string     `json:"nome"`
	Email     string     `json:"email"`
	Phone     *string    `json:"telefone,omitempty"`
	Addresses []Address  `json:"enderecos,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// PrimaryAddress returns the first registered address, if any.
func (c Client) PrimaryAddress() (Address, bool) {
	if len(c.Addresses) == 0 {
		return Address{}, false
	}
	return c.Addresses[0], true
}

type Filter struct {
	Name  *string `json:"nome,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"telefone,omitempty"`
	City  *string `json:"cidade,omitempty"`
	State *string `json:"estado,omitempty"`
}

// Form edits a client. Address is only used when creating: the first
// address is registered right after the client itself.
type Form struct {
	Name    string       `json:"nome" validate:"required,max=255"`
	Email   string       `json:"email" validate:"required,email"`
	Phone   *string      `json:"telefone"`
	Address *AddressForm `json:"-" validate:"omitempty"`
}

func FormFrom(c Client) Form {
	return Form{
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
	}
}

type ClientRepository interface {
	shared.Repository[Client, Filter, Form]
}
