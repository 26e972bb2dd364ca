package editor

import (
	"context"
	"fmt"
	"reflect"

	"helpdesk/internal/domain/client"
	"helpdesk/internal/domain/contract"
	"helpdesk/internal/domain/serviceorder"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/errors"
)

func TicketSpec() Spec[ticket.Ticket, ticket.Form] {
	return Spec[ticket.Ticket, ticket.Form]{
		Name:     "ticket",
		NewForm:  ticket.NewForm,
		FormFrom: ticket.FormFrom,
		IDOf:     func(t ticket.Ticket) int64 { return t.ID },
	}
}

func ContractSpec() Spec[contract.Contract, contract.Form] {
	return Spec[contract.Contract, contract.Form]{
		Name:     "contract",
		NewForm:  contract.NewForm,
		FormFrom: contract.FormFrom,
		IDOf:     func(c contract.Contract) int64 { return c.ID },
	}
}

func ServiceOrderSpec() Spec[serviceorder.ServiceOrder, serviceorder.Form] {
	return Spec[serviceorder.ServiceOrder, serviceorder.Form]{
		Name:     "service_order",
		NewForm:  serviceorder.NewForm,
		FormFrom: serviceorder.FormFrom,
		IDOf:     func(o serviceorder.ServiceOrder) int64 { return o.ID },
	}
}

func UserSpec() Spec[user.User, user.Form] {
	return Spec[user.User, user.Form]{
		Name:     "user",
		NewForm:  user.NewForm,
		FormFrom: user.FormFrom,
		IDOf:     func(u user.User) int64 { return u.ID },
	}
}

// ClientSpec edits a client together with its primary address. The
// address is registered after the client is saved: updated in place when
// the client already has one, created otherwise.
func ClientSpec(addresses client.AddressRepository) Spec[client.Client, client.Form] {
	return Spec[client.Client, client.Form]{
		Name:     "client",
		NewForm:  func() client.Form { return client.Form{} },
		FormFrom: clientFormFrom,
		IDOf:     func(c client.Client) int64 { return c.ID },
		Hooks: Hooks[client.Client, client.Form]{
			AfterSave: func(ctx context.Context, saved client.Client, form client.Form, existing *client.Client) error {
				return saveAddress(ctx, addresses, saved, form, existing)
			},
		},
	}
}

// clientFormFrom also pre-populates the primary address so edits can
// change it.
func clientFormFrom(c client.Client) client.Form {
	form := client.FormFrom(c)
	if addr, ok := c.PrimaryAddress(); ok {
		form.Address = &client.AddressForm{
			Street:       addr.Street,
			Number:       addr.Number,
			Neighborhood: addr.Neighborhood,
			City:         addr.City,
			State:        addr.State,
			PostalCode:   addr.PostalCode,
			ClientID:     c.ID,
		}
	}
	return form
}

func saveAddress(ctx context.Context, addresses client.AddressRepository, saved client.Client, form client.Form, existing *client.Client) error {
	if form.Address == nil {
		return nil
	}

	addr := *form.Address
	addr.ClientID = saved.ID

	if existing != nil {
		if before := clientFormFrom(*existing).Address; before != nil && reflect.DeepEqual(*before, addr) {
			return nil
		}
		if primary, ok := existing.PrimaryAddress(); ok {
			if _, err := addresses.Update(ctx, primary.ID, addr); err != nil {
				return fmt.Errorf("failed to update address: %w", err)
			}
			return nil
		}
	}

	if _, err := addresses.Create(ctx, addr); err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}

// LookupPostalCode resolves a postal code and fills the address part of a
// client form, creating it when absent.
func LookupPostalCode(ctx context.Context, addresses client.AddressRepository, form *client.Form, code string) error {
	digits, ok := client.NormalizePostalCode(code)
	if !ok {
		appErr := errors.NewValidationError("CEP inválido")
		appErr.Fields = []errors.FieldError{{Field: "cep", Message: "CEP deve ter 8 dígitos"}}
		return appErr
	}

	info, err := addresses.LookupPostalCode(ctx, digits)
	if err != nil {
		return fmt.Errorf("failed to look up postal code: %w", err)
	}

	if form.Address == nil {
		form.Address = &client.AddressForm{}
	}
	form.Address.PostalCode = &digits
	form.Address.Fill(info)
	return nil
}
