package client

import (
	"context"
	"regexp"
	"strings"
)

type Address struct {
	ID           int64   `json:"id"`
	Street       string  `json:"rua"`
	Number       string  `json:"numero"`
	Neighborhood *string `json:"bairro,omitempty"`
	City         string  `json:"cidade"`
	State        string  `json:"estado"`
	PostalCode   *string `json:"cep,omitempty"`
	ClientID     int64   `json:"cliente_id"`
}

type AddressForm struct {
	Street       string  `json:"rua" validate:"required"`
	Number       string  `json:"numero" validate:"required"`
	Neighborhood *string `json:"bairro"`
	City         string  `json:"cidade" validate:"required"`
	State        string  `json:"estado" validate:"required,len=2"`
	PostalCode   *string `json:"cep" validate:"omitempty,numeric,len=8"`
	ClientID     int64   `json:"cliente_id"`
}

// PostalCodeInfo is what a postal-code lookup resolves to.
type PostalCodeInfo struct {
	Street       string `json:"rua"`
	Neighborhood string `json:"bairro"`
	City         string `json:"cidade"`
	State        string `json:"estado"`
}

// Fill copies the looked-up location into the form, keeping number and postal code.
func (f *AddressForm) Fill(info PostalCodeInfo) {
	f.Street = info.Street
	if info.Neighborhood != "" {
		n := info.Neighborhood
		f.Neighborhood = &n
	}
	f.City = info.City
	f.State = info.State
}

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePostalCode strips everything but digits. A valid code has 8 digits.
func NormalizePostalCode(code string) (string, bool) {
	digits := nonDigits.ReplaceAllString(strings.TrimSpace(code), "")
	return digits, len(digits) == 8
}

type AddressRepository interface {
	Create(ctx context.Context, form AddressForm) (Address, error)
	Update(ctx context.Context, addressID int64, form AddressForm) (Address, error)
	Delete(ctx context.Context, addressID int64) error
	LookupPostalCode(ctx context.Context, code string) (PostalCodeInfo, error)
}
