package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"helpdesk/internal/domain/client"
)

type ClientsAPI struct {
	*Resource[client.Client, client.Filter, client.Form]
}

var _ client.ClientRepository = (*ClientsAPI)(nil)

func NewClientsAPI(c *Client) *ClientsAPI {
	return &ClientsAPI{
		Resource: NewResource[client.Client, client.Filter, client.Form](c, "/clientes", FilterQuery),
	}
}

type AddressesAPI struct {
	client *Client
}

var _ client.AddressRepository = (*AddressesAPI)(nil)

func NewAddressesAPI(c *Client) *AddressesAPI {
	return &AddressesAPI{client: c}
}

func (a *AddressesAPI) Create(ctx context.Context, form client.AddressForm) (client.Address, error) {
	var out client.Address
	if err := a.client.doRequest(ctx, http.MethodPost, "/enderecos", nil, form, &out); err != nil {
		return out, fmt.Errorf("create address: %w", err)
	}
	return out, nil
}

func (a *AddressesAPI) Update(ctx context.Context, addressID int64, form client.AddressForm) (client.Address, error) {
	var out client.Address
	path := fmt.Sprintf("/enderecos/%d", addressID)
	if err := a.client.doRequest(ctx, http.MethodPut, path, nil, form, &out); err != nil {
		return out, fmt.Errorf("update address %d: %w", addressID, err)
	}
	return out, nil
}

func (a *AddressesAPI) Delete(ctx context.Context, addressID int64) error {
	path := fmt.Sprintf("/enderecos/%d", addressID)
	if err := a.client.doRequest(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete address %d: %w", addressID, err)
	}
	return nil
}

// LookupPostalCode resolves an 8-digit postal code to a street address.
func (a *AddressesAPI) LookupPostalCode(ctx context.Context, code string) (client.PostalCodeInfo, error) {
	var out client.PostalCodeInfo
	digits, ok := client.NormalizePostalCode(code)
	if !ok {
		return out, fmt.Errorf("postal code %q must have 8 digits", code)
	}
	if err := a.client.doRequest(ctx, http.MethodGet, "/enderecos/cep", url.Values{"cep": {digits}}, nil, &out); err != nil {
		return out, fmt.Errorf("lookup postal code %s: %w", digits, err)
	}
	return out, nil
}
