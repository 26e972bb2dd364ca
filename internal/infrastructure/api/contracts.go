package api

import (
	"context"

	"helpdesk/internal/domain/contract"
	"helpdesk/internal/domain/serviceorder"
)

type ContractsAPI struct {
	*Resource[contract.Contract, contract.Filter, contract.Form]
}

var _ contract.ContractRepository = (*ContractsAPI)(nil)

func NewContractsAPI(client *Client) *ContractsAPI {
	return &ContractsAPI{
		Resource: NewResource[contract.Contract, contract.Filter, contract.Form](client, "/contratos", FilterBody),
	}
}

// PDF downloads the contract document.
func (a *ContractsAPI) PDF(ctx context.Context, contractID int64) ([]byte, error) {
	return a.pdf(ctx, contractID)
}

type ServiceOrdersAPI struct {
	*Resource[serviceorder.ServiceOrder, serviceorder.Filter, serviceorder.Form]
}

var _ serviceorder.ServiceOrderRepository = (*ServiceOrdersAPI)(nil)

func NewServiceOrdersAPI(client *Client) *ServiceOrdersAPI {
	return &ServiceOrdersAPI{
		Resource: NewResource[serviceorder.ServiceOrder, serviceorder.Filter, serviceorder.Form](client, "/ordem-de-servicos", FilterBody),
	}
}

// PDF downloads the service order report.
func (a *ServiceOrdersAPI) PDF(ctx context.Context, orderID int64) ([]byte, error) {
	return a.pdf(ctx, orderID)
}
