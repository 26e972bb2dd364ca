package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/client"
	"helpdesk/internal/domain/contract"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/domain/user"
	uvo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/testutil/fakeapi"
)

func newFakeAPI(t *testing.T) (*fakeapi.Server, *API) {
	t.Helper()
	srv := fakeapi.New(t)
	tech := srv.AddUser("Ana Técnica", "ana@example.com", "segredo", uvo.RoleTechnician)
	return srv, New(NewClient(srv.URL, WithCredentials(StaticToken(srv.Token(tech)))))
}

func TestFakeAPI_ClientsSecondPage(t *testing.T) {
	srv, a := newFakeAPI(t)
	srv.AddClients(25)

	page, err := a.Clients.List(context.Background(), 2, 10)
	require.NoError(t, err)

	assert.Len(t, page.Items, 10)
	assert.Equal(t, 2, page.Meta.CurrentPage)
	assert.Equal(t, 3, page.Meta.LastPage)
	assert.Equal(t, int64(25), page.Meta.Total)
	assert.Equal(t, "Cliente 11", page.Items[0].Name)

	beyond, err := a.Clients.List(context.Background(), 5, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.True(t, beyond.PastEnd())
	assert.Equal(t, 3, beyond.Meta.LastPage)
}

func TestFakeAPI_FilterStyles(t *testing.T) {
	srv, a := newFakeAPI(t)
	ctx := context.Background()
	srv.AddClients(3)
	srv.AddTicket(ticket.Ticket{Title: "Impressora", Description: "sem toner", Status: vo.StatusOpen, Priority: vo.PriorityLow})
	srv.AddTicket(ticket.Ticket{Title: "Rede", Description: "sem sinal", Status: vo.StatusResolved, Priority: vo.PriorityHigh})

	name := "Cliente 02"
	clients, err := a.Clients.Filter(ctx, client.Filter{Name: &name}, 1, 10)
	require.NoError(t, err)
	require.Len(t, clients.Items, 1)
	assert.Equal(t, "Cliente 02", clients.Items[0].Name)

	status := vo.StatusResolved
	tickets, err := a.Tickets.Filter(ctx, ticket.Filter{Status: &status}, 1, 10)
	require.NoError(t, err)
	require.Len(t, tickets.Items, 1)
	assert.Equal(t, "Rede", tickets.Items[0].Title)
	assert.Equal(t, 1, srv.Hits("POST", "/chamados/filtrar"))
}

func TestFakeAPI_LoginAndRejectedCredentials(t *testing.T) {
	srv := fakeapi.New(t)
	srv.AddUser("Ana", "ana@example.com", "segredo", uvo.RoleUser)
	auth := NewAuthAPI(NewClient(srv.URL))

	res, err := auth.Login(context.Background(), user.Credentials{Email: "ana@example.com", Password: "segredo"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "Ana", res.User.FullName)

	_, err = auth.Login(context.Background(), user.Credentials{Email: "ana@example.com", Password: "errada"})
	assert.True(t, errors.IsUnauthorizedError(err))
	assert.Equal(t, "Credenciais inválidas", errors.UserMessage(err))

	_, err = NewAuthAPI(NewClient(srv.URL, WithCredentials(StaticToken("forjado")))).Me(context.Background())
	assert.True(t, errors.IsUnauthorizedError(err))
}

func TestFakeAPI_UpdateSendsOnlyChangesAndNullClears(t *testing.T) {
	srv, a := newFakeAPI(t)
	cat := int64(4)
	created := srv.AddTicket(ticket.Ticket{Title: "Rede", Description: "x", Status: vo.StatusOpen, Priority: vo.PriorityLow, CategoryID: &cat})

	updated, err := a.Tickets.Update(context.Background(), created.ID, map[string]any{
		"prioridade":  "alta",
		"categoriaId": nil,
	})
	require.NoError(t, err)
	assert.Equal(t, vo.PriorityHigh, updated.Priority)
	assert.Nil(t, updated.CategoryID)
	assert.Equal(t, "Rede", updated.Title)
}

func TestFakeAPI_ValidationErrorsCarryFields(t *testing.T) {
	_, a := newFakeAPI(t)

	_, err := a.Clients.Create(context.Background(), client.Form{Email: "x@example.com"})
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.Equal(t, "Dados inválidos", appErr.Message)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "nome", appErr.Fields[0].Field)
}

func TestFakeAPI_AddressesAndPostalCode(t *testing.T) {
	srv, a := newFakeAPI(t)
	ctx := context.Background()
	srv.AddPostalCode("01001000", client.PostalCodeInfo{Street: "Praça da Sé", Neighborhood: "Sé", City: "São Paulo", State: "SP"})
	cl := srv.AddClient(client.Client{Name: "Loja", Email: "loja@example.com"})

	info, err := a.Addresses.LookupPostalCode(ctx, "01001-000")
	require.NoError(t, err)
	assert.Equal(t, "São Paulo", info.City)

	addr, err := a.Addresses.Create(ctx, client.AddressForm{Street: info.Street, Number: "1", City: info.City, State: info.State, ClientID: cl.ID})
	require.NoError(t, err)

	got, err := a.Clients.Get(ctx, cl.ID)
	require.NoError(t, err)
	primary, ok := got.PrimaryAddress()
	require.True(t, ok)
	assert.Equal(t, addr.ID, primary.ID)

	_, err = a.Addresses.LookupPostalCode(ctx, "99999999")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestFakeAPI_PDF(t *testing.T) {
	srv, a := newFakeAPI(t)
	cl := srv.AddClient(client.Client{Name: "Loja", Email: "loja@example.com"})
	ct, err := a.Contracts.Create(context.Background(), contract.Form{ClientID: cl.ID, Number: "CT-001", StartDate: "2026-01-05", TotalValue: 1200, Active: true})
	require.NoError(t, err)
	require.NotNil(t, ct.Client)
	assert.Equal(t, "Loja", ct.Client.Name)

	data, err := a.Contracts.PDF(context.Background(), ct.ID)
	require.NoError(t, err)
	assert.Contains(t, string(data), "%PDF-1.4")
}
