package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/client"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/domain/user"
	uvo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/shared/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, WithCredentials(StaticToken(token)))
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"user":{"id":1,"fullName":"Ana","email":"ana@example.com"}}`))
	}, "abc123")

	u, err := NewAuthAPI(c).Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "Ana", u.FullName)
}

func TestClient_TokenReadPerRequest(t *testing.T) {
	token := ""
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithCredentials(TokenFunc(func() string { return token })))
	comments := NewCommentsAPI(c)

	_, err := comments.ListByTicket(context.Background(), 1)
	require.NoError(t, err)
	token = "later"
	_, err = comments.ListByTicket(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer later"}, seen)
}

func TestClient_DecodesServerErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Dados inválidos","errors":[{"field":"email","message":"E-mail já cadastrado"}]}`))
	}, "")

	_, err := NewUsersAPI(c).Create(context.Background(), user.Form{FullName: "Bia", Email: "bia@example.com", Role: uvo.RoleUser})
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.Equal(t, "Dados inválidos", appErr.Message)
	assert.Equal(t, "E-mail já cadastrado", appErr.FieldMessage("email"))
}

func TestClient_NonJSONErrorFallsBackToGenericMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}, "")

	err := NewTicketsAPI(c).Delete(context.Background(), 3)
	require.Error(t, err)
	assert.Equal(t, errors.GenericMessage, errors.UserMessage(err))
}

func TestResource_FilterBodyOmitsUnsetCriteria(t *testing.T) {
	var body map[string]any
	var method, path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		_, _ = w.Write([]byte(`{"data":[],"meta":{"total":0,"currentPage":1,"perPage":10,"lastPage":1}}`))
	}, "")

	urgent := vo.PriorityUrgent
	_, err := NewTicketsAPI(c).Filter(context.Background(), ticket.Filter{Priority: &urgent}, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/chamados/filtrar", path)
	assert.Equal(t, map[string]any{"prioridade": "urgente", "page": float64(1), "limit": float64(10)}, body)
}

func TestResource_FilterQuery(t *testing.T) {
	var rawQuery, method string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, rawQuery = r.Method, r.URL.RawQuery
		_, _ = w.Write([]byte(`{"data":[{"id":1,"nome":"ACME","email":"a@acme.com"}],"meta":{"total":1,"currentPage":1,"perPage":10,"lastPage":1}}`))
	}, "")

	name := "ACME"
	page, err := NewClientsAPI(c).Filter(context.Background(), client.Filter{Name: &name}, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, method)
	assert.Equal(t, "limit=10&nome=ACME&page=1", rawQuery)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "ACME", page.Items[0].Name)
}

func TestResource_UpdateSendsOnlyChanges(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/chamados/9", r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		_, _ = w.Write([]byte(`{"id":9,"titulo":"x","status":"em_progresso"}`))
	}, "")

	got, err := NewTicketsAPI(c).Update(context.Background(), 9, map[string]any{"status": "em_progresso", "tecnicoId": nil})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusInProgress, got.Status)
	assert.Equal(t, map[string]any{"status": "em_progresso", "tecnicoId": nil}, body)
}

func TestContractsAPI_PDF(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contratos/4/pdf", r.URL.Path)
		assert.Equal(t, "application/pdf", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}, "")

	data, err := NewContractsAPI(c).PDF(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)
}

func TestAddressesAPI_LookupPostalCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/enderecos/cep", r.URL.Path)
		assert.Equal(t, "01310100", r.URL.Query().Get("cep"))
		_, _ = w.Write([]byte(`{"rua":"Avenida Paulista","bairro":"Bela Vista","cidade":"São Paulo","estado":"SP"}`))
	}, "")

	addresses := NewAddressesAPI(c)
	info, err := addresses.LookupPostalCode(context.Background(), "01310-100")
	require.NoError(t, err)
	assert.Equal(t, "Avenida Paulista", info.Street)

	_, err = addresses.LookupPostalCode(context.Background(), "123")
	assert.Error(t, err)
}
