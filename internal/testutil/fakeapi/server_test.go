package fakeapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/ticket"
	uvo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/shared/constants"
)

func TestServer_RequiresBearerToken(t *testing.T) {
	s := New(t)
	u := s.AddUser("Ana", "ana@example.com", "segredo", uvo.RoleUser)

	resp, err := http.Get(s.URL + "/me")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, s.URL+"/me", nil)
	require.NoError(t, err)
	req.Header.Set(constants.HeaderAuthorization, "Bearer "+s.Token(u))
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, s.Hits("GET", "/me"))
}

func TestServer_LoginIssuesVerifiableToken(t *testing.T) {
	s := New(t)
	u := s.AddUser("Ana", "Ana@Example.com", "segredo", uvo.RoleTechnician)

	body, _ := json.Marshal(map[string]string{"email": "ana@example.com", "password": "segredo"})
	resp, err := http.Post(s.URL+"/login", constants.ContentTypeJSON, bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	cl, err := s.tokens.verify(out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, cl.UserID)
	assert.Equal(t, "tecnico", cl.Role)
}

func TestServer_PushReachesSubscribers(t *testing.T) {
	s := New(t)
	u := s.AddUser("Ana", "ana@example.com", "segredo", uvo.RoleUser)

	url := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws?token=" + s.Token(u)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return s.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	posted := s.AddComment(ticket.Comment{TicketID: 3, UserID: u.ID, Text: "olá"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var frame struct {
		Event string         `json:"event"`
		Data  ticket.Comment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &frame))
	assert.Equal(t, constants.EventNewComment, frame.Event)
	assert.Equal(t, posted.ID, frame.Data.ID)
	assert.Len(t, s.Comments(3), 1)
}

func TestServer_RejectsPushWithoutToken(t *testing.T) {
	s := New(t)
	url := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMatches(t *testing.T) {
	r := record{
		"nome":      "Loja Centro",
		"createdAt": "2026-03-10T12:00:00Z",
		"cliente":   map[string]any{"nome": "Mercado Azul"},
		"enderecos": []any{map[string]any{"cidade": "Recife"}},
	}
	assert.True(t, matches(r, "search", "centro"))
	assert.True(t, matches(r, "dataInicio", "2026-03-01"))
	assert.False(t, matches(r, "dataFim", "2026-03-09"))
	assert.True(t, matches(r, "cidade", "recife"))
	assert.True(t, matches(r, "clienteNome", "azul"))
	assert.False(t, matches(r, "status", "aberto"))
}
