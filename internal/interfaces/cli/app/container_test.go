package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pvo "helpdesk/internal/domain/permission/value_objects"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/domain/user"
	uvo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/testutil/fakeapi"
)

// writeConfig points a console at srv with its session database in dir.
func writeConfig(t *testing.T, srv *fakeapi.Server, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`api:
  base_url: %[1]s
  default_page_size: 10
logger:
  level: error
session:
  database_path: %[2]s
realtime:
  url: %[1]s
  path: /ws
  reconnect:
    initial_interval_ms: 50
    max_interval_ms: 200
ui:
  output: table
  viewer_command: "true"
`, srv.URL, filepath.Join(dir, "session.db"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func openContainer(t *testing.T, configPath string) (*Container, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	c, err := Open(context.Background(), Options{ConfigPath: configPath}, Streams{
		In:  strings.NewReader(""),
		Out: out,
		Err: &bytes.Buffer{},
	})
	require.NoError(t, err)
	return c, out
}

func TestContainer_LiveCommentAppendsWithoutRefetch(t *testing.T) {
	srv := fakeapi.New(t)
	tech := srv.AddUser("Ana Técnica", "ana@example.com", "segredo", uvo.RoleTechnician)
	other := srv.AddUser("Bruno", "bruno@example.com", "segredo", uvo.RoleUser)
	srv.AddTicket(ticket.Ticket{ID: 7, Title: "Rede fora", Description: "sem sinal", Status: vo.StatusOpen, Priority: vo.PriorityHigh, UserID: other.ID})
	srv.AddComment(ticket.Comment{TicketID: 7, UserID: other.ID, Text: "Alguém pode ajudar?"})

	c, _ := openContainer(t, writeConfig(t, srv, t.TempDir()))
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := c.Session.Login(ctx, user.Credentials{Email: tech.Email, Password: "segredo"})
	require.NoError(t, err)
	require.NoError(t, c.Require(pvo.ResourceComment, pvo.ActionRead))

	th := c.Thread(c.Feed(ctx))
	require.NoError(t, th.Open(ctx, 7))
	defer th.Close()

	require.Len(t, th.State().Comments, 1)
	require.Eventually(t, func() bool { return srv.Subscribers() == 1 }, 5*time.Second, 20*time.Millisecond)

	live := srv.AddComment(ticket.Comment{TicketID: 7, UserID: other.ID, Text: "Voltou a cair"})
	srv.AddComment(ticket.Comment{TicketID: 8, UserID: other.ID, Text: "outro chamado"})

	require.Eventually(t, func() bool { return len(th.State().Comments) == 2 }, 5*time.Second, 20*time.Millisecond)

	st := th.State()
	assert.Equal(t, live.ID, st.Comments[1].ID)
	assert.Equal(t, "Voltou a cair", st.Comments[1].Text)
	assert.False(t, st.Resolved)
	assert.Equal(t, 1, srv.Hits("GET", "/chamados/:id/comentarios"))
}

func TestContainer_ResolveFromThreadReachesOtherViewers(t *testing.T) {
	srv := fakeapi.New(t)
	tech := srv.AddUser("Ana Técnica", "ana@example.com", "segredo", uvo.RoleTechnician)
	srv.AddTicket(ticket.Ticket{ID: 7, Title: "Rede fora", Description: "sem sinal", Status: vo.StatusOpen, Priority: vo.PriorityHigh})

	c, _ := openContainer(t, writeConfig(t, srv, t.TempDir()))
	defer c.Close()
	ctx := context.Background()

	_, err := c.Session.Login(ctx, user.Credentials{Email: tech.Email, Password: "segredo"})
	require.NoError(t, err)

	th := c.Thread(nil)
	require.NoError(t, th.Open(ctx, 7))
	require.NoError(t, th.Resolve(ctx))

	st := th.State()
	assert.True(t, st.Resolved)
	require.NotNil(t, st.ResolvedAt)

	stored, ok := srv.Ticket(7)
	require.True(t, ok)
	assert.Equal(t, vo.StatusResolved, stored.Status)

	comments := srv.Comments(7)
	require.Len(t, comments, 1)
	assert.True(t, comments[0].IsResolutionMarker())
}

func TestContainer_SessionSurvivesRestart(t *testing.T) {
	srv := fakeapi.New(t)
	tech := srv.AddUser("Ana Técnica", "ana@example.com", "segredo", uvo.RoleTechnician)
	path := writeConfig(t, srv, t.TempDir())

	first, _ := openContainer(t, path)
	_, err := first.Session.Login(context.Background(), user.Credentials{Email: tech.Email, Password: "segredo"})
	require.NoError(t, err)
	first.Close()

	second, _ := openContainer(t, path)
	defer second.Close()

	require.True(t, second.Session.IsAuthenticated())
	assert.Equal(t, tech.ID, second.Session.Current().ID)
	assert.Equal(t, 1, srv.Hits("GET", "/me"))

	require.NoError(t, second.Session.Logout(context.Background()))

	third, _ := openContainer(t, path)
	defer third.Close()
	assert.False(t, third.Session.IsAuthenticated())
}

func TestContainer_RejectsUnknownOutputFormat(t *testing.T) {
	srv := fakeapi.New(t)
	path := writeConfig(t, srv, t.TempDir())

	_, err := Open(context.Background(), Options{ConfigPath: path, Output: "xml"}, Streams{
		In: strings.NewReader(""), Out: &bytes.Buffer{}, Err: &bytes.Buffer{},
	})
	assert.Error(t, err)
}
