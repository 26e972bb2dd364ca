package root

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/application/listing"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/domain/user"
	uvo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/testutil/fakeapi"
)

type console struct {
	t      *testing.T
	config string
}

func newConsole(t *testing.T, srv *fakeapi.Server) *console {
	t.Helper()
	dir := t.TempDir()
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
ui:
  output: json
  viewer_command: "true"
`, srv.URL, filepath.Join(dir, "session.db"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return &console{t: t, config: path}
}

// run executes one console invocation and returns its stdout.
func (c *console) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	cmd := NewCommand()
	out := &bytes.Buffer{}
	cmd.SetArgs(append([]string{"--config", c.config}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConsole_UrgentTicketNeedsCategory(t *testing.T) {
	srv := fakeapi.New(t)
	tech := srv.AddUser("Ana Técnica", "ana@example.com", "segredo", uvo.RoleTechnician)
	cat := srv.AddCategory("Rede")
	con := newConsole(t, srv)

	out, err := con.run("segredo\n", "login", "--email", tech.Email)
	require.NoError(t, err)
	var me user.User
	require.NoError(t, json.Unmarshal([]byte(out), &me))
	assert.Equal(t, tech.ID, me.ID)

	base := []string{"tickets", "create",
		"--set", "titulo=Servidor fora do ar",
		"--set", "descricao=Nenhum acesso desde as 8h",
		"--set", "prioridade=urgente",
		"--set", "userId=" + strconv.FormatInt(tech.ID, 10),
	}

	_, err = con.run("", base...)
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.NotEmpty(t, appErr.FieldMessage("categoriaId"))
	assert.Zero(t, srv.Hits("POST", "/chamados"))

	out, err = con.run("", append(base, "--set", "categoriaId="+strconv.FormatInt(cat.ID, 10))...)
	require.NoError(t, err)
	var created ticket.Ticket
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, vo.PriorityUrgent, created.Priority)
	require.NotNil(t, created.CategoryID)
	assert.Equal(t, cat.ID, *created.CategoryID)
	assert.Equal(t, 1, srv.Hits("POST", "/chamados"))

	out, err = con.run("", "tickets", "list")
	require.NoError(t, err)
	var view listing.View[ticket.Ticket]
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, int64(1), view.Total)
	require.Len(t, view.Items, 1)
	assert.Equal(t, created.ID, view.Items[0].ID)
}

func TestConsole_SignedOutCommandsAreRejected(t *testing.T) {
	srv := fakeapi.New(t)
	con := newConsole(t, srv)

	_, err := con.run("", "whoami")
	assert.True(t, errors.IsUnauthorizedError(err))

	_, err = con.run("", "tickets", "list")
	require.Error(t, err)
	assert.Zero(t, srv.Hits("GET", "/chamados"))
}

func TestConsole_WrongPasswordMarksBothFields(t *testing.T) {
	srv := fakeapi.New(t)
	srv.AddUser("Ana", "ana@example.com", "segredo", uvo.RoleTechnician)
	con := newConsole(t, srv)

	_, err := con.run("errada\n", "login", "--email", "ana@example.com")
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.NotEmpty(t, appErr.FieldMessage("email"))
	assert.NotEmpty(t, appErr.FieldMessage("password"))

	_, err = con.run("", "whoami")
	assert.True(t, errors.IsUnauthorizedError(err))
}

func TestConsole_FilterAndPaging(t *testing.T) {
	srv := fakeapi.New(t)
	tech := srv.AddUser("Ana Técnica", "ana@example.com", "segredo", uvo.RoleTechnician)
	srv.AddClients(25)
	con := newConsole(t, srv)

	_, err := con.run("segredo\n", "login", "--email", tech.Email)
	require.NoError(t, err)

	out, err := con.run("", "clients", "list", "--page", "3")
	require.NoError(t, err)
	var view listing.View[json.RawMessage]
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 3, view.Page)
	assert.Equal(t, 3, view.TotalPages)
	assert.Len(t, view.Items, 5)
	assert.False(t, view.Filtered)

	out, err = con.run("", "clients", "list", "--page", "9")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 3, view.Page)
	assert.Len(t, view.Items, 5)

	out, err = con.run("", "clients", "filter", "--nome", "Cliente 07")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.True(t, view.Filtered)
	assert.Len(t, view.Items, 1)
}
