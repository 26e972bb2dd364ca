package threadview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/application/thread"
	"helpdesk/internal/domain/ticket"
)

type fakeActions struct {
	state      thread.State
	updates    chan struct{}
	submitted  []string
	resolved   int
	ResolveErr error
}

func newFakeActions(comments ...ticket.Comment) *fakeActions {
	return &fakeActions{
		state:   thread.State{TicketID: 7, Comments: comments},
		updates: make(chan struct{}, 1),
	}
}

func (f *fakeActions) State() thread.State      { return f.state }
func (f *fakeActions) Updates() <-chan struct{} { return f.updates }

func (f *fakeActions) Submit(ctx context.Context, text string) error {
	f.submitted = append(f.submitted, text)
	return nil
}

func (f *fakeActions) Resolve(ctx context.Context) error {
	f.resolved++
	if f.ResolveErr != nil {
		return f.ResolveErr
	}
	now := time.Date(2024, 5, 2, 15, 0, 0, 0, time.UTC)
	f.state.Resolved = true
	f.state.ResolvedAt = &now
	return nil
}

func comment(id, userID int64, text string) ticket.Comment {
	return ticket.Comment{
		ID:        id,
		TicketID:  7,
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC),
		Author:    &ticket.Author{ID: userID, FullName: fmt.Sprintf("Usuário %d", userID)},
	}
}

func typeText(m tea.Model, text string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

// runCmd executes cmd and feeds its message back, as the program loop would.
func runCmd(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	return m
}

func lineContaining(view, text string) string {
	for _, l := range strings.Split(view, "\n") {
		if strings.Contains(l, text) {
			return l
		}
	}
	return ""
}

func TestView_AlignsByAuthor(t *testing.T) {
	actions := newFakeActions(
		comment(1, 2, "outro"),
		comment(2, 1, "meu"),
		comment(3, 2, ticket.ResolutionMarker),
	)
	m := New(context.Background(), actions, 1, nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 90, Height: 30})
	view := updated.View()

	other := lineContaining(view, "outro")
	own := lineContaining(view, "meu")
	system := lineContaining(view, "resolvido ·")
	require.NotEmpty(t, other)
	require.NotEmpty(t, own)
	require.NotEmpty(t, system)

	indent := func(s string) int { return len(s) - len(strings.TrimLeft(s, " ")) }
	assert.Less(t, indent(other), indent(own))
	assert.Greater(t, indent(system), 0)
	assert.NotContains(t, view, ticket.ResolutionMarker)
}

func TestView_StripsMarkup(t *testing.T) {
	actions := newFakeActions(comment(1, 2, "<b>olá</b>"))
	strip := func(s string) string { return strings.NewReplacer("<b>", "", "</b>", "").Replace(s) }

	view := New(context.Background(), actions, 1, strip).View()

	assert.Contains(t, view, "olá")
	assert.NotContains(t, view, "<b>")
}

func TestUpdate_EnterSubmitsTrimmedText(t *testing.T) {
	actions := newFakeActions()
	var m tea.Model = New(context.Background(), actions, 1, nil)

	m = typeText(m, "  preciso de ajuda  ")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = runCmd(t, m, cmd)

	assert.Equal(t, []string{"preciso de ajuda"}, actions.submitted)
	assert.Empty(t, m.(Model).input.Value())
}

func TestUpdate_BlankEnterIsIgnored(t *testing.T) {
	actions := newFakeActions()
	var m tea.Model = New(context.Background(), actions, 1, nil)

	m = typeText(m, "   ")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, actions.submitted)
}

func TestUpdate_ResolveCommand(t *testing.T) {
	actions := newFakeActions(comment(1, 2, "oi"))
	var m tea.Model = New(context.Background(), actions, 1, nil)

	m = typeText(m, resolveInput)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = runCmd(t, m, cmd)

	assert.Equal(t, 1, actions.resolved)
	assert.True(t, m.(Model).state.Resolved)
	assert.Contains(t, m.View(), "Resolvido em")

	// A resolved ticket is not resolved again.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, actions.resolved)
}

func TestUpdate_FailureShowsAlert(t *testing.T) {
	actions := newFakeActions()
	actions.ResolveErr = errors.New("connection refused")
	var m tea.Model = New(context.Background(), actions, 1, nil)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = runCmd(t, m, cmd)

	assert.False(t, m.(Model).state.Resolved)
	assert.Contains(t, m.View(), "Operation failed")
}

func TestUpdate_LiveUpdateRefreshesState(t *testing.T) {
	actions := newFakeActions()
	var m tea.Model = New(context.Background(), actions, 1, nil)

	actions.state.Comments = append(actions.state.Comments, comment(9, 2, "novo"))
	actions.updates <- struct{}{}
	m = runCmd(t, m, waitForUpdate(context.Background(), actions.updates))

	assert.Contains(t, m.View(), "novo")
}

func TestWaitForUpdate_StopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cmd := waitForUpdate(ctx, make(chan struct{}))

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	cancel()

	select {
	case msg := <-done:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("wait did not return after cancel")
	}
}

func TestWaitForUpdate_ClosedFeedEndsQuietly(t *testing.T) {
	ch := make(chan struct{})
	close(ch)
	assert.Nil(t, waitForUpdate(context.Background(), ch)())
}
