// Package threadview is the live terminal view of a ticket conversation.
package threadview

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"helpdesk/internal/application/thread"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/biztime"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

const (
	defaultWidth = 80
	resolveInput = "/resolver"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	resolvedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	openStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	metaStyle     = lipgloss.NewStyle().Faint(true)
	systemStyle   = lipgloss.NewStyle().Faint(true).Italic(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	alertStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

var bubbleStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

// Actions is what the view can ask of the open conversation.
type Actions interface {
	State() thread.State
	Updates() <-chan struct{}
	Submit(ctx context.Context, text string) error
	Resolve(ctx context.Context) error
}

type updatedMsg struct{}

type doneMsg struct {
	err error
}

type Model struct {
	ctx      context.Context
	actions  Actions
	viewerID int64
	plain    func(string) string

	input textinput.Model
	state thread.State
	width int
	alert string
	busy  bool
}

// New builds the view of an already opened conversation. plain strips markup
// from comment text before display.
func New(ctx context.Context, actions Actions, viewerID int64, plain func(string) string) Model {
	in := textinput.New()
	in.Placeholder = "Escreva um comentário e pressione Enter"
	in.CharLimit = 2000
	in.Focus()

	if plain == nil {
		plain = strings.TrimSpace
	}
	return Model{
		ctx:      ctx,
		actions:  actions,
		viewerID: viewerID,
		plain:    plain,
		input:    in,
		state:    actions.State(),
		width:    defaultWidth,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForUpdate(m.ctx, m.actions.Updates()))
}

// waitForUpdate blocks until the conversation changes or ctx ends.
func waitForUpdate(ctx context.Context, ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			return updatedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case updatedMsg:
		m.state = m.actions.State()
		return m, waitForUpdate(m.ctx, m.actions.Updates())

	case doneMsg:
		m.busy = false
		m.alert = ""
		if msg.err != nil {
			m.alert = errors.UserMessage(msg.err)
		}
		m.state = m.actions.State()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlR:
			return m.resolve()
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if text == resolveInput {
				return m.resolve()
			}
			if text == "" || m.busy {
				return m, nil
			}
			m.busy = true
			return m, m.run(func(ctx context.Context) error { return m.actions.Submit(ctx, text) })
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) resolve() (tea.Model, tea.Cmd) {
	if m.busy || m.state.Resolved {
		return m, nil
	}
	m.busy = true
	return m, m.run(m.actions.Resolve)
}

func (m Model) run(fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return doneMsg{err: fn(ctx)}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Chamado #%d", m.state.TicketID)))
	b.WriteString("  ")
	if m.state.Resolved {
		label := "Resolvido"
		if m.state.ResolvedAt != nil {
			label += " em " + biztime.FormatDateTime(*m.state.ResolvedAt)
		}
		b.WriteString(resolvedStyle.Render(label))
	} else {
		b.WriteString(openStyle.Render("Em aberto"))
	}
	b.WriteString("\n\n")

	if len(m.state.Comments) == 0 {
		b.WriteString(metaStyle.Render("Nenhum comentário ainda."))
		b.WriteString("\n")
	}
	for _, c := range m.state.Comments {
		b.WriteString(m.renderComment(c))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.alert != "" {
		b.WriteString(alertStyle.Render(m.alert))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter: enviar · ctrl+r ou /resolver: resolver · esc: sair"))
	return b.String()
}

func (m Model) renderComment(c ticket.Comment) string {
	class := thread.Classify(c, m.viewerID)
	if class == thread.ClassSystem {
		line := systemStyle.Render("Chamado marcado como resolvido · " + biztime.FormatDateTime(c.CreatedAt))
		return lipgloss.PlaceHorizontal(m.width, position(class.Align()), line)
	}

	style := bubbleStyle.BorderForeground(lipgloss.Color("240"))
	if class == thread.ClassOwn {
		style = bubbleStyle.BorderForeground(lipgloss.Color("63"))
	}
	maxWidth := max(m.width*2/3, 20)
	meta := metaStyle.Render(c.AuthorName() + " · " + biztime.FormatDateTime(c.CreatedAt))
	body := lipgloss.NewStyle().Width(maxWidth - 4).Render(m.plain(c.Text))
	bubble := style.Render(meta + "\n" + body)
	return lipgloss.PlaceHorizontal(m.width, position(class.Align()), bubble)
}

func position(a thread.Align) lipgloss.Position {
	switch a {
	case thread.AlignCenter:
		return lipgloss.Center
	case thread.AlignRight:
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

// Run shows the view until the operator leaves it.
// Logs below error are muted while the alternate screen is up.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	prev := logger.Level()
	logger.SetLevel(slog.LevelError)
	defer logger.SetLevel(prev)

	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
