// Package tui implements the interactive chat on top of the question
// pipeline.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/logicmind/logicmind/internal/pipeline"
)

const (
	promptText = "ask> "
	readyText  = "Ready"
)

// Asker answers one question within a session.
type Asker interface {
	Ask(ctx context.Context, session *pipeline.Session, question string) pipeline.Turn
}

// ConnectionStatus is the result of probing both backends.
type ConnectionStatus struct {
	Graph bool `json:"graph"`
	Model bool `json:"model"`
}

// Config contains everything the chat needs.
type Config struct {
	Asker   Asker
	Session *pipeline.Session

	// TestConnection probes the backends for /test. Nil disables the command.
	TestConnection func(ctx context.Context) ConnectionStatus

	ShowQuery       bool
	ShowSuggestions bool

	// Copy writes text to the clipboard; defaults to the system clipboard.
	Copy func(text string) error
}

// Model is the bubbletea model of the chat.
type Model struct {
	ctx    context.Context
	config Config

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	keyMap KeyMap
	theme  *Theme

	width  int
	height int

	busy      bool
	status    string
	isError   bool
	lastQuery string
	notes     []string
}

// NewModel creates the chat model.
func NewModel(ctx context.Context, config Config) *Model {
	if config.Copy == nil {
		config.Copy = clipboard.WriteAll
	}
	theme := DefaultTheme()

	ti := textinput.New()
	ti.Placeholder = "Ask about employees, skills, projects..."
	ti.CharLimit = 1000
	ti.Width = 60
	ti.Prompt = promptText
	ti.PromptStyle = theme.UserStyle
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.Style = theme.ViewportStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	m := &Model{
		ctx:      ctx,
		config:   config,
		input:    ti,
		viewport: vp,
		spinner:  sp,
		keyMap:   DefaultKeyMap(),
		theme:    theme,
		width:    80,
		height:   24,
		status:   readyText,
	}
	m.refresh()
	return m
}

// Init starts the cursor blink.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the chat state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.Send):
			return m, m.submit()
		case key.Matches(msg, m.keyMap.CopyQuery):
			return m, m.copyLastQuery()
		case key.Matches(msg, m.keyMap.Clear):
			m.clear()
			return m, nil
		case key.Matches(msg, m.keyMap.ScrollUp):
			m.viewport.ViewUp()
			return m, nil
		case key.Matches(msg, m.keyMap.ScrollDown):
			m.viewport.ViewDown()
			return m, nil
		}

	case answerMsg:
		m.busy = false
		if msg.turn.Query != "" {
			m.lastQuery = msg.turn.Query
		}
		if msg.turn.Kind != "" {
			m.setError(fmt.Sprintf("%s: %s", msg.turn.State, msg.turn.Kind))
		} else {
			m.setStatus(fmt.Sprintf("%s (%d records)", msg.turn.State, msg.turn.RecordCount))
		}
		m.refresh()
		return m, nil

	case connectionMsg:
		m.busy = false
		m.notes = append(m.notes, connectionNote(msg.status))
		if msg.status.Graph && msg.status.Model {
			m.setStatus("Connections OK")
		} else {
			m.setError("Connection test failed")
		}
		m.refresh()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.setError("Clipboard unavailable: " + msg.err.Error())
		} else {
			m.setStatus("Query copied to clipboard")
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit handles the text in the input line: slash commands run locally,
// anything else is asked.
func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.busy {
		return nil
	}
	m.input.SetValue("")

	switch strings.ToLower(text) {
	case "/quit", "/exit":
		return tea.Quit
	case "/clear":
		m.clear()
		return nil
	case "/help":
		m.notes = append(m.notes, m.keyMap.HelpText())
		m.refresh()
		return nil
	case "/test":
		if m.config.TestConnection == nil {
			m.setError("Connection test unavailable")
			return nil
		}
		m.busy = true
		m.setStatus("Testing connections...")
		return tea.Batch(m.spinner.Tick, m.testCmd())
	}

	m.busy = true
	m.setStatus("Thinking...")
	return tea.Batch(m.spinner.Tick, m.askCmd(text))
}

func (m *Model) askCmd(question string) tea.Cmd {
	asker, session, ctx := m.config.Asker, m.config.Session, m.ctx
	return func() tea.Msg {
		return answerMsg{turn: asker.Ask(ctx, session, question)}
	}
}

func (m *Model) testCmd() tea.Cmd {
	test, ctx := m.config.TestConnection, m.ctx
	return func() tea.Msg {
		return connectionMsg{status: test(ctx)}
	}
}

func (m *Model) copyLastQuery() tea.Cmd {
	if m.lastQuery == "" {
		m.setError("No query to copy yet")
		return nil
	}
	copyFn, query := m.config.Copy, m.lastQuery
	return func() tea.Msg {
		return copiedMsg{err: copyFn(query)}
	}
}

func (m *Model) clear() {
	m.config.Session.ClearHistory()
	m.notes = nil
	m.lastQuery = ""
	m.setStatus("Chat history cleared")
	m.refresh()
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.isError = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.isError = true
}

// refresh re-renders the history into the viewport and scrolls to the end.
func (m *Model) refresh() {
	content := renderHistory(m.config.Session.History(), m.theme, renderOptions{
		showQuery:       m.config.ShowQuery,
		showSuggestions: m.config.ShowSuggestions,
		width:           m.viewport.Width - 4,
	})
	if len(m.notes) > 0 {
		content = strings.TrimSpace(content + "\n\n" + m.theme.SuggestionStyle.Render(strings.Join(m.notes, "\n")))
	}
	if content == "" {
		content = m.theme.SuggestionStyle.Render("Ask a question about your employee graph. /help lists commands.")
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func (m *Model) updateSizes() {
	headerHeight := 1
	footerHeight := 3
	m.viewport.Width = m.width
	m.viewport.Height = m.height - headerHeight - footerHeight - 2
	if m.viewport.Height < 5 {
		m.viewport.Height = 5
	}
	m.input.Width = m.width - len(promptText) - 2
	m.refresh()
}

// View renders the header, the conversation, the status line and the input.
func (m *Model) View() string {
	header := m.theme.TitleStyle.Render("LogicMind") + " " +
		m.theme.StatusStyle.Render(m.keyMap.HelpText())

	status := m.status
	if m.busy {
		status = m.spinner.View() + " " + status
	}
	statusStyle := m.theme.StatusStyle
	if m.isError {
		statusStyle = m.theme.ErrorStyle.Padding(0, 1)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		statusStyle.Render(status),
		m.input.View(),
	)
}

// Run starts the chat and blocks until the user quits or ctx is done.
func Run(ctx context.Context, config Config) error {
	program := tea.NewProgram(NewModel(ctx, config), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

func connectionNote(s ConnectionStatus) string {
	return fmt.Sprintf("Graph database: %s | Language model: %s", okOrFail(s.Graph), okOrFail(s.Model))
}

func okOrFail(ok bool) string {
	if ok {
		return "connected"
	}
	return "unreachable"
}
