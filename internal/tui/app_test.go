package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logicmind/logicmind/internal/assistant"
	"github.com/logicmind/logicmind/internal/graph"
	"github.com/logicmind/logicmind/internal/pipeline"
)

const pythonQuery = "MATCH (e:Employee)-[:HAS_SKILL]->(s:Skill {name: 'Python'}) RETURN e.name AS name"

type stubTranslator struct{}

func (stubTranslator) GenerateQuery(_ context.Context, question string) assistant.QueryPlan {
	if strings.EqualFold(question, "hi") {
		return assistant.QueryPlan{Success: true, ResponseType: assistant.ResponseSmalltalk, Message: "Hello there"}
	}
	return assistant.QueryPlan{Success: true, ResponseType: assistant.ResponseCypher, CypherQuery: pythonQuery, QueryType: "list"}
}

func (stubTranslator) GenerateAnswer(_ context.Context, _ string, rows []map[string]any, _, _ string) assistant.Answer {
	return assistant.Answer{Success: true, Answer: "**Jane Doe** knows Python.", SuggestedQuestions: []string{"What projects is Jane on?"}}
}

type stubExecutor struct{}

func (stubExecutor) Execute(context.Context, string, map[string]any) graph.ExecuteResult {
	return graph.ExecuteResult{Success: true, Data: []map[string]any{{"name": "Jane Doe"}}, Count: 1}
}

func newTestModel(t *testing.T, cfg Config) *Model {
	t.Helper()
	if cfg.Asker == nil {
		cfg.Asker = pipeline.New(stubTranslator{}, stubExecutor{})
	}
	if cfg.Session == nil {
		cfg.Session = pipeline.NewSession(pipeline.Settings{Provider: "mock", GraphURI: "bolt://localhost:7687"})
	}
	if cfg.Copy == nil {
		cfg.Copy = func(string) error { return nil }
	}
	m := NewModel(context.Background(), cfg)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

// runCmd executes cmd and flattens batches into their messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func typeAndSend(m *Model, text string) []tea.Msg {
	m.input.SetValue(text)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return runCmd(cmd)
}

func deliver(m *Model, msgs []tea.Msg) {
	for _, msg := range msgs {
		switch msg.(type) {
		case answerMsg, connectionMsg, copiedMsg:
			m.Update(msg)
		}
	}
}

func TestModel_AskQuestion(t *testing.T) {
	m := newTestModel(t, Config{ShowQuery: true, ShowSuggestions: true})

	msgs := typeAndSend(m, "Who knows Python?")
	assert.True(t, m.busy)
	assert.Empty(t, m.input.Value())

	deliver(m, msgs)

	assert.False(t, m.busy)
	assert.Equal(t, pythonQuery, m.lastQuery)
	assert.Equal(t, "NARRATED (1 records)", m.status)
	assert.False(t, m.isError)

	history := m.config.Session.History()
	require.Len(t, history, 2)
	assert.Equal(t, "Who knows Python?", history[0].Content)
	assert.Equal(t, pythonQuery, history[1].Query)
}

func TestModel_IgnoresInputWhileBusy(t *testing.T) {
	m := newTestModel(t, Config{})

	first := typeAndSend(m, "Who knows Python?")
	require.NotEmpty(t, first)
	assert.Empty(t, typeAndSend(m, "Another question"))
	assert.Empty(t, typeAndSend(m, "   "))
}

func TestModel_SlashCommands(t *testing.T) {
	m := newTestModel(t, Config{
		TestConnection: func(context.Context) ConnectionStatus { return ConnectionStatus{Graph: true, Model: false} },
	})

	deliver(m, typeAndSend(m, "hi"))
	require.Len(t, m.config.Session.History(), 2)

	assert.Empty(t, typeAndSend(m, "/clear"))
	assert.Empty(t, m.config.Session.History())
	assert.Equal(t, "Chat history cleared", m.status)

	deliver(m, typeAndSend(m, "/test"))
	assert.True(t, m.isError)
	require.Len(t, m.notes, 1)
	assert.Equal(t, "Graph database: connected | Language model: unreachable", m.notes[0])

	typeAndSend(m, "/help")
	assert.Contains(t, m.notes[1], "/clear /test /help /quit")

	msgs := typeAndSend(m, "/quit")
	require.Len(t, msgs, 1)
	assert.IsType(t, tea.QuitMsg{}, msgs[0])
}

func TestModel_TestUnavailable(t *testing.T) {
	m := newTestModel(t, Config{})

	assert.Empty(t, typeAndSend(m, "/test"))
	assert.True(t, m.isError)
	assert.False(t, m.busy)
}

func TestModel_CopyLastQuery(t *testing.T) {
	var copied string
	m := newTestModel(t, Config{Copy: func(s string) error { copied = s; return nil }})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Nil(t, cmd)
	assert.Equal(t, "No query to copy yet", m.status)

	deliver(m, typeAndSend(m, "Who knows Python?"))

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	deliver(m, runCmd(cmd))
	assert.Equal(t, pythonQuery, copied)
	assert.Equal(t, "Query copied to clipboard", m.status)
}

func TestModel_CopyFailure(t *testing.T) {
	m := newTestModel(t, Config{Copy: func(string) error { return errors.New("no clipboard") }})
	deliver(m, typeAndSend(m, "Who knows Python?"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	deliver(m, runCmd(cmd))

	assert.True(t, m.isError)
	assert.Equal(t, "Clipboard unavailable: no clipboard", m.status)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, Config{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, Config{})
	view := m.View()
	assert.Contains(t, view, "LogicMind")
	assert.Contains(t, view, readyText)
	assert.Contains(t, view, promptText)
}

func TestRenderHistory(t *testing.T) {
	history := []pipeline.Turn{
		{Role: pipeline.RoleUser, Content: "Who knows Python?"},
		{
			Role:        pipeline.RoleAssistant,
			Content:     "**Jane Doe** knows Python.\n\n---\n\n```cypher\n" + pythonQuery + "\n```",
			Answer:      "**Jane Doe** knows Python.",
			Query:       pythonQuery,
			Suggestions: []string{"What projects is Jane on?"},
		},
	}

	full := renderHistory(history, DefaultTheme(), renderOptions{showQuery: true, showSuggestions: true})
	assert.Contains(t, full, "Who knows Python?")
	assert.Contains(t, full, "You:")
	assert.Contains(t, full, pythonQuery)
	assert.Contains(t, full, "→ What projects is Jane on?")

	short := renderHistory(history, DefaultTheme(), renderOptions{})
	assert.Contains(t, short, "**Jane Doe** knows Python.")
	assert.NotContains(t, short, "```cypher")
	assert.NotContains(t, short, "What projects is Jane on?")
}

func TestKeyMap_HelpText(t *testing.T) {
	help := DefaultKeyMap().HelpText()
	assert.Contains(t, help, "ctrl+y copy last query")
	assert.Contains(t, help, "enter ask")
}
