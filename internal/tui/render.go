package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/logicmind/logicmind/internal/pipeline"
)

type renderOptions struct {
	showQuery       bool
	showSuggestions bool
	width           int
}

// renderHistory renders the turns in order. With showQuery off, narrated
// and conversational turns show only the answer text.
func renderHistory(history []pipeline.Turn, theme *Theme, opts renderOptions) string {
	var b strings.Builder
	for i, turn := range history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(renderTurn(turn, theme, opts))
	}
	return b.String()
}

func renderTurn(turn pipeline.Turn, theme *Theme, opts renderOptions) string {
	if turn.Role == pipeline.RoleUser {
		return theme.UserStyle.Render("You: ") + turn.Content
	}

	body := turn.Content
	if !opts.showQuery && turn.Answer != "" {
		body = turn.Answer
	}

	style := theme.AssistantStyle
	if turn.Kind != "" {
		style = theme.ErrorStyle
	}
	if opts.width > 0 {
		style = style.Width(opts.width)
	}

	lines := []string{style.Render(body)}
	if opts.showSuggestions && len(turn.Suggestions) > 0 {
		for _, s := range turn.Suggestions {
			lines = append(lines, theme.SuggestionStyle.Render("→ "+s))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
