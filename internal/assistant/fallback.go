package assistant

import (
	"fmt"
	"strings"
)

var emptySuggestions = []string{
	"Show me all departments",
	"Which employees have the most skills?",
}

// FallbackAnswer formats a result without the model. The text depends on
// whether rows were found and on the query type.
func FallbackAnswer(question string, rows []map[string]any, queryType string) string {
	if len(rows) == 0 {
		return fmt.Sprintf(`## No Employee Data Found

I searched the employee database but couldn't find any data matching **"%s"**.

**Tip:** I can help you explore employee profiles, skills, project assignments, departments and reporting relationships.

**Try asking about:**
- "Show me employees with Python skills"
- "Which projects are currently active?"
- "Find employees in the Engineering department"`, question)
	}

	n := len(rows)
	switch strings.ToLower(queryType) {
	case "count":
		return fmt.Sprintf("## Found %d Matching %s\n\nBased on your question about **\"%s\"**, I found **%d %s** in the employee database.",
			n, plural(n, "Record", "Records"), question, n, plural(n, "result", "results"))
	case "aggregate":
		return fmt.Sprintf("## Analysis Complete\n\nI analyzed the employee data and found **%d aggregated %s** for your question about **\"%s\"**.",
			n, plural(n, "result", "results"), question)
	case "list":
		return fmt.Sprintf("## Here Are %d %s\n\nThese are the entries I found for **\"%s\"**.",
			n, plural(n, "Item", "Items"), question)
	default:
		return fmt.Sprintf("## Here's What I Found\n\nI found **%d matching %s** in the employee database for your question about **\"%s\"**.",
			n, plural(n, "record", "records"), question)
	}
}

// fallbackSuggestions pairs with FallbackAnswer.
func fallbackSuggestions(question string, rows []map[string]any) []string {
	if len(rows) == 0 {
		return append([]string(nil), emptySuggestions...)
	}
	return Suggestions(question)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
