package assistant

import "strings"

// MaxSuggestions caps the follow-up questions attached to an answer.
const MaxSuggestions = 2

var defaultSuggestions = []string{
	"Can you show me the organizational structure?",
	"Which employees have the most skills?",
}

// Suggestions returns follow-up questions for a question. The first topic
// found decides: employee (only when skills are not mentioned), skill,
// project, department.
func Suggestions(question string) []string {
	q := strings.ToLower(question)

	var out []string
	switch {
	case strings.Contains(q, "employee") && !strings.Contains(q, "skill"):
		out = []string{
			"What skills does this employee have?",
			"Which projects is this employee working on?",
		}
	case strings.Contains(q, "skill"):
		out = []string{
			"Which employees have advanced level in this skill?",
			"What projects require this skill?",
		}
	case strings.Contains(q, "project"):
		out = []string{
			"Which departments are involved in this project?",
			"What skills are needed for this project?",
		}
	case strings.Contains(q, "department"):
		out = []string{
			"Show me the reporting structure in this department",
			"What projects is this department working on?",
		}
	default:
		out = append([]string(nil), defaultSuggestions...)
	}
	return capSuggestions(out)
}

func capSuggestions(s []string) []string {
	if len(s) > MaxSuggestions {
		return s[:MaxSuggestions]
	}
	return s
}
