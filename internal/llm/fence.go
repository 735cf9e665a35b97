package llm

import "strings"

// StripCodeFence removes a markdown code fence around model output: a
// leading "```json" or "```" and a trailing "```". Surrounding whitespace is
// trimmed. Text without fences is returned trimmed.
func StripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
