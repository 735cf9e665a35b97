package pipeline

import (
	"fmt"
	"strings"
)

const (
	configMissingMessage  = "⚠️ Please configure both API key and database connection first."
	defaultSmalltalk      = "Hello! How can I help you?"
	queryHeader           = "**🔍 Executed Cypher Query:**"
	noQueryConversational = "ℹ️ No Cypher query executed - this was a conversational response"
	noQueryGenerationErr  = "❌ No Cypher query executed - error in query generation"
)

func configMissingContent(missing []string) string {
	if len(missing) == 0 {
		return configMissingMessage
	}
	return configMissingMessage + " Missing: " + strings.Join(missing, ", ") + "."
}

func synthesisFailedContent(errMsg string) string {
	return fmt.Sprintf("❌ %s\n\n---\n\n%s\n%s", errMsg, queryHeader, noQueryGenerationErr)
}

func conversationalContent(msg string) string {
	return fmt.Sprintf("%s\n\n---\n\n%s\n%s", msg, queryHeader, noQueryConversational)
}

func executionFailedContent(query, errMsg string) string {
	return fmt.Sprintf("❌ Database query failed: %s\n\n---\n\n%s\n```cypher\n%s\n```\n\n❌ **Query Failed:** %s",
		errMsg, queryHeader, query, errMsg)
}

func narratedContent(answer, query string, records int) string {
	return fmt.Sprintf("%s\n\n---\n\n%s\n```cypher\n%s\n```\n\n**📊 Records Found:** %d",
		answer, queryHeader, query, records)
}
