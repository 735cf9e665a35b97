package assistant

import (
	"github.com/logicmind/logicmind/internal/types"
)

// ResponseType is the kind of reply the model chose for a question.
type ResponseType string

const (
	ResponseCypher    ResponseType = "cypher"
	ResponseSmalltalk ResponseType = "smalltalk"
	ResponseError     ResponseType = "error"
)

// Conversational reports whether the reply carries a message instead of a
// query.
func (r ResponseType) Conversational() bool {
	return r == ResponseSmalltalk || r == ResponseError
}

// QueryPlan is the outcome of GenerateQuery. When Success is false, Error
// and Kind describe the failure and QueryType is "error".
type QueryPlan struct {
	Success       bool            `json:"success" mapstructure:"success"`
	ResponseType  ResponseType    `json:"response_type,omitempty" mapstructure:"response_type"`
	CypherQuery   string          `json:"cypher_query" mapstructure:"cypher_query"`
	QueryType     string          `json:"query_type" mapstructure:"query_type"`
	Entities      []string        `json:"entities" mapstructure:"entities"`
	Relationships []string        `json:"relationships" mapstructure:"relationships"`
	Message       string          `json:"message,omitempty" mapstructure:"message"`
	Error         string          `json:"error,omitempty" mapstructure:"-"`
	Kind          types.ErrorKind `json:"kind,omitempty" mapstructure:"-"`

	// Raw is the decoded model object, annotated with "success": true.
	Raw map[string]any `json:"-" mapstructure:"-"`
}

// DefaultQueryType is assumed when the model omits query_type.
const DefaultQueryType = "search"

func failedPlan(kind types.ErrorKind, msg string) QueryPlan {
	return QueryPlan{
		Success:       false,
		Error:         msg,
		Kind:          kind,
		CypherQuery:   "",
		QueryType:     "error",
		Entities:      []string{},
		Relationships: []string{},
	}
}

// Answer is the outcome of GenerateAnswer. On failure Answer still holds
// the templated fallback text.
type Answer struct {
	Success            bool            `json:"success" mapstructure:"success"`
	Answer             string          `json:"answer" mapstructure:"answer"`
	DataTable          any             `json:"data_table" mapstructure:"data_table"`
	SuggestedQuestions []string        `json:"suggested_questions" mapstructure:"suggested_questions"`
	Error              string          `json:"error,omitempty" mapstructure:"-"`
	Kind               types.ErrorKind `json:"kind,omitempty" mapstructure:"-"`
}
