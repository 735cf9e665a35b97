// Package assistant turns questions into Cypher and query results into
// narrated answers using a language model.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/logicmind/logicmind/internal/llm"
	"github.com/logicmind/logicmind/internal/types"
)

// Sampling parameters for the two prompts.
const (
	QueryTemperature  = 0.1
	QueryMaxTokens    = 1000
	AnswerTemperature = 0.3
	AnswerMaxTokens   = 2000
)

// Assistant wraps an LLMProvider with the query and narration prompts.
// Its methods never return errors: failures are described by the returned
// QueryPlan or Answer.
type Assistant struct {
	provider llm.LLMProvider
	logger   *slog.Logger
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		a.logger = logger
	}
}

// New creates an Assistant backed by provider.
func New(provider llm.LLMProvider, opts ...Option) *Assistant {
	a := &Assistant{
		provider: provider,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// TestConnection sends a minimal "Hello" prompt and reports whether any
// text came back. Errors are logged, never returned.
func (a *Assistant) TestConnection(ctx context.Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.ErrorContext(ctx, "language model connection test panicked", "panic", r)
			ok = false
		}
	}()

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Messages:  []llm.Message{llm.NewUserMessage("Hello")},
		MaxTokens: 5,
	})
	if err != nil {
		a.logger.WarnContext(ctx, "language model connection test failed",
			"provider", a.provider.Name(),
			"error", err,
		)
		return false
	}
	return strings.TrimSpace(resp.Content) != ""
}

// GenerateQuery asks the model to translate question into a QueryPlan.
func (a *Assistant) GenerateQuery(ctx context.Context, question string) QueryPlan {
	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			llm.NewSystemMessage(querySystemPrompt),
			llm.NewUserMessage(question),
		},
		Temperature: QueryTemperature,
		MaxTokens:   QueryMaxTokens,
	})
	if err != nil {
		a.logger.WarnContext(ctx, "query generation failed", "error", err)
		return failedPlan(types.KindOf(err, types.KindBackendUnreachable),
			"AI query generation failed: "+err.Error())
	}

	raw, err := decodeObject(resp.Content)
	if err != nil {
		a.logger.WarnContext(ctx, "model returned invalid JSON", "error", err)
		return failedPlan(types.KindMalformedModelOutput, "Invalid JSON response from AI: "+err.Error())
	}
	raw["success"] = true

	var plan QueryPlan
	if err := decode(raw, &plan); err != nil {
		return failedPlan(types.KindMalformedModelOutput, "Invalid JSON response from AI: "+err.Error())
	}
	plan.Success = true
	plan.Raw = raw

	if plan.ResponseType.Conversational() {
		return plan
	}

	plan.CypherQuery = strings.TrimSpace(plan.CypherQuery)
	if plan.CypherQuery == "" {
		return failedPlan(types.KindMalformedModelOutput, "Invalid JSON response from AI: no cypher_query in response")
	}
	if plan.ResponseType == "" {
		plan.ResponseType = ResponseCypher
	}
	if plan.QueryType == "" {
		plan.QueryType = DefaultQueryType
	}
	if plan.Entities == nil {
		plan.Entities = []string{}
	}
	if plan.Relationships == nil {
		plan.Relationships = []string{}
	}

	a.logger.DebugContext(ctx, "query generated",
		"query_type", plan.QueryType,
		"cypher", plan.CypherQuery,
	)
	return plan
}

// GenerateAnswer narrates rows for question. At most MaxSampleRows rows are
// shown to the model. When the model fails or replies with something that
// is not the expected JSON object, the templated fallback is returned with
// Success false.
func (a *Assistant) GenerateAnswer(ctx context.Context, question string, rows []map[string]any, queryType, query string) Answer {
	prompt := fmt.Sprintf(answerPromptTemplate, question, query, len(rows), sampleRows(rows))

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			llm.NewSystemMessage(answerSystemPrompt),
			llm.NewUserMessage(prompt),
		},
		Temperature: AnswerTemperature,
		MaxTokens:   AnswerMaxTokens,
		JSONMode:    true,
	})
	if err != nil {
		a.logger.WarnContext(ctx, "answer generation failed", "error", err)
		return fallback(question, rows, queryType,
			types.KindOf(err, types.KindBackendUnreachable), "AI response generation failed: "+err.Error())
	}

	raw, err := decodeObject(resp.Content)
	if err != nil {
		a.logger.WarnContext(ctx, "model returned invalid answer JSON", "error", err)
		return fallback(question, rows, queryType, types.KindMalformedModelOutput, "Invalid JSON response from AI: "+err.Error())
	}

	var answer Answer
	if err := decode(raw, &answer); err != nil || strings.TrimSpace(answer.Answer) == "" {
		msg := "answer missing from response"
		if err != nil {
			msg = err.Error()
		}
		return fallback(question, rows, queryType, types.KindMalformedModelOutput, "Invalid JSON response from AI: "+msg)
	}

	answer.Success = true
	if _, ok := raw["suggested_questions"]; !ok || answer.SuggestedQuestions == nil {
		answer.SuggestedQuestions = Suggestions(question)
	}
	answer.SuggestedQuestions = capSuggestions(answer.SuggestedQuestions)
	return answer
}

func fallback(question string, rows []map[string]any, queryType string, kind types.ErrorKind, msg string) Answer {
	var table any
	if len(rows) > 0 {
		table = rows
	}
	return Answer{
		Success:            false,
		Answer:             FallbackAnswer(question, rows, queryType),
		DataTable:          table,
		SuggestedQuestions: fallbackSuggestions(question, rows),
		Error:              msg,
		Kind:               kind,
	}
}

// decodeObject strips code fences and parses a JSON object.
func decodeObject(text string) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(llm.StripCodeFence(text)), &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("expected a JSON object")
	}
	return raw, nil
}

func decode(input map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		DecodeHook:       labelList,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// labelList decodes model-supplied string lists leniently. Object items
// contribute their name, label or type; items without one are dropped.
func labelList(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf([]string(nil)) {
		return data, nil
	}
	items, ok := data.([]any)
	if !ok {
		return data, nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := labelOf(item); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func labelOf(item any) (string, bool) {
	switch v := item.(type) {
	case string:
		return v, true
	case float64, bool:
		return fmt.Sprint(v), true
	case map[string]any:
		for _, key := range []string{"name", "label", "type"} {
			if s, ok := v[key].(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}
