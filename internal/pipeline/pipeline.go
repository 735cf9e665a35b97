// Package pipeline answers one question at a time: it asks the model for a
// query, runs it against the graph, narrates the rows and records the
// exchange in the session history.
package pipeline

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/logicmind/logicmind/internal/assistant"
	"github.com/logicmind/logicmind/internal/graph"
	"github.com/logicmind/logicmind/internal/types"
)

// SpanAsk is the span emitted around every question.
const SpanAsk = "logicmind.pipeline.ask"

// Translator synthesizes queries and narrates their results.
type Translator interface {
	GenerateQuery(ctx context.Context, question string) assistant.QueryPlan
	GenerateAnswer(ctx context.Context, question string, rows []map[string]any, queryType, query string) assistant.Answer
}

// Executor runs a query and reports a tagged result.
type Executor interface {
	Execute(ctx context.Context, query string, params map[string]any) graph.ExecuteResult
}

// QuestionObserver receives the outcome of each question.
type QuestionObserver interface {
	ObserveQuestion(state State, d time.Duration)
}

// Pipeline wires a Translator to an Executor.
type Pipeline struct {
	translator Translator
	executor   Executor
	logger     *slog.Logger
	tracer     trace.Tracer
	observer   QuestionObserver
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithTracer sets the tracer used for question spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Pipeline) {
		p.tracer = tracer
	}
}

// WithQuestionObserver registers an observer for question outcomes.
func WithQuestionObserver(o QuestionObserver) Option {
	return func(p *Pipeline) {
		p.observer = o
	}
}

// New creates a Pipeline.
func New(translator Translator, executor Executor, opts ...Option) *Pipeline {
	p := &Pipeline{
		translator: translator,
		executor:   executor,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:     noop.NewTracerProvider().Tracer("logicmind/pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ask resolves question within session and returns the recorded assistant
// turn. The user turn is recorded first. Concurrent calls on the same
// session run one after the other.
func (p *Pipeline) Ask(ctx context.Context, session *Session, question string) Turn {
	session.askMu.Lock()
	defer session.askMu.Unlock()

	start := time.Now()
	ctx, span := p.tracer.Start(ctx, SpanAsk)
	defer span.End()

	user := newTurn(RoleUser, question)
	user.State = StateReceived
	session.record(user)

	turn := p.resolve(ctx, session, question)
	session.record(turn)

	span.SetAttributes(
		attribute.String("logicmind.pipeline.state", turn.State.String()),
		attribute.Int("logicmind.pipeline.records", turn.RecordCount),
		attribute.Bool("logicmind.pipeline.query_executed", turn.QueryExecuted),
	)
	if turn.Kind != types.KindNone {
		span.SetAttributes(attribute.String("logicmind.error_kind", turn.Kind.String()))
		span.SetStatus(codes.Error, turn.Error)
	} else {
		span.SetStatus(codes.Ok, "")
	}

	if p.observer != nil {
		p.observer.ObserveQuestion(turn.State, time.Since(start))
	}

	p.logger.InfoContext(ctx, "question answered",
		"session", session.ID,
		"state", turn.State,
		"kind", turn.Kind,
		"records", turn.RecordCount,
		"duration", time.Since(start),
	)
	return turn
}

func (p *Pipeline) resolve(ctx context.Context, session *Session, question string) Turn {
	if missing := session.Settings().Missing(); len(missing) > 0 {
		turn := newTurn(RoleAssistant, configMissingContent(missing))
		turn.State = StateConfigMissing
		turn.Kind = types.KindConfigurationMissing
		turn.Error = configMissingMessage
		return turn
	}

	plan := p.translator.GenerateQuery(ctx, question)
	if !plan.Success {
		turn := newTurn(RoleAssistant, synthesisFailedContent(plan.Error))
		turn.State = StateSynthesisFailed
		turn.Kind = plan.Kind
		turn.Error = plan.Error
		return turn
	}

	if plan.ResponseType.Conversational() {
		msg := plan.Message
		if msg == "" {
			msg = defaultSmalltalk
		}
		turn := newTurn(RoleAssistant, conversationalContent(msg))
		turn.Answer = msg
		turn.State = StateSmalltalkDone
		if plan.ResponseType == assistant.ResponseError {
			turn.State = StateOutOfScope
		}
		return turn
	}

	query := plan.CypherQuery
	p.logger.DebugContext(ctx, "executing generated query", "state", StateQuerySynthesized, "query", query)

	res := p.executor.Execute(ctx, query, nil)
	if !res.Success {
		turn := newTurn(RoleAssistant, executionFailedContent(query, res.Error))
		turn.Query = query
		turn.State = StateExecutionFailed
		turn.Kind = res.Kind
		turn.Error = res.Error
		return turn
	}

	answer := p.translator.GenerateAnswer(ctx, question, res.Data, plan.QueryType, query)
	text := answer.Answer
	if !answer.Success {
		p.logger.WarnContext(ctx, "narration fell back to template", "kind", answer.Kind, "error", answer.Error)
		if text == "" {
			text = assistant.FallbackAnswer(question, res.Data, plan.QueryType)
		}
	}

	turn := newTurn(RoleAssistant, narratedContent(text, query, res.Count))
	turn.Answer = text
	turn.Query = query
	turn.QueryExecuted = true
	turn.RecordCount = res.Count
	turn.Data = res.Data
	turn.Suggestions = answer.SuggestedQuestions
	turn.State = StateNarrated
	return turn
}
