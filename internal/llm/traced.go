package llm

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/logicmind/logicmind/internal/types"
)

// SpanLLMComplete is the span emitted around every completion.
const SpanLLMComplete = "logicmind.llm.complete"

// CompletionObserver receives the latency and outcome of every completion.
type CompletionObserver interface {
	ObserveCompletion(provider string, d time.Duration, kind types.ErrorKind)
}

// TracedProvider decorates an LLMProvider with spans and an optional
// CompletionObserver.
type TracedProvider struct {
	inner    LLMProvider
	tracer   trace.Tracer
	observer CompletionObserver
}

// NewTracedProvider wraps inner. observer may be nil.
func NewTracedProvider(inner LLMProvider, tracer trace.Tracer, observer CompletionObserver) *TracedProvider {
	return &TracedProvider{inner: inner, tracer: tracer, observer: observer}
}

func (p *TracedProvider) Name() string {
	return p.inner.Name()
}

func (p *TracedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	ctx, span := p.tracer.Start(ctx, SpanLLMComplete, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("gen_ai.system", p.inner.Name()),
		attribute.String("gen_ai.request.model", req.Model),
		attribute.Float64("gen_ai.request.temperature", req.Temperature),
		attribute.Int("gen_ai.request.max_tokens", req.MaxTokens),
		attribute.Int("logicmind.llm.message_count", len(req.Messages)),
	)

	start := time.Now()
	resp, err := p.inner.Complete(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		kind := types.KindOf(err, types.KindBackendUnreachable)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(
			attribute.String("logicmind.error_kind", kind.String()),
			attribute.Bool("logicmind.retryable", types.IsRetryable(err)),
		)
		p.observe(elapsed, kind)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("gen_ai.response.model", resp.Model),
		attribute.String("gen_ai.response.finish_reason", string(resp.FinishReason)),
		attribute.Int("logicmind.llm.response_chars", len(resp.Content)),
	)
	span.SetStatus(codes.Ok, "")
	p.observe(elapsed, types.KindNone)
	return resp, nil
}

func (p *TracedProvider) Health(ctx context.Context) types.HealthStatus {
	return p.inner.Health(ctx)
}

func (p *TracedProvider) observe(d time.Duration, kind types.ErrorKind) {
	if p.observer != nil {
		p.observer.ObserveCompletion(p.inner.Name(), d, kind)
	}
}
