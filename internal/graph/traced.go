package graph

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/logicmind/logicmind/internal/types"
)

// Span names emitted by TracedClient.
const (
	SpanGraphQuery = "logicmind.graph.query"
	SpanGraphExec  = "logicmind.graph.exec"
	SpanGraphPing  = "logicmind.graph.health"
)

// TracedClient wraps a GraphClient with OpenTelemetry spans.
type TracedClient struct {
	inner  GraphClient
	tracer trace.Tracer
}

// NewTracedClient decorates inner with spans created by tracer.
func NewTracedClient(inner GraphClient, tracer trace.Tracer) *TracedClient {
	return &TracedClient{inner: inner, tracer: tracer}
}

func (c *TracedClient) Connect(ctx context.Context) error {
	return c.inner.Connect(ctx)
}

func (c *TracedClient) Close(ctx context.Context) error {
	return c.inner.Close(ctx)
}

func (c *TracedClient) Health(ctx context.Context) types.HealthStatus {
	ctx, span := c.tracer.Start(ctx, SpanGraphPing)
	defer span.End()

	status := c.inner.Health(ctx)
	span.SetAttributes(attribute.String("logicmind.graph.health", status.State.String()))
	if !status.IsHealthy() {
		span.SetStatus(codes.Error, status.Message)
	}
	return status
}

func (c *TracedClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	return c.traced(ctx, SpanGraphQuery, cypher, params, c.inner.Query)
}

func (c *TracedClient) Exec(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	return c.traced(ctx, SpanGraphExec, cypher, params, c.inner.Exec)
}

type runFunc func(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)

func (c *TracedClient) traced(ctx context.Context, name, cypher string, params map[string]any, run runFunc) (QueryResult, error) {
	ctx, span := c.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("db.system", "neo4j"),
		attribute.String("db.statement", cypher),
		attribute.Int("logicmind.graph.param_count", len(params)),
	)

	result, err := run(ctx, cypher, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("logicmind.error_kind",
			types.KindOf(err, types.KindQueryExecutionFailure).String()))
		return result, err
	}

	span.SetAttributes(
		attribute.Int("logicmind.graph.rows", len(result.Records)),
		attribute.Int64("logicmind.graph.duration_ms", result.Summary.ExecutionTime.Milliseconds()),
	)
	span.SetStatus(codes.Ok, "")
	return result, nil
}
