package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return recorder, tp
}

func TestTracedClient_Query(t *testing.T) {
	recorder, tp := newRecorder()
	mock := NewMockGraphClient()
	mock.AddQueryResult(QueryResult{Records: []map[string]any{{"n": 1}}})

	client := NewTracedClient(mock, tp.Tracer("test"))
	_, err := client.Query(context.Background(), "RETURN 1 AS n", nil)
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, SpanGraphQuery, spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
}

func TestTracedClient_ExecRecordsError(t *testing.T) {
	recorder, tp := newRecorder()
	mock := NewMockGraphClient()
	mock.AddQueryError(errors.New("constraint violation"))

	client := NewTracedClient(mock, tp.Tracer("test"))
	_, err := client.Exec(context.Background(), "CREATE (n:Employee {emp_id: 1})", nil)
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, SpanGraphExec, spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.NotEmpty(t, spans[0].Events(), "error should be recorded as a span event")
}
