package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/logicmind/logicmind/internal/config"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	return entry
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LoggingConfig{Level: "info", Format: "json"}, &buf)

	logger.Info("graph query executed", "rows", 3)

	entry := decodeLine(t, &buf)
	assert.Equal(t, "graph query executed", entry["msg"])
	assert.Equal(t, float64(3), entry["rows"])

	buf.Reset()
	logger = NewLogger(config.LoggingConfig{Level: "info", Format: "text"}, &buf)
	logger.Info("hello", "k", "v")
	assert.True(t, strings.Contains(buf.String(), "msg=hello"))
	assert.Contains(t, buf.String(), "k=v")
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestTracedLogger_Redaction(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTracedLogger(NewJSONHandler(&buf, slog.LevelDebug))

	logger.With("api_key", "sk-123").Info("calling model",
		"password", "hunter2",
		"Token", "abc",
		"prompt", "Who knows Python?",
		"model", "gpt-4o-mini",
		slog.Group("graph", "password", "pw", "uri", "bolt://localhost:7687"),
	)

	out := buf.String()
	for _, secret := range []string{"sk-123", "hunter2", "abc", "Who knows Python?", `"pw"`} {
		assert.NotContains(t, out, secret)
	}

	entry := decodeLine(t, &buf)
	assert.Equal(t, redacted, entry["api_key"])
	assert.Equal(t, redacted, entry["password"])
	assert.Equal(t, "gpt-4o-mini", entry["model"])
	group := entry["graph"].(map[string]any)
	assert.Equal(t, redacted, group["password"])
	assert.Equal(t, "bolt://localhost:7687", group["uri"])
}

func TestTracedLogger_TraceCorrelation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTracedLogger(NewJSONHandler(&buf, slog.LevelInfo))

	logger.InfoContext(context.Background(), "no span")
	entry := decodeLine(t, &buf)
	assert.NotContains(t, entry, "trace_id")

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	buf.Reset()
	logger.InfoContext(ctx, "with span")
	entry = decodeLine(t, &buf)
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), entry["span_id"])
}
