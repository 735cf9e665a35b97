package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/logicmind/logicmind/internal/config"
	"github.com/logicmind/logicmind/internal/graph"
	"github.com/logicmind/logicmind/internal/llm/providers"
)

// testBackends are the mocks behind a test runtime.
type testBackends struct {
	cfg      *config.Config
	graph    *graph.MockGraphClient
	provider *providers.MockProvider
}

// useMockRuntime makes every command build its runtime over mock backends.
func useMockRuntime(t *testing.T) *testBackends {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.LLM.APIKey = "sk-test"

	b := &testBackends{
		cfg:      cfg,
		graph:    graph.NewMockGraphClient(),
		provider: providers.NewMockProvider(),
	}

	prev := buildRuntime
	buildRuntime = func(cmd *cobra.Command) (*runtime, error) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		return assemble(cmd, b.cfg, logger, sdktrace.NewTracerProvider(), b.graph, b.provider), nil
	}
	t.Cleanup(func() { buildRuntime = prev })

	return b
}

// withFlags replaces the global flags for the duration of the test.
func withFlags(t *testing.T, flags GlobalFlags) {
	t.Helper()
	prev := *globalFlags
	*globalFlags = flags
	t.Cleanup(func() { *globalFlags = prev })
}

// newTestCommand returns a command with captured output and the given input.
func newTestCommand(input string) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetContext(context.Background())
	return cmd, out
}
