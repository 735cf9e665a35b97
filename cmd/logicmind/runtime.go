package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	"github.com/logicmind/logicmind/cmd/logicmind/internal"
	"github.com/logicmind/logicmind/internal/assistant"
	"github.com/logicmind/logicmind/internal/config"
	"github.com/logicmind/logicmind/internal/graph"
	"github.com/logicmind/logicmind/internal/llm"
	"github.com/logicmind/logicmind/internal/llm/providers"
	"github.com/logicmind/logicmind/internal/observability"
	"github.com/logicmind/logicmind/internal/pipeline"
	"github.com/logicmind/logicmind/internal/tui"
	"github.com/logicmind/logicmind/internal/types"
)

// runtime holds every component a command needs, built from one
// configuration snapshot.
type runtime struct {
	cfg     *config.Config
	logger  *slog.Logger
	out     internal.Formatter
	metrics *observability.Metrics

	graph     graph.GraphClient
	store     *graph.Store
	assistant *assistant.Assistant
	pipeline  *pipeline.Pipeline

	tracerProvider *sdktrace.TracerProvider
	stopMetrics    context.CancelFunc
	metricsDone    chan error
}

// buildRuntime is replaced in tests to inject mock backends.
var buildRuntime = newRuntime

func newRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := observability.NewLogger(cfg.Logging, cmd.ErrOrStderr())

	tp, err := observability.InitTracing(cmd.Context(), cfg.Tracing, Version)
	if err != nil {
		return nil, internal.WrapError(internal.ExitConfigError, "failed to initialize tracing", err)
	}

	return assemble(cmd, cfg, logger, tp, openGraph(cfg.Graph), openProvider(cfg.LLM)), nil
}

// assemble wires the components around the given backends.
func assemble(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, tp *sdktrace.TracerProvider,
	graphClient graph.GraphClient, provider llm.LLMProvider) *runtime {
	tracer := observability.Tracer(tp)
	metrics := observability.NewMetrics()

	client := graph.NewTracedClient(graphClient, tracer)
	store := graph.NewStore(client,
		graph.WithLogger(logger),
		graph.WithQueryObserver(metrics),
	)
	asst := assistant.New(llm.NewTracedProvider(provider, tracer, metrics),
		assistant.WithLogger(logger),
	)
	pipe := pipeline.New(asst, store,
		pipeline.WithLogger(logger),
		pipeline.WithTracer(tracer),
		pipeline.WithQuestionObserver(metrics),
	)

	rt := &runtime{
		cfg:            cfg,
		logger:         logger,
		out:            internal.NewFormatter(globalFlags.GetOutputFormat(), cmd.OutOrStdout()),
		metrics:        metrics,
		graph:          client,
		store:          store,
		assistant:      asst,
		pipeline:       pipe,
		tracerProvider: tp,
	}

	if cfg.Metrics.Enabled {
		ctx, cancel := context.WithCancel(cmd.Context())
		rt.stopMetrics = cancel
		rt.metricsDone = make(chan error, 1)
		go func() {
			rt.metricsDone <- metrics.Serve(ctx, cfg.Metrics.Port)
		}()
		logger.Debug("metrics endpoint started", "port", cfg.Metrics.Port)
	}

	return rt
}

// Close stops the metrics endpoint, releases the driver and flushes spans.
func (rt *runtime) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if rt.stopMetrics != nil {
		rt.stopMetrics()
		if err := <-rt.metricsDone; err != nil {
			rt.logger.Warn("metrics endpoint stopped with error", "error", err)
		}
	}
	if err := rt.graph.Close(ctx); err != nil {
		rt.logger.Warn("failed to close graph client", "error", err)
	}
	if err := observability.ShutdownTracing(ctx, rt.tracerProvider); err != nil {
		rt.logger.Warn("failed to flush traces", "error", err)
	}
}

// newSession opens a session over the effective settings.
func (rt *runtime) newSession() *pipeline.Session {
	return pipeline.NewSession(pipeline.Settings{
		Provider: rt.cfg.LLM.Provider,
		Model:    rt.cfg.LLM.Model,
		APIKey:   effectiveAPIKey(rt.cfg.LLM),
		GraphURI: rt.cfg.Graph.URI,
	})
}

// testConnections probes both backends concurrently.
func (rt *runtime) testConnections(ctx context.Context) tui.ConnectionStatus {
	var status tui.ConnectionStatus

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		status.Graph = rt.store.TestConnection(gctx)
		return nil
	})
	g.Go(func() error {
		status.Model = rt.assistant.TestConnection(gctx)
		return nil
	})
	_ = g.Wait()

	return status
}

// loadConfig resolves the config path, loads it over the defaults and
// applies the connection flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader := config.NewConfigLoader(config.NewValidator())
	cfg, err := loader.LoadWithDefaults(configPath())
	if err != nil {
		return nil, internal.WrapError(internal.ExitConfigError, "failed to load config", err)
	}

	globalFlags.ApplyOverrides(cfg)
	if err := config.NewValidator().Validate(cfg); err != nil {
		return nil, internal.WrapError(internal.ExitConfigError, "invalid configuration", err)
	}
	return cfg, nil
}

// homeDir returns --home, then $LOGICMIND_HOME, then ~/.logicmind.
func homeDir() string {
	if globalFlags.HomeDir != "" {
		return globalFlags.HomeDir
	}
	if env := os.Getenv("LOGICMIND_HOME"); env != "" {
		return env
	}
	return config.DefaultHomeDir()
}

// configPath returns --config or the config file inside the home directory.
func configPath() string {
	if globalFlags.ConfigFile != "" {
		return globalFlags.ConfigFile
	}
	return config.DefaultConfigPath(homeDir())
}

// effectiveAPIKey returns the configured key or the provider's conventional
// environment variable.
func effectiveAPIKey(cfg config.LLMConfig) string {
	if cfg.APIKey != "" {
		return cfg.APIKey
	}
	providerType, err := llm.ParseProviderType(cfg.Provider)
	if err != nil {
		return ""
	}
	switch providerType {
	case llm.ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case llm.ProviderGoogle:
		return os.Getenv("GOOGLE_API_KEY")
	default:
		return ""
	}
}

func openGraph(cfg config.GraphConfig) graph.GraphClient {
	client, err := graph.NewNeo4jClient(cfg.ClientConfig())
	if err != nil {
		return unavailableGraph{err: err}
	}
	return client
}

func openProvider(cfg config.LLMConfig) llm.LLMProvider {
	pc, err := cfg.ProviderConfig()
	if err != nil {
		return unavailableProvider{name: cfg.Provider, err: err}
	}
	provider, err := providers.NewProvider(pc)
	if err != nil {
		return unavailableProvider{name: string(pc.Type), err: err}
	}
	return provider
}

// unavailableGraph stands in for a graph client that could not be
// configured. Every operation reports the configuration error.
type unavailableGraph struct {
	err error
}

func (u unavailableGraph) Connect(context.Context) error { return u.fail() }

func (u unavailableGraph) Close(context.Context) error { return nil }

func (u unavailableGraph) Health(context.Context) types.HealthStatus {
	return types.Unhealthy(u.err.Error())
}

func (u unavailableGraph) Query(context.Context, string, map[string]any) (graph.QueryResult, error) {
	return graph.QueryResult{}, u.fail()
}

func (u unavailableGraph) Exec(context.Context, string, map[string]any) (graph.QueryResult, error) {
	return graph.QueryResult{}, u.fail()
}

func (u unavailableGraph) fail() error {
	return types.WrapError(types.KindOf(u.err, types.KindConfigurationMissing), "graph database is not configured", u.err)
}

// unavailableProvider stands in for a language model that could not be
// configured.
type unavailableProvider struct {
	name string
	err  error
}

func (u unavailableProvider) Name() string {
	if u.name == "" {
		return "unconfigured"
	}
	return u.name
}

func (u unavailableProvider) Complete(context.Context, llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return nil, types.WrapError(types.KindOf(u.err, types.KindConfigurationMissing), "language model is not configured", u.err)
}

func (u unavailableProvider) Health(context.Context) types.HealthStatus {
	return types.Unhealthy(u.err.Error())
}

// requireKind converts a failed outcome into a CLI error with the matching
// exit code.
func requireKind(kind types.ErrorKind, message string) error {
	if kind == types.KindNone {
		return nil
	}
	return internal.KindError(kind, message)
}
