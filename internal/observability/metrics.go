package observability

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/logicmind/logicmind/internal/pipeline"
	"github.com/logicmind/logicmind/internal/types"
)

const metricsNamespace = "logicmind"

// Metrics holds the Prometheus collectors for LogicMind. It implements
// graph.QueryObserver, llm.CompletionObserver, loader.LoadObserver and
// pipeline.QuestionObserver.
type Metrics struct {
	registry *prometheus.Registry

	questionsTotal   *prometheus.CounterVec
	questionDuration prometheus.Histogram

	graphQueriesTotal  *prometheus.CounterVec
	graphQueryDuration prometheus.Histogram

	llmRequestsTotal   *prometheus.CounterVec
	llmRequestDuration *prometheus.HistogramVec

	loadRunsTotal *prometheus.CounterVec
	loadDuration  prometheus.Histogram
}

// NewMetrics creates the collectors in a fresh registry, alongside the Go
// runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		questionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "questions_total",
			Help:      "Questions answered, by final state",
		}, []string{"state"}),
		questionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "question_duration_seconds",
			Help:      "Time to resolve a question end to end",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		graphQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "graph_queries_total",
			Help:      "Graph queries executed, by outcome",
		}, []string{"outcome"}),
		graphQueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "graph_query_duration_seconds",
			Help:      "Graph query latency",
			Buckets:   prometheus.DefBuckets,
		}),
		llmRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "llm_requests_total",
			Help:      "Language model completions, by provider and outcome",
		}, []string{"provider", "outcome"}),
		llmRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "llm_request_duration_seconds",
			Help:      "Language model completion latency",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"provider"}),
		loadRunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "load_runs_total",
			Help:      "Workbook loads, by result",
		}, []string{"success"}),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "load_duration_seconds",
			Help:      "Workbook load duration",
			Buckets:   []float64{0.5, 1, 5, 15, 30, 60, 120, 300},
		}),
	}

	m.registry.MustRegister(
		m.questionsTotal, m.questionDuration,
		m.graphQueriesTotal, m.graphQueryDuration,
		m.llmRequestsTotal, m.llmRequestDuration,
		m.loadRunsTotal, m.loadDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveQuestion records a resolved question.
func (m *Metrics) ObserveQuestion(state pipeline.State, d time.Duration) {
	m.questionsTotal.WithLabelValues(state.String()).Inc()
	m.questionDuration.Observe(d.Seconds())
}

// ObserveGraphQuery records an executed graph statement.
func (m *Metrics) ObserveGraphQuery(d time.Duration, kind types.ErrorKind) {
	m.graphQueriesTotal.WithLabelValues(outcome(kind)).Inc()
	m.graphQueryDuration.Observe(d.Seconds())
}

// ObserveCompletion records a language model completion.
func (m *Metrics) ObserveCompletion(provider string, d time.Duration, kind types.ErrorKind) {
	m.llmRequestsTotal.WithLabelValues(provider, outcome(kind)).Inc()
	m.llmRequestDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// ObserveLoad records a finished workbook load.
func (m *Metrics) ObserveLoad(d time.Duration, success bool) {
	m.loadRunsTotal.WithLabelValues(strconv.FormatBool(success)).Inc()
	m.loadDuration.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Serve exposes /metrics on port until ctx is done.
func (m *Metrics) Serve(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(port)),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics server shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func outcome(kind types.ErrorKind) string {
	if kind == types.KindNone {
		return "success"
	}
	return kind.String()
}
