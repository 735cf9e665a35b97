// Package observability wires logging, tracing and metrics for LogicMind.
//
// Logging uses log/slog. NewLogger builds a JSON or text logger from the
// logging configuration; the returned logger correlates every record with
// the OpenTelemetry span found in its context and redacts credential and
// prompt values.
//
// Tracing uses the OpenTelemetry SDK. InitTracing returns a provider that
// exports over OTLP gRPC when tracing is enabled and records nothing
// otherwise. Graph operations, model completions and questions are traced
// by their own packages through the tracer obtained from the provider.
//
// Metrics are Prometheus collectors kept in a private registry. Metrics
// implements the observer interfaces of the graph store, the loader, the
// model client and the pipeline, and Handler exposes the registry for
// scraping.
package observability
