package graph

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/logicmind/logicmind/internal/types"
)

// ExecuteResult is the tagged outcome of Store.Execute. It is never paired
// with an error: failures are described by Success, Error and Kind.
type ExecuteResult struct {
	Success bool             `json:"success"`
	Data    []map[string]any `json:"data"`
	Count   int              `json:"count"`
	Error   string           `json:"error,omitempty"`
	Kind    types.ErrorKind  `json:"kind,omitempty"`
}

// QueryObserver receives the latency and outcome of every executed statement.
type QueryObserver interface {
	ObserveGraphQuery(d time.Duration, kind types.ErrorKind)
}

// Store is the query-execution surface used by the rest of the application.
type Store struct {
	client   GraphClient
	logger   *slog.Logger
	observer QueryObserver
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used by the store.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithQueryObserver registers an observer for statement latency.
func WithQueryObserver(o QueryObserver) StoreOption {
	return func(s *Store) {
		s.observer = o
	}
}

// NewStore wraps a GraphClient.
func NewStore(client GraphClient, opts ...StoreOption) *Store {
	s := &Store{
		client: client,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Client returns the underlying GraphClient.
func (s *Store) Client() GraphClient {
	return s.client
}

// Execute runs a read query and returns its rows. Failures of any kind,
// including panics inside the driver, are captured in the result.
func (s *Store) Execute(ctx context.Context, query string, params map[string]any) (res ExecuteResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = failure(types.KindQueryExecutionFailure, fmt.Sprintf("graph client panic: %v", r))
		}
		if s.observer != nil {
			s.observer.ObserveGraphQuery(time.Since(start), res.Kind)
		}
	}()

	if params == nil {
		params = map[string]any{}
	}

	result, err := s.client.Query(ctx, query, params)
	if err != nil {
		kind := types.KindOf(err, types.KindQueryExecutionFailure)
		s.logger.WarnContext(ctx, "graph query failed",
			"kind", kind,
			"error", err,
		)
		return failure(kind, err.Error())
	}

	s.logger.DebugContext(ctx, "graph query executed",
		"rows", len(result.Records),
		"duration", result.Summary.ExecutionTime,
	)

	return ExecuteResult{
		Success: true,
		Data:    result.Records,
		Count:   len(result.Records),
	}
}

// TestConnection reports whether the database answers a connectivity probe.
func (s *Store) TestConnection(ctx context.Context) bool {
	status := s.client.Health(ctx)
	if !status.IsHealthy() {
		s.logger.WarnContext(ctx, "graph connection test failed", "message", status.Message)
	}
	return status.IsHealthy()
}

// LabelCount is the number of nodes carrying a given primary label.
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

const summaryQuery = `
MATCH (n)
RETURN labels(n)[0] AS label, count(n) AS count
ORDER BY label`

// Summary returns node counts grouped by first label. An empty slice is
// returned when the query fails.
func (s *Store) Summary(ctx context.Context) []LabelCount {
	counts, err := CountByLabel(ctx, s.client)
	if err != nil {
		s.logger.WarnContext(ctx, "graph summary failed", "error", err)
		return []LabelCount{}
	}
	return counts
}

// CountByLabel returns node counts grouped by first label.
func CountByLabel(ctx context.Context, client GraphClient) ([]LabelCount, error) {
	result, err := client.Query(ctx, summaryQuery, map[string]any{})
	if err != nil {
		return nil, err
	}
	return labelCounts(result.Records), nil
}

func labelCounts(rows []map[string]any) []LabelCount {
	counts := make([]LabelCount, 0, len(rows))
	for _, row := range rows {
		label, _ := row["label"].(string)
		counts = append(counts, LabelCount{Label: label, Count: toInt64(row["count"])})
	}
	return counts
}

const sampleEmployeesQuery = `
MATCH (e:Employee)
OPTIONAL MATCH (e)-[:HAS_DESIGNATION]->(d:Designation)
RETURN e.emp_id AS emp_id, e.name AS name, d.name AS designation
ORDER BY emp_id
LIMIT $limit`

// SampleEmployees returns up to limit employees with their designation.
func (s *Store) SampleEmployees(ctx context.Context, limit int) []map[string]any {
	if limit <= 0 {
		limit = 5
	}
	res := s.Execute(ctx, sampleEmployeesQuery, map[string]any{"limit": limit})
	if !res.Success {
		return []map[string]any{}
	}
	return res.Data
}

// SchemaInfo lists the labels and relationship types present in the database.
type SchemaInfo struct {
	Labels        []string `json:"labels"`
	Relationships []string `json:"relationships"`
}

// SchemaInfo reads the labels and relationship types known to the database.
func (s *Store) SchemaInfo(ctx context.Context) SchemaInfo {
	info := SchemaInfo{Labels: []string{}, Relationships: []string{}}

	labels := s.Execute(ctx, "CALL db.labels() YIELD label RETURN collect(label) AS labels", nil)
	if labels.Success && len(labels.Data) > 0 {
		info.Labels = toStrings(labels.Data[0]["labels"])
	}

	rels := s.Execute(ctx,
		"CALL db.relationshipTypes() YIELD relationshipType RETURN collect(relationshipType) AS relationships", nil)
	if rels.Success && len(rels.Data) > 0 {
		info.Relationships = toStrings(rels.Data[0]["relationships"])
	}

	return info
}

func failure(kind types.ErrorKind, msg string) ExecuteResult {
	return ExecuteResult{
		Success: false,
		Data:    []map[string]any{},
		Count:   0,
		Error:   msg,
		Kind:    kind,
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func toStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
