package graph

import (
	"context"
	"sync"

	"github.com/logicmind/logicmind/internal/types"
)

// MockCall represents a recorded call on the mock graph client.
type MockCall struct {
	Method string
	Cypher string
	Params map[string]any
}

// MockGraphClient is an in-memory GraphClient for tests. Results are
// returned in FIFO order; a per-call handler can be installed instead.
type MockGraphClient struct {
	mu sync.Mutex

	healthStatus types.HealthStatus
	results      []QueryResult
	errs         []error
	handler      func(method, cypher string, params map[string]any) (QueryResult, error)
	calls        []MockCall
	closed       bool
}

// NewMockGraphClient creates a mock that reports itself healthy.
func NewMockGraphClient() *MockGraphClient {
	return &MockGraphClient{
		healthStatus: types.Healthy("mock graph client"),
	}
}

// AddQueryResult queues a successful result.
func (m *MockGraphClient) AddQueryResult(result QueryResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
	m.errs = append(m.errs, nil)
}

// AddQueryError queues a failure.
func (m *MockGraphClient) AddQueryError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, QueryResult{})
	m.errs = append(m.errs, err)
}

// SetHandler installs a function answering every Query and Exec call.
// Queued results are ignored while a handler is set.
func (m *MockGraphClient) SetHandler(h func(method, cypher string, params map[string]any) (QueryResult, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = h
}

// SetHealth sets the status returned by Health.
func (m *MockGraphClient) SetHealth(status types.HealthStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthStatus = status
}

// Calls returns a copy of the recorded calls.
func (m *MockGraphClient) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsByMethod returns the recorded calls for one method.
func (m *MockGraphClient) CallsByMethod(method string) []MockCall {
	var out []MockCall
	for _, c := range m.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (m *MockGraphClient) Connect(ctx context.Context) error {
	m.record("Connect", "", nil)
	return nil
}

func (m *MockGraphClient) Close(ctx context.Context) error {
	m.record("Close", "", nil)
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

func (m *MockGraphClient) Health(ctx context.Context) types.HealthStatus {
	m.record("Health", "", nil)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.healthStatus
}

func (m *MockGraphClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	return m.next("Query", cypher, params)
}

func (m *MockGraphClient) Exec(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	return m.next("Exec", cypher, params)
}

func (m *MockGraphClient) next(method, cypher string, params map[string]any) (QueryResult, error) {
	m.record(method, cypher, params)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handler != nil {
		return m.handler(method, cypher, params)
	}

	if len(m.results) == 0 {
		return QueryResult{Records: []map[string]any{}, Columns: []string{}}, nil
	}

	result, err := m.results[0], m.errs[0]
	m.results, m.errs = m.results[1:], m.errs[1:]
	return result, err
}

func (m *MockGraphClient) record(method, cypher string, params map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Method: method, Cypher: cypher, Params: params})
}
