package graph

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/logicmind/logicmind/internal/types"
)

// Neo4jClient implements GraphClient for Neo4j. The driver is created on
// first use and reused for every later call.
type Neo4jClient struct {
	config GraphClientConfig

	mu     sync.Mutex
	driver neo4j.DriverWithContext
}

// NewNeo4jClient creates a new Neo4j client with the given configuration.
// No network traffic happens until the first call.
func NewNeo4jClient(config GraphClientConfig) (*Neo4jClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Neo4jClient{
		config: config,
	}, nil
}

// Connect creates the driver (if needed) and verifies connectivity.
func (c *Neo4jClient) Connect(ctx context.Context) error {
	driver, err := c.ensureDriver()
	if err != nil {
		return err
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return types.NewRetryableError(types.KindBackendUnreachable,
			"failed to connect to "+c.config.URI, err)
	}
	return nil
}

// Close releases all resources and closes the database connection.
func (c *Neo4jClient) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.driver == nil {
		return nil
	}

	err := c.driver.Close(ctx)
	c.driver = nil
	if err != nil {
		return types.WrapError(types.KindBackendUnreachable, "failed to close driver", err)
	}
	return nil
}

// Health verifies connectivity with a bounded timeout. No query is run.
func (c *Neo4jClient) Health(ctx context.Context) types.HealthStatus {
	start := time.Now()

	driver, err := c.ensureDriver()
	if err != nil {
		return types.Unhealthy(err.Error())
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := driver.VerifyConnectivity(healthCtx); err != nil {
		return types.Unhealthy(fmt.Sprintf("connectivity check failed: %v", err)).WithLatency(time.Since(start))
	}

	return types.Healthy("connected to " + c.config.URI).WithLatency(time.Since(start))
}

// Query executes a Cypher statement in a single explicit read transaction.
// Failures are returned as-is; the statement is never retried.
func (c *Neo4jClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	driver, err := c.ensureDriver()
	if err != nil {
		return QueryResult{}, err
	}

	startTime := time.Now()

	session := driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.config.Database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	tx, err := session.BeginTransaction(ctx)
	if err != nil {
		return QueryResult{}, classifyError(err)
	}
	defer tx.Close(ctx)

	result, err := collect(ctx, tx, cypher, params)
	if err != nil {
		return QueryResult{}, classifyError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return QueryResult{}, classifyError(err)
	}

	result.Summary.ExecutionTime = time.Since(startTime)
	return result, nil
}

// Exec executes a Cypher statement in a managed write transaction. The
// driver retries transient failures for up to MaxTransactionRetryTime.
func (c *Neo4jClient) Exec(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	driver, err := c.ensureDriver()
	if err != nil {
		return QueryResult{}, err
	}

	startTime := time.Now()

	session := driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.config.Database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return collect(ctx, tx, cypher, params)
	})
	if err != nil {
		return QueryResult{}, classifyError(err)
	}

	queryResult := result.(QueryResult)
	queryResult.Summary.ExecutionTime = time.Since(startTime)

	return queryResult, nil
}

// runner is satisfied by both explicit and managed transactions.
type runner interface {
	Run(ctx context.Context, cypher string, params map[string]any) (neo4j.ResultWithContext, error)
}

func collect(ctx context.Context, tx runner, cypher string, params map[string]any) (QueryResult, error) {
	neoResult, err := tx.Run(ctx, cypher, params)
	if err != nil {
		return QueryResult{}, err
	}

	records, err := neoResult.Collect(ctx)
	if err != nil {
		return QueryResult{}, err
	}

	summary, err := neoResult.Consume(ctx)
	if err != nil {
		return QueryResult{}, err
	}

	return convertNeo4jResult(records, summary), nil
}

func (c *Neo4jClient) ensureDriver() (neo4j.DriverWithContext, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.driver != nil {
		return c.driver, nil
	}

	auth := neo4j.BasicAuth(c.config.Username, c.config.Password, "")
	driver, err := neo4j.NewDriverWithContext(c.config.URI, auth, func(config *neo4j.Config) {
		if c.config.MaxConnectionPoolSize > 0 {
			config.MaxConnectionPoolSize = c.config.MaxConnectionPoolSize
		}
		config.ConnectionAcquisitionTimeout = c.config.ConnectionTimeout
		config.SocketConnectTimeout = c.config.ConnectionTimeout
		config.MaxTransactionRetryTime = c.config.MaxTransactionRetryTime
	})
	if err != nil {
		return nil, types.WrapError(types.KindBackendUnreachable, "failed to create driver for "+c.config.URI, err)
	}

	c.driver = driver
	return driver, nil
}

// classifyError maps driver errors onto error kinds. Server-side failures are
// query failures; everything that prevents talking to the server is a
// connectivity failure.
func classifyError(err error) error {
	switch {
	case neo4j.IsNeo4jError(err):
		var neoErr *neo4j.Neo4jError
		if errors.As(err, &neoErr) && isAuthError(neoErr.Code) {
			return types.WrapError(types.KindBackendUnreachable, "authentication failed", err)
		}
		return types.WrapError(types.KindQueryExecutionFailure, "query execution failed", err)
	case neo4j.IsConnectivityError(err),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return types.NewRetryableError(types.KindBackendUnreachable, "graph database unreachable", err)
	case neo4j.IsUsageError(err):
		return types.WrapError(types.KindQueryExecutionFailure, "invalid query usage", err)
	default:
		return types.WrapError(types.KindBackendUnreachable, "graph operation failed", err)
	}
}

func isAuthError(code string) bool {
	switch code {
	case "Neo.ClientError.Security.Unauthorized",
		"Neo.ClientError.Security.AuthenticationRateLimit",
		"Neo.ClientError.Security.CredentialsExpired":
		return true
	}
	return false
}

// convertNeo4jResult converts Neo4j records and summary to a QueryResult with
// every value normalized to plain Go data.
func convertNeo4jResult(records []*neo4j.Record, summary neo4j.ResultSummary) QueryResult {
	result := QueryResult{
		Records: make([]map[string]any, 0, len(records)),
		Columns: []string{},
	}

	if len(records) > 0 {
		result.Columns = records[0].Keys
	}

	for _, record := range records {
		result.Records = append(result.Records, NormalizeRecord(record.Keys, record.Values))
	}

	if summary != nil && summary.Counters() != nil {
		counters := summary.Counters()
		result.Summary = QuerySummary{
			NodesCreated:         counters.NodesCreated(),
			NodesDeleted:         counters.NodesDeleted(),
			RelationshipsCreated: counters.RelationshipsCreated(),
			RelationshipsDeleted: counters.RelationshipsDeleted(),
			PropertiesSet:        counters.PropertiesSet(),
			ConstraintsAdded:     counters.ConstraintsAdded(),
		}
	}

	return result
}
