package graph

import (
	"context"
	"time"

	"github.com/logicmind/logicmind/internal/types"
)

// GraphClient provides an interface for graph database operations.
// Implementations must be safe for use from multiple goroutines.
type GraphClient interface {
	// Connect establishes the connection eagerly. Query and Exec connect
	// lazily, so calling Connect is optional.
	Connect(ctx context.Context) error

	// Close releases the connection. The client may be reused afterwards;
	// the next call reconnects.
	Close(ctx context.Context) error

	// Health verifies connectivity without running a query.
	Health(ctx context.Context) types.HealthStatus

	// Query executes a Cypher statement in a read transaction.
	Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)

	// Exec executes a Cypher statement in a write transaction.
	Exec(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)
}

// QueryResult represents the result of a Cypher statement.
type QueryResult struct {
	// Records contains the result rows as maps of column name to a JSON-safe value.
	Records []map[string]any

	// Columns contains the names of the columns in the result set.
	Columns []string

	// Summary contains metadata about the execution.
	Summary QuerySummary
}

// QuerySummary provides metadata about statement execution.
type QuerySummary struct {
	ExecutionTime        time.Duration
	NodesCreated         int
	NodesDeleted         int
	RelationshipsCreated int
	RelationshipsDeleted int
	PropertiesSet        int
	ConstraintsAdded     int
}

// GraphClientConfig contains connection options for the graph database.
type GraphClientConfig struct {
	// URI is the Bolt connection URI, e.g. "bolt://localhost:7687" or
	// "neo4j+s://xxxx.databases.neo4j.io". Encryption follows the scheme.
	URI string

	Username string
	Password string

	// Database name; empty selects the server default.
	Database string

	// MaxConnectionPoolSize limits the driver pool. Zero uses the driver default.
	MaxConnectionPoolSize int

	// ConnectionTimeout bounds connection acquisition.
	ConnectionTimeout time.Duration

	// MaxTransactionRetryTime bounds the driver's retries of Exec. Query is
	// never retried.
	MaxTransactionRetryTime time.Duration
}

// DefaultConfig returns a GraphClientConfig for a local Neo4j instance.
func DefaultConfig() GraphClientConfig {
	return GraphClientConfig{
		URI:                     "bolt://localhost:7687",
		Username:                "neo4j",
		Password:                "",
		MaxConnectionPoolSize:   10,
		ConnectionTimeout:       30 * time.Second,
		MaxTransactionRetryTime: 30 * time.Second,
	}
}

// Validate checks that the configuration can be used to open a connection.
func (c GraphClientConfig) Validate() error {
	if c.URI == "" {
		return types.NewError(types.KindConfigurationMissing, "graph URI cannot be empty")
	}
	if c.Username == "" {
		return types.NewError(types.KindConfigurationMissing, "graph username cannot be empty")
	}
	if c.ConnectionTimeout <= 0 {
		return types.NewError(types.KindConfigurationMissing, "graph connection timeout must be positive")
	}
	if c.MaxTransactionRetryTime <= 0 {
		return types.NewError(types.KindConfigurationMissing, "graph transaction retry time must be positive")
	}
	return nil
}
