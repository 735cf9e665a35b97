package graph

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logicmind/logicmind/internal/types"
)

// closedPort returns a local address nothing listens on.
func closedPort(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestNeo4jClient_QueryFailsWithoutRetrying(t *testing.T) {
	cfg := DefaultConfig()
	cfg.URI = "bolt://" + closedPort(t)
	cfg.ConnectionTimeout = time.Second
	cfg.MaxTransactionRetryTime = 30 * time.Second

	client, err := NewNeo4jClient(cfg)
	require.NoError(t, err)
	defer client.Close(context.Background())

	start := time.Now()
	_, err = client.Query(context.Background(), "RETURN 1", nil)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Equal(t, types.KindBackendUnreachable, types.KindOf(err, types.KindNone))
	assert.Less(t, elapsed, 10*time.Second, "a failed read is reported on the first attempt")
}
