package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logicmind/logicmind/internal/types"
)

func TestGraphClientConfig_Validate(t *testing.T) {
	valid := GraphClientConfig{
		URI:                     "bolt://localhost:7687",
		Username:                "neo4j",
		Password:                "password",
		ConnectionTimeout:       30 * time.Second,
		MaxTransactionRetryTime: 30 * time.Second,
	}

	tests := []struct {
		name    string
		mutate  func(c *GraphClientConfig)
		wantErr bool
	}{
		{name: "valid config", mutate: func(c *GraphClientConfig) {}},
		{name: "empty password is allowed", mutate: func(c *GraphClientConfig) { c.Password = "" }},
		{name: "empty URI", mutate: func(c *GraphClientConfig) { c.URI = "" }, wantErr: true},
		{name: "empty username", mutate: func(c *GraphClientConfig) { c.Username = "" }, wantErr: true},
		{name: "zero connection timeout", mutate: func(c *GraphClientConfig) { c.ConnectionTimeout = 0 }, wantErr: true},
		{name: "negative retry time", mutate: func(c *GraphClientConfig) { c.MaxTransactionRetryTime = -time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, types.KindConfigurationMissing, types.KindOf(err, types.KindNone))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "bolt://localhost:7687", cfg.URI)
	assert.Equal(t, "neo4j", cfg.Username)
	assert.Equal(t, 30*time.Second, cfg.ConnectionTimeout)
	assert.Equal(t, 30*time.Second, cfg.MaxTransactionRetryTime)
	require.NoError(t, cfg.Validate())
}

func TestNewNeo4jClient_RejectsInvalidConfig(t *testing.T) {
	_, err := NewNeo4jClient(GraphClientConfig{})
	require.Error(t, err)
}

func TestNewNeo4jClient_IsLazy(t *testing.T) {
	// Nothing listens on this port; construction must not dial.
	cfg := DefaultConfig()
	cfg.URI = "bolt://127.0.0.1:1"

	client, err := NewNeo4jClient(cfg)
	require.NoError(t, err)
	assert.Nil(t, client.driver)
}
