package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logicmind/logicmind/cmd/logicmind/internal"
	"github.com/logicmind/logicmind/internal/config"
)

func TestGetConfigValue(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LLM.APIKey = "sk-test"

	tests := []struct {
		key       string
		want      string
		wantError string
	}{
		{key: "llm.provider", want: "openai"},
		{key: "llm.api_key", want: "sk-test"},
		{key: "graph.uri", want: "bolt://localhost:7687"},
		{key: "graph.max_connections", want: "10"},
		{key: "graph.connection_timeout", want: "30s"},
		{key: "chat.show_query", want: "true"},
		{key: "graph", wantError: "is a section"},
		{key: "graph.nope", wantError: "invalid configuration key"},
		{key: "llm.provider.name", wantError: "cannot traverse"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := getConfigValue(cfg, tt.key)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetConfigValue(t *testing.T) {
	cfg := config.DefaultConfig()

	require.NoError(t, setConfigValue(cfg, "llm.provider", "google"))
	require.NoError(t, setConfigValue(cfg, "graph.max_connections", "25"))
	require.NoError(t, setConfigValue(cfg, "graph.connection_timeout", "5s"))
	require.NoError(t, setConfigValue(cfg, "tracing.enabled", "yes"))

	assert.Equal(t, "google", cfg.LLM.Provider)
	assert.Equal(t, 25, cfg.Graph.MaxConnections)
	assert.Equal(t, 5*time.Second, cfg.Graph.ConnectionTimeout)
	assert.True(t, cfg.Tracing.Enabled)

	assert.ErrorContains(t, setConfigValue(cfg, "graph.max_connections", "many"), "invalid integer")
	assert.ErrorContains(t, setConfigValue(cfg, "graph.connection_timeout", "soon"), "invalid duration")
	assert.ErrorContains(t, setConfigValue(cfg, "chat.show_query", "maybe"), "invalid boolean")
}

func TestMaskSecrets(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LLM.APIKey = "sk-test"
	cfg.Graph.Password = "hunter2"

	masked := maskSecrets(cfg)

	assert.Equal(t, redactedValue, masked.LLM.APIKey)
	assert.Equal(t, redactedValue, masked.Graph.Password)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey, "the original is not modified")
}

func TestConfigSetAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	withFlags(t, GlobalFlags{OutputFormat: "text", ConfigFile: path})

	cmd, _ := newTestCommand("")
	require.NoError(t, configSetCmd.RunE(cmd, []string{"graph.uri", "neo4j+s://example.databases.neo4j.io"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	cmd, out := newTestCommand("")
	require.NoError(t, configGetCmd.RunE(cmd, []string{"graph.uri"}))
	assert.Equal(t, "neo4j+s://example.databases.neo4j.io\n", out.String())

	cmd, _ = newTestCommand("")
	require.NoError(t, configValidateCmd.RunE(cmd, nil))
}

func TestConfigSet_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	withFlags(t, GlobalFlags{OutputFormat: "text", ConfigFile: path})

	cmd, _ := newTestCommand("")
	err := configSetCmd.RunE(cmd, []string{"graph.uri", "http://localhost:7474"})
	require.Error(t, err)
	assert.Equal(t, internal.ExitConfigError, exitCode(t, err))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing is saved after a failed validation")
}

func TestConfigValidate_MissingFile(t *testing.T) {
	withFlags(t, GlobalFlags{OutputFormat: "text", ConfigFile: filepath.Join(t.TempDir(), "none.yaml")})

	cmd, _ := newTestCommand("")
	err := configValidateCmd.RunE(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logicmind init")
}

func TestInit_Interactive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "home", "config.yaml")
	withFlags(t, GlobalFlags{OutputFormat: "text", ConfigFile: path})

	// provider, model (keep default), API key, URI (keep), username (keep), password
	cmd, out := newTestCommand("google\n\nAIza-test\n\n\nhunter2\n")
	require.NoError(t, runInit(cmd, nil))
	assert.Contains(t, out.String(), "Language model provider")

	cfg, err := config.NewConfigLoader(config.NewValidator()).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "google", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "AIza-test", cfg.LLM.APIKey)
	assert.Equal(t, "bolt://localhost:7687", cfg.Graph.URI)
	assert.Equal(t, "neo4j", cfg.Graph.Username)
	assert.Equal(t, "hunter2", cfg.Graph.Password)
}

func TestInit_NonInteractive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	withFlags(t, GlobalFlags{
		OutputFormat: "text",
		ConfigFile:   path,
		GraphURI:     "neo4j://graph.internal:7687",
		APIKey:       "sk-flag",
	})
	initNonInteractive = true
	t.Cleanup(func() { initNonInteractive = false })

	cmd, _ := newTestCommand("")
	require.NoError(t, runInit(cmd, nil))

	cfg, err := config.NewConfigLoader(config.NewValidator()).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "neo4j://graph.internal:7687", cfg.Graph.URI)
	assert.Equal(t, "sk-flag", cfg.LLM.APIKey)

	err = runInit(cmd, nil)
	require.Error(t, err, "an existing file needs --force")
	assert.Equal(t, internal.ExitConfigError, exitCode(t, err))

	initForce = true
	t.Cleanup(func() { initForce = false })
	assert.NoError(t, runInit(cmd, nil))
}
