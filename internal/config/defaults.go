package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LOGICMIND_GRAPH_URI.
const EnvPrefix = "LOGICMIND"

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Graph: GraphConfig{
			URI:                     "bolt://localhost:7687",
			Username:                "neo4j",
			MaxConnections:          10,
			ConnectionTimeout:       30 * time.Second,
			MaxTransactionRetryTime: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Tracing: TracingConfig{
			Enabled:  false,
			Endpoint: "",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
		Chat: ChatConfig{
			ShowQuery:       true,
			ShowSuggestions: true,
		},
	}
}

// setDefaults registers every key with viper so that environment
// overrides apply even when the file omits the key.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("llm.provider", cfg.LLM.Provider)
	v.SetDefault("llm.model", cfg.LLM.Model)
	v.SetDefault("llm.api_key", cfg.LLM.APIKey)
	v.SetDefault("llm.base_url", cfg.LLM.BaseURL)

	v.SetDefault("graph.uri", cfg.Graph.URI)
	v.SetDefault("graph.username", cfg.Graph.Username)
	v.SetDefault("graph.password", cfg.Graph.Password)
	v.SetDefault("graph.database", cfg.Graph.Database)
	v.SetDefault("graph.max_connections", cfg.Graph.MaxConnections)
	v.SetDefault("graph.connection_timeout", cfg.Graph.ConnectionTimeout)
	v.SetDefault("graph.max_transaction_retry_time", cfg.Graph.MaxTransactionRetryTime)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)

	v.SetDefault("tracing.enabled", cfg.Tracing.Enabled)
	v.SetDefault("tracing.endpoint", cfg.Tracing.Endpoint)
	v.SetDefault("tracing.insecure", cfg.Tracing.Insecure)

	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("metrics.port", cfg.Metrics.Port)

	v.SetDefault("chat.show_query", cfg.Chat.ShowQuery)
	v.SetDefault("chat.show_suggestions", cfg.Chat.ShowSuggestions)
}

// DefaultHomeDir returns the default LogicMind home directory.
// It uses ~/.logicmind or falls back to a temporary directory if user home cannot be determined.
func DefaultHomeDir() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".logicmind")
	}
	return filepath.Join(userHome, ".logicmind")
}

// DefaultConfigPath returns the default config file path for a given home directory
func DefaultConfigPath(homeDir string) string {
	return filepath.Join(homeDir, "config.yaml")
}
