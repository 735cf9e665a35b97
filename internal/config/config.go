package config

import (
	"time"

	"github.com/logicmind/logicmind/internal/graph"
	"github.com/logicmind/logicmind/internal/llm"
)

// Config is the root configuration for LogicMind.
type Config struct {
	LLM     LLMConfig     `mapstructure:"llm" yaml:"llm"`
	Graph   GraphConfig   `mapstructure:"graph" yaml:"graph"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Tracing TracingConfig `mapstructure:"tracing" yaml:"tracing"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
	Chat    ChatConfig    `mapstructure:"chat" yaml:"chat"`
}

// LLMConfig selects the language model backend.
type LLMConfig struct {
	// Provider is "openai" or "google"; the display names "OpenAI" and
	// "Google Gemini" are accepted too.
	Provider string `mapstructure:"provider" yaml:"provider" validate:"omitempty,provider"`
	Model    string `mapstructure:"model" yaml:"model"`
	APIKey   string `mapstructure:"api_key" yaml:"api_key"`
	BaseURL  string `mapstructure:"base_url" yaml:"base_url,omitempty" validate:"omitempty,url"`
}

// GraphConfig contains Neo4j connection settings.
type GraphConfig struct {
	URI                     string        `mapstructure:"uri" yaml:"uri" validate:"omitempty,graphuri"`
	Username                string        `mapstructure:"username" yaml:"username"`
	Password                string        `mapstructure:"password" yaml:"password"`
	Database                string        `mapstructure:"database" yaml:"database,omitempty"`
	MaxConnections          int           `mapstructure:"max_connections" yaml:"max_connections" validate:"min=1,max=100"`
	ConnectionTimeout       time.Duration `mapstructure:"connection_timeout" yaml:"connection_timeout" validate:"min=1s"`
	MaxTransactionRetryTime time.Duration `mapstructure:"max_transaction_retry_time" yaml:"max_transaction_retry_time" validate:"min=1s"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=json text"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint" validate:"required_if=Enabled true"`
	Insecure bool   `mapstructure:"insecure" yaml:"insecure"`
}

// MetricsConfig contains metrics export configuration.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Port    int  `mapstructure:"port" yaml:"port"`
}

// ChatConfig tunes the interactive chat.
type ChatConfig struct {
	// ShowQuery renders the executed Cypher under every answer.
	ShowQuery bool `mapstructure:"show_query" yaml:"show_query"`
	// ShowSuggestions renders the follow-up questions of narrated answers.
	ShowSuggestions bool `mapstructure:"show_suggestions" yaml:"show_suggestions"`
}

// ProviderConfig converts the LLM section into a provider configuration.
func (c LLMConfig) ProviderConfig() (llm.ProviderConfig, error) {
	providerType, err := llm.ParseProviderType(c.Provider)
	if err != nil {
		return llm.ProviderConfig{}, err
	}
	return llm.ProviderConfig{
		Type:    providerType,
		APIKey:  c.APIKey,
		BaseURL: c.BaseURL,
		Model:   c.Model,
	}, nil
}

// ClientConfig converts the graph section into a driver configuration.
func (c GraphConfig) ClientConfig() graph.GraphClientConfig {
	return graph.GraphClientConfig{
		URI:                     c.URI,
		Username:                c.Username,
		Password:                c.Password,
		Database:                c.Database,
		MaxConnectionPoolSize:   c.MaxConnections,
		ConnectionTimeout:       c.ConnectionTimeout,
		MaxTransactionRetryTime: c.MaxTransactionRetryTime,
	}
}
