package llm

import (
	"fmt"
	"strings"

	"github.com/logicmind/logicmind/internal/types"
)

// ProviderType identifies an LLM backend.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderGoogle ProviderType = "google"
	ProviderMock   ProviderType = "mock"
)

// ParseProviderType accepts canonical names as well as display names such
// as "OpenAI" and "Google Gemini".
func ParseProviderType(name string) (ProviderType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "openai":
		return ProviderOpenAI, nil
	case "google", "gemini", "google gemini", "googleai":
		return ProviderGoogle, nil
	case "mock":
		return ProviderMock, nil
	default:
		return "", types.NewError(types.KindConfigurationMissing, fmt.Sprintf("unknown provider type: %s", name))
	}
}

// ProviderConfig contains configuration for a specific LLM provider.
type ProviderConfig struct {
	Type    ProviderType `mapstructure:"type" yaml:"type"`
	APIKey  string       `mapstructure:"api_key" yaml:"api_key"`
	BaseURL string       `mapstructure:"base_url" yaml:"base_url,omitempty"`
	Model   string       `mapstructure:"model" yaml:"model"`
}

// Validate ensures the provider can be constructed.
func (p ProviderConfig) Validate() error {
	if _, err := ParseProviderType(string(p.Type)); err != nil {
		return err
	}
	if p.Type != ProviderMock && strings.TrimSpace(p.APIKey) == "" {
		return types.NewError(types.KindConfigurationMissing, "api key is required for provider "+string(p.Type))
	}
	return nil
}
