package providers

import (
	"github.com/logicmind/logicmind/internal/llm"
)

// NewProvider creates the backend named by cfg.Type. This is the only place
// that selects a backend by name.
func NewProvider(cfg llm.ProviderConfig) (llm.LLMProvider, error) {
	providerType, err := llm.ParseProviderType(string(cfg.Type))
	if err != nil {
		return nil, err
	}
	cfg.Type = providerType

	switch providerType {
	case llm.ProviderOpenAI:
		return NewOpenAIProvider(cfg)
	case llm.ProviderGoogle:
		return NewGoogleProvider(cfg)
	default:
		return NewMockProvider(`{"response_type": "smalltalk", "message": "Mock response"}`), nil
	}
}
