package llm

import (
	"context"

	"github.com/logicmind/logicmind/internal/types"
)

// LLMProvider is the text-completion capability every backend implements.
// Callers never branch on the concrete backend.
type LLMProvider interface {
	// Name returns the provider name ("openai", "google", "mock").
	Name() string

	// Complete sends a completion request and returns the full response.
	// Errors are already translated (see TranslateError).
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Health checks the provider's reachability.
	Health(ctx context.Context) types.HealthStatus
}
