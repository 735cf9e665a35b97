package providers

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/tmc/langchaingo/llms/openai"

	"github.com/logicmind/logicmind/internal/llm"
	"github.com/logicmind/logicmind/internal/types"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider implements LLMProvider with OpenAI chat completions.
type OpenAIProvider struct {
	client *openai.LLM
	model  string
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(cfg llm.ProviderConfig) (*OpenAIProvider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, types.NewError(types.KindConfigurationMissing, "openai api key is not configured")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, llm.TranslateError("openai", err)
	}

	return &OpenAIProvider{client: client, model: model}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return string(llm.ProviderOpenAI)
}

// Complete sends the conversation as chat messages.
func (p *OpenAIProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, types.WrapError(types.KindBackendUnreachable, "invalid completion request", err)
	}

	model := req.Model
	if model == "" {
		model = p.model
	}

	resp, err := p.client.GenerateContent(ctx, toMessageContents(req.Messages), buildCallOptions(req, model)...)
	if err != nil {
		return nil, llm.TranslateError(p.Name(), err)
	}

	return fromContentResponse(resp, model), nil
}

// Health sends a minimal prompt.
func (p *OpenAIProvider) Health(ctx context.Context) types.HealthStatus {
	return probe(ctx, p)
}

// probe runs the shared "Hello" connectivity check.
func probe(ctx context.Context, p llm.LLMProvider) types.HealthStatus {
	resp, err := p.Complete(ctx, llm.CompletionRequest{
		Messages:  []llm.Message{llm.NewUserMessage("Hello")},
		MaxTokens: 5,
	})
	if err == nil && strings.TrimSpace(resp.Content) == "" {
		err = errors.New("empty response")
	}
	if err != nil {
		return types.Unhealthy(p.Name() + ": " + err.Error())
	}
	return types.Healthy(p.Name() + " reachable")
}
