package providers

import (
	"context"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/logicmind/logicmind/internal/llm"
	"github.com/logicmind/logicmind/internal/types"
)

// DefaultGeminiModel replaces model names outside the supported set.
const DefaultGeminiModel = "gemini-1.5-flash"

var geminiModels = map[string]bool{
	"gemini-1.5-pro":       true,
	"gemini-1.5-flash":     true,
	"gemini-2.0-flash":     true,
	"gemini-2.0-flash-exp": true,
	"gemini-2.5-flash":     true,
	"gemini-2.5-pro":       true,
}

// GeminiModel maps a configured model name onto a supported Gemini model.
func GeminiModel(name string) string {
	if geminiModels[name] {
		return name
	}
	return DefaultGeminiModel
}

// GoogleProvider implements LLMProvider with single-prompt Gemini generation.
type GoogleProvider struct {
	client *googleai.GoogleAI
	model  string
}

// NewGoogleProvider creates a new Google provider
func NewGoogleProvider(cfg llm.ProviderConfig) (*GoogleProvider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, types.NewError(types.KindConfigurationMissing, "google api key is not configured")
	}

	model := GeminiModel(cfg.Model)

	client, err := googleai.New(context.Background(),
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, llm.TranslateError("google", err)
	}

	return &GoogleProvider{client: client, model: model}, nil
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return string(llm.ProviderGoogle)
}

// Complete flattens the conversation into one prompt and generates from it.
func (p *GoogleProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, types.WrapError(types.KindBackendUnreachable, "invalid completion request", err)
	}

	model := p.model
	if req.Model != "" {
		model = GeminiModel(req.Model)
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, p.client, singlePrompt(req), buildCallOptions(req, model)...)
	if err != nil {
		return nil, llm.TranslateError(p.Name(), err)
	}

	return fromContentResponse(&llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: text}},
	}, model), nil
}

// Health sends a minimal prompt.
func (p *GoogleProvider) Health(ctx context.Context) types.HealthStatus {
	return probe(ctx, p)
}
