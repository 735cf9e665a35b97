package providers

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/logicmind/logicmind/internal/llm"
	"github.com/logicmind/logicmind/internal/types"
)

// MockReply is one scripted answer of the mock provider.
type MockReply struct {
	Content string
	Err     error
}

// MockProvider implements LLMProvider for testing. Replies are served in
// order; once exhausted the last reply is repeated.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockReply
	next    int
	calls   []llm.CompletionRequest
	health  *types.HealthStatus
}

// NewMockProvider creates a mock answering with the given texts.
func NewMockProvider(responses ...string) *MockProvider {
	p := &MockProvider{}
	for _, r := range responses {
		p.replies = append(p.replies, MockReply{Content: r})
	}
	return p
}

// Enqueue appends scripted replies.
func (p *MockProvider) Enqueue(replies ...MockReply) *MockProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.replies = append(p.replies, replies...)
	return p
}

// SetHealth overrides the status reported by Health.
func (p *MockProvider) SetHealth(status types.HealthStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.health = &status
}

// Calls returns the requests received so far.
func (p *MockProvider) Calls() []llm.CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]llm.CompletionRequest, len(p.calls))
	copy(out, p.calls)
	return out
}

// Name returns the provider name
func (p *MockProvider) Name() string {
	return string(llm.ProviderMock)
}

// Complete returns the next scripted reply.
func (p *MockProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	p.calls = append(p.calls, req)

	if len(p.replies) == 0 {
		p.mu.Unlock()
		return nil, llm.TranslateError("mock", errors.New("no responses configured"))
	}

	reply := p.replies[p.next]
	if p.next < len(p.replies)-1 {
		p.next++
	}
	p.mu.Unlock()

	if reply.Err != nil {
		return nil, llm.TranslateError("mock", reply.Err)
	}

	return &llm.CompletionResponse{
		ID:           uuid.New().String(),
		Model:        req.Model,
		Content:      reply.Content,
		FinishReason: llm.FinishReasonStop,
	}, nil
}

// Health reports healthy unless overridden.
func (p *MockProvider) Health(ctx context.Context) types.HealthStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.health != nil {
		return *p.health
	}
	return types.Healthy("mock provider")
}
