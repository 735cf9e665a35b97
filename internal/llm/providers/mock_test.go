package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logicmind/logicmind/internal/llm"
	"github.com/logicmind/logicmind/internal/types"
)

func TestMockProvider_RepliesInOrder(t *testing.T) {
	p := NewMockProvider("first", "second")
	ctx := context.Background()
	req := llm.CompletionRequest{Messages: []llm.Message{llm.NewUserMessage("q")}}

	for _, want := range []string{"first", "second", "second"} {
		resp, err := p.Complete(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, want, resp.Content)
	}
	assert.Len(t, p.Calls(), 3)
}

func TestMockProvider_Errors(t *testing.T) {
	ctx := context.Background()
	req := llm.CompletionRequest{Messages: []llm.Message{llm.NewUserMessage("q")}}

	_, err := NewMockProvider().Complete(ctx, req)
	assert.Equal(t, types.KindBackendUnreachable, types.KindOf(err, types.KindNone))

	p := NewMockProvider().Enqueue(MockReply{Err: errors.New("service unavailable")})
	_, err = p.Complete(ctx, req)
	assert.Equal(t, types.KindBackendUnreachable, types.KindOf(err, types.KindNone))
	assert.True(t, types.IsRetryable(err))
}

func TestMockProvider_Health(t *testing.T) {
	p := NewMockProvider()
	assert.True(t, p.Health(context.Background()).IsHealthy())

	p.SetHealth(types.Unhealthy("down"))
	assert.False(t, p.Health(context.Background()).IsHealthy())
}
