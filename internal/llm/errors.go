package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/logicmind/logicmind/internal/types"
)

// TranslateError converts a backend error into a BackendUnreachable
// LogicMindError. Errors that may succeed on a later attempt (rate limits,
// timeouts, network failures, outages) are marked retryable; authentication
// and request errors are not. Errors that already carry a kind are returned
// unchanged.
func TranslateError(provider string, err error) error {
	if err == nil {
		return nil
	}

	var lmErr *types.LogicMindError
	if errors.As(err, &lmErr) {
		return err
	}

	lowerMsg := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, context.Canceled):
		return types.WrapError(types.KindBackendUnreachable,
			fmt.Sprintf("provider '%s' request canceled", provider), err)
	case strings.Contains(lowerMsg, "unauthorized") ||
		strings.Contains(lowerMsg, "authentication") ||
		strings.Contains(lowerMsg, "api key") ||
		strings.Contains(lowerMsg, "permission denied"):
		return types.WrapError(types.KindBackendUnreachable,
			fmt.Sprintf("provider '%s' authentication failed", provider), err)
	case strings.Contains(lowerMsg, "rate limit") ||
		strings.Contains(lowerMsg, "too many requests") ||
		strings.Contains(lowerMsg, "quota"):
		return types.NewRetryableError(types.KindBackendUnreachable,
			"rate limit exceeded for provider: "+provider, err)
	case errors.Is(err, context.DeadlineExceeded) ||
		strings.Contains(lowerMsg, "timeout") ||
		strings.Contains(lowerMsg, "deadline"):
		return types.NewRetryableError(types.KindBackendUnreachable,
			fmt.Sprintf("provider '%s' timed out", provider), err)
	case strings.Contains(lowerMsg, "invalid request") ||
		strings.Contains(lowerMsg, "model not found") ||
		strings.Contains(lowerMsg, "does not exist"):
		return types.WrapError(types.KindBackendUnreachable,
			fmt.Sprintf("provider '%s' rejected the request", provider), err)
	default:
		return types.NewRetryableError(types.KindBackendUnreachable,
			"provider temporarily unavailable: "+provider, err)
	}
}
