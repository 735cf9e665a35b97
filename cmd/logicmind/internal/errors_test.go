package internal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/logicmind/logicmind/internal/types"
)

func TestCLIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *CLIError
		expected string
	}{
		{"without cause", NewCLIError(ExitError, "something went wrong"), "something went wrong"},
		{"with cause", WrapError(ExitError, "operation failed", errors.New("underlying error")), "operation failed: underlying error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestCLIError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	assert.Equal(t, cause, WrapError(ExitError, "wrapper", cause).Unwrap())
	assert.Nil(t, NewCLIError(ExitError, "plain").Unwrap())
}

func TestExitCodeForKind(t *testing.T) {
	tests := map[types.ErrorKind]int{
		types.KindNone:                    ExitSuccess,
		types.KindConfigurationMissing:    ExitConfigError,
		types.KindBackendUnreachable:      ExitBackendError,
		types.KindMalformedModelOutput:    ExitQueryError,
		types.KindQueryExecutionFailure:   ExitQueryError,
		types.KindImportValidationFailure: ExitImportError,
		types.KindImportStepFailure:       ExitImportError,
		types.ErrorKind("SOMETHING_ELSE"): ExitError,
	}
	for kind, want := range tests {
		assert.Equal(t, want, ExitCodeForKind(kind), string(kind))
	}
	assert.Equal(t, ExitImportError, KindError(types.KindImportStepFailure, "x").Code)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOut  string
	}{
		{"nil", nil, ExitSuccess, ""},
		{"cancelled", fmt.Errorf("ask: %w", context.Canceled), ExitCancelled, "Operation cancelled"},
		{"timeout", context.DeadlineExceeded, ExitTimeout, "Operation timed out"},
		{"cli error", NewCLIError(ExitImportError, "import failed"), ExitImportError, "Error: import failed"},
		{"kind error", types.NewError(types.KindBackendUnreachable, "graph down"), ExitBackendError, "graph down"},
		{"generic", errors.New("boom"), ExitError, "Error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cmd := &cobra.Command{Use: "test"}
			cmd.SetErr(&buf)

			assert.Equal(t, tt.wantCode, HandleError(cmd, tt.err))
			assert.Contains(t, buf.String(), tt.wantOut)
		})
	}
}
