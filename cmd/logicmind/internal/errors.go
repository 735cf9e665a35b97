package internal

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/logicmind/logicmind/internal/types"
)

// Exit code constants for the CLI
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitError indicates a general error
	ExitError = 1
	// ExitTimeout indicates the operation timed out
	ExitTimeout = 3
	// ExitCancelled indicates the operation was cancelled
	ExitCancelled = 4
	// ExitConfigError indicates missing or invalid configuration
	ExitConfigError = 10
	// ExitBackendError indicates the graph database or the language model could not be reached
	ExitBackendError = 11
	// ExitQueryError indicates a generated query or the model's output was rejected
	ExitQueryError = 12
	// ExitImportError indicates a failed workbook import
	ExitImportError = 13
)

// CLIError represents a CLI-specific error with an exit code
type CLIError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// WrapError creates a new CLIError wrapping an existing error
func WrapError(code int, message string, err error) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// NewCLIError creates a new CLIError with the given code and message
func NewCLIError(code int, message string) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
	}
}

// KindError creates a CLIError whose exit code follows kind.
func KindError(kind types.ErrorKind, message string) *CLIError {
	return NewCLIError(ExitCodeForKind(kind), message)
}

// ExitCodeForKind maps an error kind onto an exit code.
func ExitCodeForKind(kind types.ErrorKind) int {
	switch kind {
	case types.KindNone:
		return ExitSuccess
	case types.KindConfigurationMissing:
		return ExitConfigError
	case types.KindBackendUnreachable:
		return ExitBackendError
	case types.KindMalformedModelOutput, types.KindQueryExecutionFailure:
		return ExitQueryError
	case types.KindImportValidationFailure, types.KindImportStepFailure:
		return ExitImportError
	default:
		return ExitError
	}
}

// HandleError handles an error and returns the appropriate exit code
// It also prints the error message to the command's error output
func HandleError(cmd *cobra.Command, err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, context.Canceled) {
		cmd.PrintErrln("Operation cancelled")
		return ExitCancelled
	}

	if errors.Is(err, context.DeadlineExceeded) {
		cmd.PrintErrln("Operation timed out")
		return ExitTimeout
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		cmd.PrintErrln("Error:", cliErr.Message)
		if cliErr.Cause != nil && verboseRequested(cmd) {
			cmd.PrintErrln("Cause:", cliErr.Cause)
		}
		return cliErr.Code
	}

	var lmErr *types.LogicMindError
	if errors.As(err, &lmErr) {
		cmd.PrintErrln("Error:", lmErr.Error())
		return ExitCodeForKind(lmErr.Kind)
	}

	cmd.PrintErrln("Error:", err)
	return ExitError
}

func verboseRequested(cmd *cobra.Command) bool {
	flag := cmd.Flag("verbose")
	return flag != nil && flag.Changed
}

// IsVerbose checks if verbose mode is enabled via environment variable or flag
// This is used for panic recovery to determine if stack traces should be shown
func IsVerbose() bool {
	if os.Getenv("LOGICMIND_VERBOSE") != "" {
		return true
	}

	for _, arg := range os.Args {
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}

	return false
}
