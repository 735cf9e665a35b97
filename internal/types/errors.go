package types

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure categories surfaced by LogicMind.
// Callers branch on the kind instead of inspecting error text.
type ErrorKind string

const (
	// KindNone marks a successful result.
	KindNone ErrorKind = ""

	// KindConfigurationMissing: no model credential or graph connection configured.
	KindConfigurationMissing ErrorKind = "CONFIGURATION_MISSING"

	// KindBackendUnreachable: the graph store or language model could not be reached.
	KindBackendUnreachable ErrorKind = "BACKEND_UNREACHABLE"

	// KindMalformedModelOutput: the model answered with something that is not the expected JSON.
	KindMalformedModelOutput ErrorKind = "MALFORMED_MODEL_OUTPUT"

	// KindQueryExecutionFailure: the store rejected a query (syntax, constraint, type errors).
	KindQueryExecutionFailure ErrorKind = "QUERY_EXECUTION_FAILURE"

	// KindImportValidationFailure: a workbook is missing sheets or columns.
	KindImportValidationFailure ErrorKind = "IMPORT_VALIDATION_FAILURE"

	// KindImportStepFailure: a load step failed after mutation started.
	KindImportStepFailure ErrorKind = "IMPORT_STEP_FAILURE"
)

// String returns the string representation of the ErrorKind
func (k ErrorKind) String() string {
	return string(k)
}

// IsValid reports whether k is one of the declared kinds.
func (k ErrorKind) IsValid() bool {
	switch k {
	case KindNone, KindConfigurationMissing, KindBackendUnreachable, KindMalformedModelOutput,
		KindQueryExecutionFailure, KindImportValidationFailure, KindImportStepFailure:
		return true
	default:
		return false
	}
}

// LogicMindError is a structured error carrying its kind, a message, an optional
// cause, and a retryability hint.
type LogicMindError struct {
	Kind      ErrorKind
	Message   string
	Retryable bool
	Cause     error
}

// Error formats as "[KIND] message" or "[KIND] message: cause".
func (e *LogicMindError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is / errors.As chains.
func (e *LogicMindError) Unwrap() error {
	return e.Cause
}

// Is matches any LogicMindError of the same kind.
func (e *LogicMindError) Is(target error) bool {
	var other *LogicMindError
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// NewError creates a non-retryable error of the given kind.
func NewError(kind ErrorKind, message string) *LogicMindError {
	return &LogicMindError{
		Kind:    kind,
		Message: message,
	}
}

// NewRetryableError creates an error that may succeed when the operation is repeated.
func NewRetryableError(kind ErrorKind, message string, cause error) *LogicMindError {
	return &LogicMindError{
		Kind:      kind,
		Message:   message,
		Retryable: true,
		Cause:     cause,
	}
}

// WrapError creates a non-retryable error of the given kind wrapping cause.
func WrapError(kind ErrorKind, message string, cause error) *LogicMindError {
	return &LogicMindError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// KindOf returns the kind of the first LogicMindError in err's chain.
// A nil error yields KindNone; an error without a kind yields fallback.
func KindOf(err error, fallback ErrorKind) ErrorKind {
	if err == nil {
		return KindNone
	}
	var lmErr *LogicMindError
	if errors.As(err, &lmErr) {
		return lmErr.Kind
	}
	return fallback
}

// IsRetryable reports whether err carries a retryable hint.
func IsRetryable(err error) bool {
	var lmErr *LogicMindError
	if errors.As(err, &lmErr) {
		return lmErr.Retryable
	}
	return false
}
