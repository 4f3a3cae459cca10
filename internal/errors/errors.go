package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Router errors (ROUTER-001 to ROUTER-099)
	ErrCodeMultipleActions ErrorCode = "ROUTER-001"

	// Compose manifest errors (COMPOSE-001 to COMPOSE-099)
	ErrCodeManifestNotFound ErrorCode = "COMPOSE-001"
	ErrCodeManifestInvalid  ErrorCode = "COMPOSE-002"

	// Staging errors (STAGE-001 to STAGE-099)
	ErrCodeImageRefInvalid ErrorCode = "STAGE-001"
	ErrCodeTrustPullFailed ErrorCode = "STAGE-002"
	ErrCodeStagePushFailed ErrorCode = "STAGE-003"

	// Subprocess errors (EXEC-001 to EXEC-099)
	ErrCodeExecStartFailed ErrorCode = "EXEC-001"

	// Dockerfile errors (BUILDFILE-001 to BUILDFILE-099)
	ErrCodeBuildFileNotFound ErrorCode = "BUILDFILE-001"
)

// TrustError represents an enhanced error with code and suggestions
type TrustError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *TrustError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *TrustError) Unwrap() error {
	return e.Cause
}

// New creates a new TrustError
func New(code ErrorCode, message string) *TrustError {
	return &TrustError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new TrustError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *TrustError {
	return &TrustError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *TrustError) WithSuggestion(suggestion string) *TrustError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// ExitError carries the exit status of a failed child process. The code
// is propagated verbatim as the wrapper's own exit status.
type ExitError struct {
	Command string
	Code    int
}

// Error implements the error interface
func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

// NewExitError creates an ExitError for a failed child process
func NewExitError(command string, code int) *ExitError {
	return &ExitError{Command: command, Code: code}
}

// ExitCode extracts a child exit status from an error chain. It returns
// the code and true when err carries one, 0 and false otherwise.
func ExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// NewMultipleActionsError reports two recognized action words in one
// invocation, named in encounter order.
func NewMultipleActionsError(first, second string) *TrustError {
	return New(ErrCodeMultipleActions,
		fmt.Sprintf("Multiple reserved words encountered: %s, %s", first, second)).
		WithSuggestion("Quote or rename arguments that collide with docker-compose actions").
		WithSuggestion("Run one action per invocation")
}

// NewManifestNotFoundError creates a compose manifest not found error
func NewManifestNotFoundError(path string) *TrustError {
	return New(ErrCodeManifestNotFound, fmt.Sprintf("compose manifest not found: %s", path)).
		WithSuggestion("Run from the directory containing docker-compose.yml")
}

// NewTrustPullFailedError creates a verification-phase pull failure
func NewTrustPullFailedError(ref string, cause error) *TrustError {
	return Wrap(ErrCodeTrustPullFailed,
		fmt.Sprintf("content-trust pull failed for %s", ref), cause).
		WithSuggestion("Verify the image is signed in the remote registry").
		WithSuggestion("Check DOCKER_CONTENT_TRUST_SERVER connectivity")
}
