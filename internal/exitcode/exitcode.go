package exitcode

import (
	"os"

	"github.com/felixgeelhaar/composetrust/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a fatal error without a child exit status
	GeneralError = 1
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit
// code: 0 for nil, a failed child's own status when the error carries
// one, and 1 for everything else.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}
	if code, ok := errors.ExitCode(err); ok {
		return code
	}
	return GeneralError
}
