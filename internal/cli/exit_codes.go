package cli

import "fmt"

// Exit codes for the updatefeed CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution.
	ExitSuccess = 0

	// ExitGenerateFailed indicates the generation pipeline failed.
	ExitGenerateFailed = 1

	// ExitInvalidArguments indicates invalid command arguments.
	ExitInvalidArguments = 2

	// ExitLocked indicates another generation run holds the lock.
	ExitLocked = 3
)

// ExitError carries an exit code through cobra's error return without any
// additional message (the cause has already been printed).
type ExitError struct {
	Code int
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}
