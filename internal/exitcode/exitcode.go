// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty text, index out of range).
	UserError = 1

	// AuthError indicates a missing or unusable generation API key.
	AuthError = 2

	// BackendError indicates a storage or generation failure.
	BackendError = 3
)
