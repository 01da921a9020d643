package cli

import (
	"errors"

	"github.com/yaklabco/langex/pkg/runner"
)

// Exit codes for langex.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitFailures indicates some files could not be extracted or written.
	ExitFailures = 1

	// ExitWarnings indicates extraction completed with warnings (strict mode).
	ExitWarnings = 2
)

var (
	// ErrExtractionFailed is returned when some files failed.
	ErrExtractionFailed = errors.New("extraction failed for some files")

	// ErrWarningsFound is returned in strict mode when warnings remain.
	ErrWarningsFound = errors.New("extraction produced warnings")
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() {
		return ExitFailures
	}

	if strict && result.HasWarnings() {
		return ExitWarnings
	}

	return ExitSuccess
}

// ExitCode maps an error returned by the root command to a process exit
// code. Errors other than the result sentinels exit with ExitFailures.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrWarningsFound):
		return ExitWarnings
	default:
		return ExitFailures
	}
}

// IsResultError reports whether err only signals the exit code and was
// already reported.
func IsResultError(err error) bool {
	return errors.Is(err, ErrExtractionFailed) || errors.Is(err, ErrWarningsFound)
}

func resultError(code int) error {
	switch code {
	case ExitFailures:
		return ErrExtractionFailed
	case ExitWarnings:
		return ErrWarningsFound
	default:
		return nil
	}
}
