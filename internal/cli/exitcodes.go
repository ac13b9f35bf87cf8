package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/aspxgen/internal/configloader"
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/runner"
)

var (
	// ErrInvalidUsage wraps flag parsing failures.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig wraps configuration loading failures.
	ErrConfig = errors.New("configuration error")
)

// Exit codes for aspxgen.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitCheckErrors indicates checks completed but found errors
	// or documents that could not be processed.
	ExitCheckErrors = 1

	// ExitCheckWarnings indicates checks found warnings (strict mode only).
	ExitCheckWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	errors := result.Stats.DiagnosticsBySeverity[string(config.SeverityError)]
	warnings := result.Stats.DiagnosticsBySeverity[string(config.SeverityWarning)]

	if errors > 0 || result.Stats.FilesErrored > 0 {
		return ExitCheckErrors
	}

	if strict && warnings > 0 {
		return ExitCheckWarnings
	}

	return ExitSuccess
}

// ExitCodeFromError maps a command failure to an exit code.
func ExitCodeFromError(err error) int {
	var validation *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validation):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
