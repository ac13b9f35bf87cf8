// Package main is the entry point for the aspxgen CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/aspxgen/internal/cli"
	"github.com/yaklabco/aspxgen/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	err := rootCmd.Execute()
	switch {
	case err == nil:
		return cli.ExitSuccess
	case errors.Is(err, cli.ErrCheckIssuesFound):
		// The reporter already printed the issues.
		return cli.ExitCheckErrors
	case errors.Is(err, cli.ErrScanFailed):
		logging.Default().Error("scan failed", logging.FieldError, err)
		return cli.ExitCheckErrors
	default:
		logging.Default().Error("command failed", logging.FieldError, err)
		return cli.ExitCodeFromError(err)
	}
}
