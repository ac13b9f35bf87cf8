// Package cli provides the Cobra command structure for aspxgen.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/aspxgen/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root aspxgen command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "aspxgen",
		Short: "Parse ASP.NET Web Forms markup and check its control declarations",
		Long: `aspxgen parses ASP.NET Web Forms markup (.aspx, .ascx and .master) and
computes the control declarations its designer file needs: the partial class,
one field per server control with an id and the strongly typed Master and
PreviousPage properties.

It resolves control types from YAML type catalogs, reports documents whose
markup cannot be compiled or whose types cannot be resolved, fixes what it
can and re-checks documents as they change.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddGroup(commandGroups()...)
	rootCmd.SetHelpCommandGroupID(groupProject)
	rootCmd.SetCompletionCommandGroupID(groupProject)

	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newCheckCommand(info.Version))
	rootCmd.AddCommand(newWatchCommand(info.Version))
	rootCmd.AddCommand(newCatalogCommand())
	rootCmd.AddCommand(newChecksCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
