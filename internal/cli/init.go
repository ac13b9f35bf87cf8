package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/aspxgen/internal/logging"
	"github.com/yaklabco/aspxgen/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
	checks []string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:     "init",
		GroupID: groupProject,
		Short:   "Create a starter aspxgen configuration file",
		Long: `Create a .aspxgen.yml configuration file in the current directory with
the target framework, application root, registrations and catalogs documented.
The directory holding it becomes the default application root.`,
		Example: `  aspxgen init                       # Create a minimal .aspxgen.yml
  aspxgen init --full                # Document every check
  aspxgen init --full --checks AX006 # Document only some checks
  aspxgen init --format json         # Create .aspxgen.json instead`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "generate full template with all checks documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .aspxgen.yml or .aspxgen.json)")
	cmd.Flags().StringSliceVar(&flags.checks, "checks", nil, "check IDs to include in a full template")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive(cmd.OutOrStdout())

	if flags.format != "yaml" && flags.format != formatJSON {
		return fmt.Errorf("invalid format %q: must be yaml or json", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".aspxgen.yml"
		if flags.format == formatJSON {
			outputPath = ".aspxgen.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:          flags.full,
		Format:        flags.format,
		IncludeChecks: flags.checks,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.format == formatJSON {
		logger.Warn("configuration is discovered from .aspxgen.yml; pass the JSON file with --config")
	}
	logger.Info("run '" + cmd.Root().Name() + " checks' to see all available checks")

	return nil
}
