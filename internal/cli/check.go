package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/aspxgen/internal/logging"
	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/reporter"
	"github.com/yaklabco/aspxgen/pkg/runner"
)

// ErrCheckIssuesFound is returned when checks report issues that fail the run.
var ErrCheckIssuesFound = errors.New("check issues found")

type checkFlags struct {
	format       string
	checkFormat  string
	summaryOrder string
	ignore       []string
	enable       []string
	disable      []string
	fixChecks    []string
	strict       bool
	noContext    bool
	compact      bool
	perFile      bool
}

func newCheckCommand(version string) *cobra.Command {
	var cfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:     "check [paths...]",
		GroupID: groupDocuments,
		Short:   "Check markup documents for declaration problems",
		Long: `Parse markup documents and report problems that keep their designer
declarations from being generated: parse failures, unresolved control types,
user controls that fall back to the base type, ids differing only by case,
duplicate ids and unregistered tag prefixes.

By default, checks all .aspx, .ascx and .master files in the current directory
and subdirectories. Specify paths to check specific files or directories.`,
		Example: `  aspxgen check                      # Check current directory
  aspxgen check Pages/               # Check a directory
  aspxgen check Default.aspx         # Check a single document
  aspxgen check --fix                # Check and apply fixes
  aspxgen check --fix --dry-run      # Show fixes as a diff without writing
  aspxgen check --format sarif       # Output SARIF for code scanning
  aspxgen check --strict             # Fail on warnings too`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, &cfg, flags, version)
		},
	}

	addCheckFlags(cmd, &cfg, flags)

	return cmd
}

// applyCheckFlags copies explicitly set flags into the CLI configuration layer.
func applyCheckFlags(cmd *cobra.Command, cfg *config.Config, flags *checkFlags) {
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("check-format") {
		cfg.CheckFormat = config.CheckFormat(flags.checkFormat)
	}
	cfg.Ignore = flags.ignore
	cfg.EnableChecks = flags.enable
	cfg.DisableChecks = flags.disable
	cfg.FixChecks = flags.fixChecks
}

func runCheck(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *checkFlags, version string) error {
	applyCheckFlags(cmd, cliCfg, flags)

	s, err := loadSession(cmd, cliCfg)
	if err != nil {
		return err
	}

	result, err := s.runChecks(args)
	if err != nil {
		return err
	}

	rep, err := newReporter(cmd, s, flags, version)
	if err != nil {
		return err
	}
	if _, err := rep.Report(s.ctx, result); err != nil {
		s.logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result, flags.strict) != ExitSuccess {
		return ErrCheckIssuesFound
	}
	return nil
}

// newPipeline builds the check pipeline for the session configuration.
func (s *session) newPipeline() (*check.Pipeline, error) {
	opts, err := s.parserOptions()
	if err != nil {
		return nil, err
	}
	return check.NewPipeline(check.NewEngine(opts, check.DefaultRegistry)), nil
}

// runChecks runs the pipeline over the documents found under paths.
func (s *session) runChecks(paths []string) (*runner.Result, error) {
	pipeline, err := s.newPipeline()
	if err != nil {
		return nil, err
	}

	runOpts := runner.OptionsFromConfig(s.cfg, paths)
	runOpts.WorkingDir = s.workDir

	s.logger.Debug("starting check run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(pipeline).Run(s.ctx, runOpts)
	if err != nil {
		return nil, errors.Join(errors.New("check run failed"), err)
	}

	s.logger.Debug("check run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldControls, result.Stats.ControlsDeclared,
	)
	return result, nil
}

func newReporter(cmd *cobra.Command, s *session, flags *checkFlags, version string) (reporter.Reporter, error) {
	format, err := reporter.ParseFormat(string(s.cfg.Format))
	if err != nil {
		return nil, fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		ErrorWriter:  cmd.ErrOrStderr(),
		Format:       format,
		Color:        colorMode(cmd),
		ShowContext:  !flags.noContext,
		ShowSummary:  true,
		GroupByFile:  true,
		Compact:      flags.compact,
		PerFile:      flags.perFile,
		CheckFormat:  s.cfg.CheckFormat,
		SummaryOrder: config.SummaryOrder(flags.summaryOrder),
		WorkingDir:   s.workDir,
		ToolVersion:  version,
	})
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	return rep, nil
}

func addCheckFlags(cmd *cobra.Command, cfg *config.Config, flags *checkFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "automatically fix issues")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, table, json, sarif, diff, summary, html")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "check IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "check IDs or names to disable")
	cmd.Flags().StringSliceVar(&flags.fixChecks, "fix-checks", nil, "limit auto-fix to specific check IDs")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.perFile, "per-file", false, "output separate report for each file (table format)")
	cmd.Flags().StringVar(&flags.checkFormat, "check-format", "name",
		"check identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "checks",
		"order of tables in summary output: checks, files")
}
