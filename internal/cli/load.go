package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/aspxgen/internal/configloader"
	"github.com/yaklabco/aspxgen/internal/logging"
	"github.com/yaklabco/aspxgen/pkg/check"
	_ "github.com/yaklabco/aspxgen/pkg/check/checks" // Register built-in checks
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/parser"
)

// session is the resolved configuration of one command invocation.
type session struct {
	ctx     context.Context
	cfg     *config.Config
	workDir string
	logger  *log.Logger
}

// loadSession merges the configuration layers with the flags in cliCfg.
func loadSession(cmd *cobra.Command, cliCfg *config.Config) (*session, error) {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFramework, cfg.TargetFramework,
		logging.FieldAppRoot, cfg.AppRoot,
		logging.FieldFix, cfg.Fix,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	return &session{
		ctx:     logging.WithLogger(ctx, logger),
		cfg:     cfg,
		workDir: workDir,
		logger:  logger,
	}, nil
}

// parserOptions builds parse session options from the session configuration.
func (s *session) parserOptions() (parser.Options, error) {
	opts, err := check.ParserOptions(s.cfg, s.logger)
	if err != nil {
		return parser.Options{}, fmt.Errorf("configure parser: %w", err)
	}
	return opts, nil
}

// colorMode returns the --color flag value.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}
