package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/aspxgen/internal/logging"
	"github.com/yaklabco/aspxgen/internal/watcher"
	"github.com/yaklabco/aspxgen/pkg/codegen"
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/runner"
)

type watchFlags struct {
	checkFlags
	debounce time.Duration
}

func newWatchCommand(version string) *cobra.Command {
	var cfg config.Config
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:     "watch [paths...]",
		GroupID: groupDocuments,
		Short:   "Re-check markup documents when they change",
		Long: `Check markup documents once, then watch their directories and re-check
every document that changes. Saves that leave a document's content as it was
last checked are skipped. Stop with Ctrl+C.`,
		Example: `  aspxgen watch                      # Watch current directory
  aspxgen watch Pages/ Controls/     # Watch several directories
  aspxgen watch --debounce 1s        # Wait longer for saves to settle`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, &cfg, flags, version)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "check IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "check IDs or names to disable")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().StringVar(&flags.checkFormat, "check-format", "name",
		"check identifier format in output: name, id, or combined")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", watcher.DefaultDebounce,
		"quiet period before changed documents are re-checked")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *watchFlags, version string) error {
	applyCheckFlags(cmd, cliCfg, &flags.checkFlags)
	flags.summaryOrder = string(config.SummaryOrderChecks)

	s, err := loadSession(cmd, cliCfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	s.ctx = ctx

	pipeline, err := s.newPipeline()
	if err != nil {
		return err
	}
	gen := codegen.NewGenerator(codegen.GeneratorOptions{
		Parser:     pipeline.Engine.Parser,
		FailureLog: codegen.FailureLogPath(s.cfg.FailureLog),
		Logger:     s.logger,
	})

	rep, err := newReporter(cmd, s, &flags.checkFlags, version)
	if err != nil {
		return err
	}

	recheck := func(paths []string) error {
		runOpts := runner.OptionsFromConfig(s.cfg, paths)
		runOpts.WorkingDir = s.workDir

		result, err := runner.New(pipeline).Run(s.ctx, runOpts)
		if err != nil {
			return fmt.Errorf("check run failed: %w", err)
		}
		if _, err := rep.Report(s.ctx, result); err != nil {
			return fmt.Errorf("report results: %w", err)
		}
		remember(s, gen, pipeline.Engine.VirtualPath, result)
		return nil
	}

	if err := recheck(args); err != nil {
		return err
	}

	wcfg := watcher.DefaultConfig(watchRoots(args, s.workDir)...)
	wcfg.Extensions = s.cfg.Extensions
	wcfg.Debounce = flags.debounce
	wcfg.Generator = gen
	wcfg.VirtualPath = pipeline.Engine.VirtualPath
	wcfg.Logger = s.logger

	w, err := watcher.New(wcfg)
	if err != nil {
		return err
	}
	changes, err := w.Start()
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Stop(); err != nil {
			s.logger.Debug("stop watcher", logging.FieldError, err)
		}
	}()

	ui := logging.NewInteractive(cmd.OutOrStdout())
	ui.Info("watching for changes", logging.FieldPaths, wcfg.Roots)

	for {
		select {
		case <-s.ctx.Done():
			ui.Info("stopped watching")
			return nil
		case batch, ok := <-changes:
			if !ok {
				return nil
			}
			ui.Info("documents changed", logging.FieldFiles, len(batch))
			if err := recheck(batch); err != nil {
				if s.ctx.Err() != nil {
					return nil
				}
				s.logger.Error("re-check failed", logging.FieldError, err)
			}
		}
	}
}

// remember generates declarations for every checked document so unchanged
// saves are skipped by the watcher.
func remember(s *session, gen *codegen.Generator, virtualPath func(string) string, result *runner.Result) {
	for _, outcome := range result.Files {
		if outcome.Result == nil || outcome.Result.FileResult == nil || outcome.Result.FileResult.Text == "" {
			gen.Forget(virtualPath(outcome.Path))
			continue
		}
		fr := outcome.Result.FileResult
		if _, err := gen.Generate(s.ctx, fr.VirtualPath, fr.Text); err != nil {
			s.logger.Debug("generation failed",
				logging.FieldVirtualPath, fr.VirtualPath,
				logging.FieldError, err,
			)
		}
	}
}

// watchRoots returns the directories to watch for paths: directories as
// given, files through their parent directory.
func watchRoots(paths []string, workDir string) []string {
	if len(paths) == 0 {
		return []string{workDir}
	}

	seen := make(map[string]bool, len(paths))
	roots := make([]string, 0, len(paths))
	for _, path := range paths {
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			path = filepath.Dir(path)
		}
		if !seen[path] {
			seen[path] = true
			roots = append(roots, path)
		}
	}
	return roots
}
