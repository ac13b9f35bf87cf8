package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/fix"
	"github.com/yaklabco/aspxgen/pkg/fsutil"
)

// DefaultMaxFixPasses bounds the fix loop. A later pass picks up edits
// that conflicted in an earlier one.
const DefaultMaxFixPasses = 10

// Pipeline error categories.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrParseFailure     = errors.New("parse failure")
	ErrWriteFailure     = errors.New("write failure")
)

// PipelineResult is the outcome of processing one document.
type PipelineResult struct {
	// FileResult is the result of the final pass.
	*FileResult

	Path     string
	Snapshot *fsutil.Snapshot

	// Modified is true if fixes changed the content.
	Modified        bool
	ModifiedContent []byte

	// Diff is set in dry-run mode.
	Diff *fix.Diff

	// Skipped is true if fixes were not written.
	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool

	FixPasses         int
	TotalEditsApplied int
}

// Summary returns a short human-readable status.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions controls the pipeline.
type PipelineOptions struct {
	Fix    bool
	DryRun bool

	// Backup selects how originals are kept before writing fixes.
	Backup fsutil.BackupMode

	// ReParseAfterFix parses fixed content once more and drops the fixes
	// if the parse session fails.
	ReParseAfterFix bool

	// MaxFixPasses defaults to DefaultMaxFixPasses.
	MaxFixPasses int
}

// PipelineOptionsFromConfig derives pipeline options from cfg.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return PipelineOptions{Backup: fsutil.BackupModeNone, ReParseAfterFix: true}
	}

	backup := fsutil.BackupMode(cfg.Backups.Mode)
	if !cfg.Backups.Enabled || cfg.NoBackups {
		backup = fsutil.BackupModeNone
	}
	return PipelineOptions{
		Fix:             cfg.Fix,
		DryRun:          cfg.DryRun,
		Backup:          backup,
		ReParseAfterFix: true,
	}
}

// Pipeline processes documents safely: it fixes in memory, refuses to
// overwrite documents changed behind its back, keeps backups and writes
// atomically.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline creates a Pipeline.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile reads, checks and optionally fixes the document at path.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, cfg *config.Config, opts PipelineOptions) (*PipelineResult, error) {
	original, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.run(ctx, path, original, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.Snapshot = snap

	if !result.Modified || result.Skipped || opts.DryRun {
		return result, nil
	}

	changed, err := snap.Changed(ctx)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
	if err != nil {
		return nil, fmt.Errorf("create backup: %w", err)
	}
	result.BackupCreated = created

	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, snap.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	return result, nil
}

// ProcessContent checks and optionally fixes content already in memory.
// Nothing is written.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, content []byte, cfg *config.Config, opts PipelineOptions) (*PipelineResult, error) {
	return p.run(ctx, path, content, cfg, opts)
}

func (p *Pipeline) run(ctx context.Context, path string, original []byte, cfg *config.Config, opts PipelineOptions) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	content := original
	for range maxPasses {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}

		fileResult, err := p.Engine.CheckFile(ctx, path, content, cfg)
		if err != nil {
			return nil, err
		}
		result.FileResult = fileResult

		if !opts.Fix || len(fileResult.Edits) == 0 {
			break
		}

		content = fix.ApplyEdits(content, fileResult.Edits)
		result.FixPasses++
		result.TotalEditsApplied += len(fileResult.Edits)
		result.Modified = true
	}

	if !result.Modified {
		return result, nil
	}
	result.ModifiedContent = content

	if opts.ReParseAfterFix {
		if _, err := p.Engine.Parse(ctx, path, content); err != nil {
			result.Skipped = true
			result.SkipReason = fmt.Sprintf("re-parse failed: %v", err)
			result.Modified = false
			result.ModifiedContent = nil
			return result, nil
		}
	}

	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, original, content)
	}
	return result, nil
}

func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}
