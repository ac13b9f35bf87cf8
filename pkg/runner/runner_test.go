package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/check/checks"
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/runner"
)

const (
	cleanPage = `<%@ Page Language="C#" Inherits="Site.Home" %>
<asp:Label id="Title" runat="server" />`

	duplicatePage = `<%@ Page Language="C#" Inherits="Site.Orders" %>
<asp:Label id="Total" runat="server" />
<asp:TextBox id="Total" runat="server" />`

	conflictPage = `<%@ Page Language="C#" Inherits="Site.Cart" %>
<asp:Label id="total" runat="server" />
<asp:Label id="Total" runat="server" />`

	codeFilePage = `<%@ Page Language="C#" CodeFile="Edit.aspx.cs" Inherits="Site.Edit" %>`
)

// newRunner returns a runner with the built-in checks for an application
// rooted at dir.
func newRunner(t *testing.T, cfg *config.Config, dir string) *runner.Runner {
	t.Helper()

	cfg.AppRoot = dir
	opts, err := check.ParserOptions(cfg, nil)
	if err != nil {
		t.Fatalf("ParserOptions() error = %v", err)
	}

	registry := check.NewRegistry()
	checks.RegisterAll(registry)
	return runner.New(check.NewPipeline(check.NewEngine(opts, registry)))
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"Home.aspx":      cleanPage,
		"Orders.aspx":    duplicatePage,
		"Cart.aspx":      conflictPage,
		"Empty.aspx":     "",
		"readme.txt":     "not markup",
		"bin/Stale.ascx": duplicatePage,
	})

	cfg := config.NewConfig()
	cfg.Ignore = []string{"bin/"}

	opts := runner.OptionsFromConfig(cfg, nil)
	opts.WorkingDir = dir

	result, err := newRunner(t, cfg, dir).Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != 4 {
		t.Errorf("FilesDiscovered = %d, want 4", result.Stats.FilesDiscovered)
	}
	if result.Stats.FilesProcessed != 4 || result.Stats.FilesErrored != 0 {
		t.Errorf("processed %d, errored %d", result.Stats.FilesProcessed, result.Stats.FilesErrored)
	}
	if result.Stats.FilesWithIssues != 2 {
		t.Errorf("FilesWithIssues = %d, want 2", result.Stats.FilesWithIssues)
	}
	if got := result.Stats.DiagnosticsBySeverity["error"]; got != 1 {
		t.Errorf("error diagnostics = %d, want 1", got)
	}
	if got := result.Stats.DiagnosticsBySeverity["warning"]; got != 1 {
		t.Errorf("warning diagnostics = %d, want 1", got)
	}
	// Home: Title. Orders: Total. Cart: total and Total.
	if result.Stats.ControlsDeclared != 4 {
		t.Errorf("ControlsDeclared = %d, want 4", result.Stats.ControlsDeclared)
	}
	if !result.HasFailures() || !result.HasIssues() {
		t.Error("expected failures and issues")
	}

	var names []string
	for _, outcome := range result.Files {
		names = append(names, filepath.Base(outcome.Path))
	}
	if strings.Join(names, ",") != "Cart.aspx,Empty.aspx,Home.aspx,Orders.aspx" {
		t.Errorf("outcome order = %v", names)
	}
}

func TestRunner_Run_SerialMatchesParallel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree := make(map[string]string)
	for i := range 20 {
		name := filepath.Join("pages", string(rune('a'+i))+".aspx")
		if i%2 == 0 {
			tree[name] = duplicatePage
		} else {
			tree[name] = cleanPage
		}
	}
	writeTree(t, dir, tree)

	run := func(jobs int) *runner.Result {
		cfg := config.NewConfig()
		cfg.Jobs = jobs
		opts := runner.OptionsFromConfig(cfg, []string{"pages"})
		opts.WorkingDir = dir

		result, err := newRunner(t, cfg, dir).Run(context.Background(), opts)
		if err != nil {
			t.Fatalf("Run(jobs=%d) error = %v", jobs, err)
		}
		return result
	}

	serial, parallel := run(1), run(8)
	if len(serial.Files) != len(parallel.Files) {
		t.Fatalf("file counts differ: %d vs %d", len(serial.Files), len(parallel.Files))
	}
	for i := range serial.Files {
		if serial.Files[i].Path != parallel.Files[i].Path {
			t.Errorf("order differs at %d: %s vs %s", i, serial.Files[i].Path, parallel.Files[i].Path)
		}
	}
	if serial.Stats.DiagnosticsTotal != 10 || parallel.Stats.DiagnosticsTotal != 10 {
		t.Errorf("diagnostics serial=%d parallel=%d, want 10", serial.Stats.DiagnosticsTotal, parallel.Stats.DiagnosticsTotal)
	}
}

func TestRunner_Run_Fix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		dryRun    bool
		wantWrite bool
	}{
		{"writes fixes", false, true},
		{"dry run", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, map[string]string{"Edit.aspx": codeFilePage})

			cfg := config.NewConfig()
			cfg.Fix = true
			cfg.DryRun = tt.dryRun
			cfg.NoBackups = true
			cfg.EnableChecks = []string{"AX006"}

			opts := runner.OptionsFromConfig(cfg, nil)
			opts.WorkingDir = dir

			result, err := newRunner(t, cfg, dir).Run(context.Background(), opts)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if result.Stats.DiagnosticsFixed != 1 {
				t.Errorf("DiagnosticsFixed = %d, want 1", result.Stats.DiagnosticsFixed)
			}
			if got := result.Stats.FilesModified == 1; got != tt.wantWrite {
				t.Errorf("FilesModified = %d", result.Stats.FilesModified)
			}

			data, err := os.ReadFile(filepath.Join(dir, "Edit.aspx"))
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if got := strings.Contains(string(data), `CodeBehind="Edit.aspx.cs"`); got != tt.wantWrite {
				t.Errorf("content = %q", data)
			}
		})
	}
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.NewConfig()
	opts := runner.OptionsFromConfig(cfg, nil)
	opts.WorkingDir = dir

	result, err := newRunner(t, cfg, dir).Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stats.FilesDiscovered != 0 || result.HasIssues() || result.HasFailures() {
		t.Errorf("unexpected result %+v", result.Stats)
	}
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"Home.aspx": cleanPage})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.NewConfig()
	opts := runner.OptionsFromConfig(cfg, nil)
	opts.WorkingDir = dir

	_, err := newRunner(t, cfg, dir).Run(ctx, opts)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestResult_NilSafe(t *testing.T) {
	t.Parallel()

	var result *runner.Result
	if result.HasFailures() || result.HasIssues() {
		t.Error("nil result reports issues")
	}
}
