package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/yaklabco/aspxgen/pkg/check/checks" // Register checks
	"github.com/yaklabco/aspxgen/pkg/config"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.TargetFramework != "4.8" {
		t.Errorf("expected target framework 4.8, got %q", result.Config.TargetFramework)
	}
	if result.Config.AppVirtualPath != "/" {
		t.Errorf("expected app virtual path /, got %q", result.Config.AppVirtualPath)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no files loaded, got %v", result.LoadedFrom)
	}
}

func TestLoad_AppRootDefaultsToProjectDir(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, tmpDir, ".aspxgen.yml", "target_framework: \"4.5\"\n")

	workDir := filepath.Join(tmpDir, "pages")
	if err := os.Mkdir(workDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(workDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.AppRoot != tmpDir {
		t.Errorf("expected app root %q, got %q", tmpDir, result.Config.AppRoot)
	}

	bare := t.TempDir()
	result, err = Load(context.Background(), isolated(bare))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.AppRoot != bare {
		t.Errorf("expected app root %q, got %q", bare, result.Config.AppRoot)
	}
}

func TestLoad_AppRootDefaultsToWebRoot(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, tmpDir, ".aspxgen.yml", "target_framework: \"4.5\"\n")
	site := filepath.Join(tmpDir, "src", "Site")
	writeConfig(t, site, "Web.Config", "<configuration />\n")

	workDir := filepath.Join(site, "Pages")
	if err := os.Mkdir(workDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(workDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Paths.WebRoot != site {
		t.Errorf("expected web root %q, got %q", site, result.Paths.WebRoot)
	}
	if result.Config.AppRoot != site {
		t.Errorf("expected app root %q, got %q", site, result.Config.AppRoot)
	}
	if result.Config.TargetFramework != "4.5" {
		t.Errorf("expected project config to load, got framework %q", result.Config.TargetFramework)
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeConfig(t, outer, ".aspxgen.yml", "fix: true\n")
	repo := filepath.Join(outer, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if found != "" {
		t.Errorf("expected search to stop at the repository root, found %q", found)
	}

	found, err = FindProjectConfig(context.Background(), outer)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if want := filepath.Join(outer, ".aspxgen.yml"); found != want {
		t.Errorf("expected %q, got %q", want, found)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	configPath := writeConfig(t, tmpDir, ".aspxgen.yml", `
target_framework: "4.0"
app_root: web
catalogs: [types/catalog.yaml]
failure_log: /var/log/aspxgen.log
checks:
  AX002:
    enabled: false
`)

	// Discovery searches upward from a nested working directory.
	workDir := filepath.Join(tmpDir, "web", "pages")
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(workDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.TargetFramework != "4.0" {
		t.Errorf("expected target framework 4.0, got %q", cfg.TargetFramework)
	}
	if want := filepath.Join(tmpDir, "web"); cfg.AppRoot != want {
		t.Errorf("expected app root %q, got %q", want, cfg.AppRoot)
	}
	if want := filepath.Join(tmpDir, "types", "catalog.yaml"); len(cfg.Catalogs) != 1 || cfg.Catalogs[0] != want {
		t.Errorf("expected catalogs [%q], got %v", want, cfg.Catalogs)
	}
	if cfg.FailureLog != "/var/log/aspxgen.log" {
		t.Errorf("expected absolute failure log to stay as is, got %q", cfg.FailureLog)
	}
	if c, ok := cfg.Checks["AX002"]; !ok || c.Enabled == nil || *c.Enabled {
		t.Error("expected AX002 to be disabled")
	}
	if len(result.LoadedFrom) != 1 || result.LoadedFrom[0] != configPath {
		t.Errorf("expected LoadedFrom [%q], got %v", configPath, result.LoadedFrom)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".aspxgen.yml", "default_namespace: Project\n")
	explicit := writeConfig(t, tmpDir, "ci/aspxgen.yaml", "default_namespace: Explicit\napp_virtual_path: /shop\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.DefaultNamespace != "Explicit" {
		t.Errorf("expected explicit config to win, got %q", result.Config.DefaultNamespace)
	}
	if result.Config.AppVirtualPath != "/shop" {
		t.Errorf("expected /shop, got %q", result.Config.AppVirtualPath)
	}
	if len(result.LoadedFrom) != 2 {
		t.Errorf("expected project and explicit configs loaded, got %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".aspxgen.yml", "target_framework: \"3.5\"\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		TargetFramework: "4.5",
		Fix:             true,
		Jobs:            3,
		Format:          config.FormatHTML,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.TargetFramework != "4.5" {
		t.Errorf("expected CLI framework 4.5, got %q", result.Config.TargetFramework)
	}
	if !result.Config.Fix {
		t.Error("expected fix true (CLI override)")
	}
	if result.Config.Jobs != 3 {
		t.Errorf("expected jobs 3, got %d", result.Config.Jobs)
	}
	if result.Config.Format != config.FormatHTML {
		t.Errorf("expected html format, got %q", result.Config.Format)
	}
}

func TestLoad_Environment(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".aspxgen.yml", "target_framework: \"3.5\"\n")

	t.Setenv("ASPXGEN_TARGET_FRAMEWORK", "4.7.2")
	t.Setenv("ASPXGEN_RESPECT_GITIGNORE", "false")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.TargetFramework != "4.7.2" {
		t.Errorf("expected environment to override file, got %q", result.Config.TargetFramework)
	}
	if result.Config.GitignoreEnabled() {
		t.Error("expected gitignore disabled from environment")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"framework", "target_framework: four\n", "target_framework"},
		{"virtual path", "app_virtual_path: shop\n", "app_virtual_path"},
		{"check severity", "checks:\n  AX002:\n    severity: fatal\n", "checks.AX002.severity"},
		{"backup mode", "backups:\n  enabled: true\n  mode: copy\n", "backups.mode"},
		{"registration", "registrations:\n  - tag_name: Menu\n", "registrations[0].tag_prefix"},
		{"malformed yaml", "checks: [a, b]\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeConfig(t, tmpDir, ".aspxgen.yml", tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.field != "" && !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error to mention %q, got %v", tt.field, err)
			}
		})
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestLoader_NormalizesCheckKeys(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".aspxgen.yml", `
checks:
  unresolved-type:
    severity: error
  codefile-directive:
    enabled: true
  ax007:
    enabled: false
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	checks := result.Config.Checks
	if _, hasName := checks["unresolved-type"]; hasName {
		t.Error("expected unresolved-type to be replaced by its ID")
	}
	if c, ok := checks["AX002"]; !ok || c.Severity == nil || *c.Severity != "error" {
		t.Error("expected AX002 severity error")
	}
	if c, ok := checks["AX006"]; !ok || c.Enabled == nil || !*c.Enabled {
		t.Error("expected AX006 enabled")
	}
	if _, ok := checks["AX007"]; !ok {
		t.Error("expected lower-case ID to be normalized to AX007")
	}
}

func TestLoader_WarnsDuplicateAndUnknownChecks(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".aspxgen.yml", `
checks:
  AX005:
    enabled: false
  duplicate-id:
    enabled: true
  AX999:
    enabled: true
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var duplicate, unknown bool
	for _, w := range result.Warnings {
		if strings.Contains(w, "duplicate") && strings.Contains(w, "AX005") {
			duplicate = true
		}
		if strings.Contains(w, `unknown check "AX999"`) {
			unknown = true
		}
	}
	if !duplicate {
		t.Errorf("expected warning about duplicate check, got warnings: %v", result.Warnings)
	}
	if !unknown {
		t.Errorf("expected warning about unknown check, got warnings: %v", result.Warnings)
	}

	// Keys are visited in sorted order, so the name entry wins.
	ax005 := result.Config.Checks["AX005"]
	if ax005.Enabled == nil || !*ax005.Enabled {
		t.Error("expected AX005 to take the later value")
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	off := false
	warning := "warning"
	errorSeverity := "error"

	base := config.NewConfig()
	base.Registrations = []config.Registration{{TagPrefix: "uc", TagName: "Menu", Src: "~/Menu.ascx"}}
	base.Checks["AX002"] = config.CheckConfig{Severity: &warning, Options: map[string]any{"a": 1}}

	override := &config.Config{
		Registrations:    []config.Registration{{TagPrefix: "ajax", Namespace: "System.Web.UI"}},
		RespectGitignore: &off,
		Backups:          config.BackupsConfig{Enabled: false, Mode: "none"},
		Checks: map[string]config.CheckConfig{
			"AX002": {Severity: &errorSeverity, Options: map[string]any{"b": 2}},
		},
	}

	got := merge(base, override)

	if len(got.Registrations) != 2 {
		t.Errorf("expected registrations to accumulate, got %v", got.Registrations)
	}
	if got.GitignoreEnabled() {
		t.Error("expected respect_gitignore false")
	}
	if got.Backups.Enabled || got.Backups.Mode != "none" {
		t.Errorf("expected backups block replaced, got %+v", got.Backups)
	}
	ax002 := got.Checks["AX002"]
	if *ax002.Severity != "error" {
		t.Errorf("expected override severity, got %q", *ax002.Severity)
	}
	if len(ax002.Options) != 2 {
		t.Errorf("expected options merged, got %v", ax002.Options)
	}
	if len(base.Checks["AX002"].Options) != 1 {
		t.Error("merge must not modify base options")
	}
	if got.TargetFramework != "4.8" {
		t.Errorf("expected base framework kept, got %q", got.TargetFramework)
	}
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"boolean", "ASPXGEN_FIX", "maybe"},
		{"integer", "ASPXGEN_JOBS", "many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if err := LoadFromEnv(config.NewConfig()); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoadFromEnv_Slices(t *testing.T) {
	t.Setenv("ASPXGEN_IGNORE", " bin/** , obj/**,,")
	t.Setenv("ASPXGEN_FAILURE_LOG", "fail.log")

	cfg := config.NewConfig()
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if len(cfg.Ignore) != 2 || cfg.Ignore[0] != "bin/**" || cfg.Ignore[1] != "obj/**" {
		t.Errorf("unexpected ignore patterns %v", cfg.Ignore)
	}
	if cfg.FailureLog != "fail.log" {
		t.Errorf("expected failure log from environment, got %q", cfg.FailureLog)
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	if len(vars) != len(envVars) {
		t.Errorf("expected %d documented variables, got %d", len(envVars), len(vars))
	}
	for name, help := range vars {
		if !strings.HasPrefix(name, envVarPrefix) {
			t.Errorf("%s lacks the %s prefix", name, envVarPrefix)
		}
		if help == "" {
			t.Errorf("%s has no description", name)
		}
	}
}
