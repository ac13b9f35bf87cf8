// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support and validation.
package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (ASPXGEN_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.aspxgen.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/aspxgen/config.yaml)
//  6. System config (/etc/aspxgen/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	if opts.ExplicitPath != "" {
		paths.Explicit = opts.ExplicitPath
	}

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		fileCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	if cfg.AppRoot == "" {
		cfg.AppRoot = defaultAppRoot(paths, workDir, opts.IgnoreProjectConfig)
	}

	// Check names such as "unresolved-type" are accepted as keys.
	normalizeCheckKeys(cfg, check.DefaultRegistry, result)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file. Relative app_root,
// catalogs and failure_log paths are resolved against the file's directory.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	cfg.AppRoot = resolveRelative(dir, cfg.AppRoot)
	cfg.FailureLog = resolveRelative(dir, cfg.FailureLog)
	for i, catalog := range cfg.Catalogs {
		cfg.Catalogs[i] = resolveRelative(dir, catalog)
	}

	return cfg, nil
}

func resolveRelative(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// normalizeCheckKeys converts check names to canonical IDs in the config.
// If a check is specified by both ID and name, warns and uses the last value encountered.
func normalizeCheckKeys(cfg *config.Config, registry *check.Registry, result *LoadResult) {
	if len(cfg.Checks) == 0 {
		return
	}

	normalized := make(map[string]config.CheckConfig, len(cfg.Checks))
	seenIDs := make(map[string]string)

	for _, key := range sortedCheckKeys(cfg.Checks) {
		checkCfg := cfg.Checks[key]

		c, found := registry.Get(key)
		if !found {
			// Validation warns about it.
			normalized[key] = checkCfg
			continue
		}

		id := c.ID()
		if originalKey, exists := seenIDs[id]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate check configuration: %q and %q both refer to %s; using last value",
					originalKey, key, id))
		}

		seenIDs[id] = key
		normalized[id] = checkCfg
	}

	cfg.Checks = normalized
}

// defaultAppRoot picks the application directory when no layer sets one:
// the nearest Web.config directory, then the project config directory, then
// the working directory.
func defaultAppRoot(paths *ConfigPaths, workDir string, ignoreProject bool) string {
	switch {
	case paths.WebRoot != "":
		return paths.WebRoot
	case paths.Project != "" && !ignoreProject:
		return filepath.Dir(paths.Project)
	default:
		return workDir
	}
}
