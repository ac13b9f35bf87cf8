package configloader

import (
	"maps"

	"github.com/yaklabco/aspxgen/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.TargetFramework != "" {
		result.TargetFramework = override.TargetFramework
	}
	if override.AppVirtualPath != "" {
		result.AppVirtualPath = override.AppVirtualPath
	}
	if override.AppRoot != "" {
		result.AppRoot = override.AppRoot
	}
	if override.DefaultNamespace != "" {
		result.DefaultNamespace = override.DefaultNamespace
	}
	if override.SeverityDefault != "" {
		result.SeverityDefault = override.SeverityDefault
	}
	if override.FailureLog != "" {
		result.FailureLog = override.FailureLog
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.CheckFormat != "" {
		result.CheckFormat = override.CheckFormat
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.RespectGitignore != nil {
		respect := *override.RespectGitignore
		result.RespectGitignore = &respect
	}

	// CLI switches can only be turned on.
	if override.Fix {
		result.Fix = true
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	// A file that sets a backup mode owns the whole backups block, so
	// "enabled: false" next to a mode turns backups off.
	if override.Backups.Mode != "" {
		result.Backups = override.Backups
	} else if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	result.Checks = mergeChecks(base.Checks, override.Checks)

	// Registrations and catalogs accumulate across files.
	if override.Registrations != nil {
		result.Registrations = append(append([]config.Registration(nil), base.Registrations...), override.Registrations...)
	}
	if override.Catalogs != nil {
		result.Catalogs = append(append([]string(nil), base.Catalogs...), override.Catalogs...)
	}

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.EnableChecks != nil {
		result.EnableChecks = override.EnableChecks
	}
	if override.DisableChecks != nil {
		result.DisableChecks = override.DisableChecks
	}
	if override.FixChecks != nil {
		result.FixChecks = override.FixChecks
	}

	return &result
}

// mergeChecks performs a deep merge of per-check configurations.
func mergeChecks(base, override map[string]config.CheckConfig) map[string]config.CheckConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.CheckConfig, len(base)+len(override))
	maps.Copy(result, base)

	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeCheckConfig(existing, val)
		} else {
			result[key] = val
		}
	}

	return result
}

// mergeCheckConfig merges individual check configurations.
func mergeCheckConfig(base, override config.CheckConfig) config.CheckConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Severity != nil {
		result.Severity = override.Severity
	}
	if override.AutoFix != nil {
		result.AutoFix = override.AutoFix
	}

	if override.Options != nil {
		options := make(map[string]any, len(result.Options)+len(override.Options))
		maps.Copy(options, result.Options)
		maps.Copy(options, override.Options)
		result.Options = options
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
