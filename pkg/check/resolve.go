package check

import (
	"slices"
	"strings"

	"github.com/yaklabco/aspxgen/pkg/config"
)

// ResolvedCheck pairs a Check with its resolved configuration.
type ResolvedCheck struct {
	Check    Check
	Enabled  bool
	Severity config.Severity

	// AutoFix is true when --fix is set and the check may fix.
	AutoFix bool

	// Config is the check's configuration entry, or nil.
	Config *config.CheckConfig
}

// ResolveChecks returns the enabled checks with their resolved settings.
//
// Defaults come from the check, then the checks entry (keyed by ID or
// name) and finally the CLI enable, disable and fix lists.
func ResolveChecks(registry *Registry, cfg *config.Config) []ResolvedCheck {
	var resolved []ResolvedCheck
	for _, c := range registry.Checks() {
		if rc := resolveCheck(c, cfg); rc.Enabled {
			resolved = append(resolved, rc)
		}
	}
	return resolved
}

func resolveCheck(c Check, cfg *config.Config) ResolvedCheck {
	rc := ResolvedCheck{
		Check:    c,
		Enabled:  c.DefaultEnabled(),
		Severity: c.DefaultSeverity(),
		AutoFix:  c.CanFix(),
	}
	if cfg == nil {
		rc.AutoFix = false
		return rc
	}

	if entry, ok := checkEntry(cfg, c); ok {
		rc.Config = &entry
		if entry.Enabled != nil {
			rc.Enabled = *entry.Enabled
		}
		if entry.Severity != nil {
			rc.Severity = config.Severity(*entry.Severity)
		}
		if entry.AutoFix != nil {
			rc.AutoFix = *entry.AutoFix && c.CanFix()
		}
	}

	if matches(cfg.EnableChecks, c) {
		rc.Enabled = true
	}
	if matches(cfg.DisableChecks, c) {
		rc.Enabled = false
	}
	if len(cfg.FixChecks) > 0 {
		rc.AutoFix = c.CanFix() && matches(cfg.FixChecks, c)
	}
	if !cfg.Fix {
		rc.AutoFix = false
	}
	return rc
}

func checkEntry(cfg *config.Config, c Check) (config.CheckConfig, bool) {
	for key, entry := range cfg.Checks {
		if strings.EqualFold(key, c.ID()) || key == c.Name() {
			return entry, true
		}
	}
	return config.CheckConfig{}, false
}

func matches(keys []string, c Check) bool {
	return slices.ContainsFunc(keys, func(key string) bool {
		return strings.EqualFold(key, c.ID()) || key == c.Name()
	})
}
