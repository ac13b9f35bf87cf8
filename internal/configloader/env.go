package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/aspxgen/pkg/config"
)

const envVarPrefix = "ASPXGEN_"

// envVar is one ASPXGEN_ variable. Set applies a non-empty value.
type envVar struct {
	suffix string
	help   string
	set    func(cfg *config.Config, name, value string) error
}

func stringVar(set func(*config.Config, string)) func(*config.Config, string, string) error {
	return func(cfg *config.Config, _, value string) error {
		set(cfg, value)
		return nil
	}
}

func boolVar(set func(*config.Config, bool)) func(*config.Config, string, string) error {
	return func(cfg *config.Config, name, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", name, value)
		}
		set(cfg, b)
		return nil
	}
}

func intVar(set func(*config.Config, int)) func(*config.Config, string, string) error {
	return func(cfg *config.Config, name, value string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", name, value)
		}
		set(cfg, i)
		return nil
	}
}

func listVar(set func(*config.Config, []string)) func(*config.Config, string, string) error {
	return func(cfg *config.Config, _, value string) error {
		set(cfg, splitList(value))
		return nil
	}
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"TARGET_FRAMEWORK", "Target .NET Framework version, e.g. 4.8",
		stringVar(func(c *config.Config, v string) { c.TargetFramework = v })},
	{"APP_VIRTUAL_PATH", "Virtual root of the web application",
		stringVar(func(c *config.Config, v string) { c.AppVirtualPath = v })},
	{"APP_ROOT", "Physical application directory",
		stringVar(func(c *config.Config, v string) { c.AppRoot = v })},
	{"DEFAULT_NAMESPACE", "Namespace prefixed to Visual Basic class names",
		stringVar(func(c *config.Config, v string) { c.DefaultNamespace = v })},
	{"FAILURE_LOG", "File generation failures are appended to",
		stringVar(func(c *config.Config, v string) { c.FailureLog = v })},
	{"SEVERITY_DEFAULT", "Default severity: error, warning, or info",
		stringVar(func(c *config.Config, v string) { c.SeverityDefault = v })},
	{"FORMAT", "Output format: text, table, json, sarif, diff, summary, or html",
		stringVar(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) })},
	{"CHECK_FORMAT", "Check identifier style: name, id, or combined",
		stringVar(func(c *config.Config, v string) { c.CheckFormat = config.CheckFormat(v) })},
	{"BACKUPS_MODE", "Backup mode: sidecar or none",
		stringVar(func(c *config.Config, v string) { c.Backups.Mode = v })},
	{"FIX", "Enable auto-fix: true or false",
		boolVar(func(c *config.Config, v bool) { c.Fix = v })},
	{"DRY_RUN", "Dry-run mode: true or false",
		boolVar(func(c *config.Config, v bool) { c.DryRun = v })},
	{"BACKUPS_ENABLED", "Enable backups when fixing: true or false",
		boolVar(func(c *config.Config, v bool) { c.Backups.Enabled = v })},
	{"NO_BACKUPS", "Disable backups: true or false",
		boolVar(func(c *config.Config, v bool) { c.NoBackups = v })},
	{"RESPECT_GITIGNORE", "Skip files ignored by .gitignore: true or false",
		boolVar(func(c *config.Config, v bool) { c.RespectGitignore = &v })},
	{"JOBS", "Number of parallel workers (0 = auto)",
		intVar(func(c *config.Config, v int) { c.Jobs = v })},
	{"IGNORE", "Comma-separated list of ignore patterns",
		listVar(func(c *config.Config, v []string) { c.Ignore = v })},
	{"CATALOGS", "Comma-separated list of type catalog files",
		listVar(func(c *config.Config, v []string) { c.Catalogs = v })},
}

// LoadFromEnv applies ASPXGEN_* variables to cfg. Unset and empty variables
// leave the configuration as it is.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, v := range envVars {
		name := envVarPrefix + v.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := v.set(cfg, name, value); err != nil {
			return err
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank items.
func splitList(value string) []string {
	var items []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ListEnvVars returns every supported variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envVars))
	for _, v := range envVars {
		vars[envVarPrefix+v.suffix] = v.help
	}
	return vars
}
