package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes all checks with their documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// IncludeChecks is a list of check IDs to include.
	// If empty, all checks are included.
	IncludeChecks []string
}

// CheckInfo contains check metadata for template generation.
type CheckInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
	CanFix      bool
}

// CheckInfoProvider is a function that returns check information.
// This allows decoupling from the check package to avoid circular imports.
type CheckInfoProvider func() []CheckInfo

// DefaultCheckInfoProvider is set by the checks package during init.
//
//nolint:gochecknoglobals // Intentional extension point for check info.
var DefaultCheckInfoProvider CheckInfoProvider

const templateHeader = `# aspxgen configuration
# See: https://github.com/yaklabco/aspxgen
`

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(opts)
	}
	if opts.Full {
		return generateFullTemplate(opts), nil
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(templateHeader)
	buf.WriteString(`
# Target .NET Framework version markup is parsed for
target_framework: "4.8"

# Virtual root of the web application and its physical directory
app_virtual_path: /
# app_root: .

# Namespace prepended to Visual Basic class names
# default_namespace: MyApp

# Tag prefixes registered for every page (web.config pages/controls)
# registrations:
#   - tag_prefix: ajax
#     namespace: System.Web.UI
#     assembly: System.Web.Extensions
#   - tag_prefix: uc
#     tag_name: Menu
#     src: ~/controls/Menu.ascx

# Extra type catalogs describing project controls
# catalogs:
#   - catalog.yaml

# File patterns to ignore (glob patterns)
# ignore:
#   - "bin/**"
#   - "obj/**"

# Append generation failures to this file
# failure_log: aspxgen-failures.log
`)
	return buf.Bytes()
}

func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(templateHeader)
	buf.WriteString(`#
# This template includes all available checks with their default settings.
# Uncomment and modify settings as needed.

target_framework: "4.8"
app_virtual_path: /
# app_root: .
# default_namespace: MyApp

# registrations:
#   - tag_prefix: uc
#     tag_name: Menu
#     src: ~/controls/Menu.ascx

# catalogs:
#   - catalog.yaml

# Markup document extensions
extensions:
  - .aspx
  - .ascx
  - .master

# Default severity for all checks: error, warning, or info
severity_default: warning

# File patterns to ignore (glob patterns)
ignore:
  - "bin/**"
  - "obj/**"

# Skip files ignored by .gitignore
respect_gitignore: true

# Backup configuration for auto-fix
backups:
  enabled: true
  mode: sidecar

# failure_log: aspxgen-failures.log

# Check-specific configuration
checks:
`)

	for _, check := range filterChecks(getCheckInfos(), opts.IncludeChecks) {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", check.ID, check.Name)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(check.Description, commentWrapWidth))
		if len(check.Tags) > 0 {
			fmt.Fprintf(&buf, "  # Tags: %s\n", strings.Join(check.Tags, ", "))
		}
		if check.CanFix {
			buf.WriteString("  # Auto-fix: yes\n")
		}
		fmt.Fprintf(&buf, "  %s:\n", check.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", check.Enabled)
		fmt.Fprintf(&buf, "    severity: %s\n", check.Severity)
	}

	return buf.Bytes()
}

func filterChecks(checks []CheckInfo, include []string) []CheckInfo {
	if len(include) > 0 {
		includeSet := make(map[string]bool, len(include))
		for _, id := range include {
			includeSet[id] = true
		}
		filtered := make([]CheckInfo, 0, len(include))
		for _, c := range checks {
			if includeSet[c.ID] {
				filtered = append(filtered, c)
			}
		}
		checks = filtered
	}

	sort.Slice(checks, func(i, j int) bool {
		return checks[i].ID < checks[j].ID
	})
	return checks
}

// getCheckInfos returns information about all registered checks.
func getCheckInfos() []CheckInfo {
	if DefaultCheckInfoProvider != nil {
		return DefaultCheckInfoProvider()
	}
	return nil
}

// wrapComment wraps text to fit within maxWidth, continuing lines as comments.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// templateToJSON renders the starter configuration as JSON.
func templateToJSON(opts TemplateOptions) ([]byte, error) {
	cfg := map[string]any{
		"target_framework": "4.8",
		"app_virtual_path": "/",
		"extensions":       DefaultExtensions(),
		"severity_default": string(SeverityWarning),
		"ignore":           []string{"bin/**", "obj/**"},
		"backups": map[string]any{
			"enabled": true,
			"mode":    "sidecar",
		},
	}

	if opts.Full {
		checks := make(map[string]any)
		for _, c := range filterChecks(getCheckInfos(), opts.IncludeChecks) {
			checks[c.ID] = map[string]any{
				"enabled":  c.Enabled,
				"severity": string(c.Severity),
			}
		}
		cfg["checks"] = checks
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}
