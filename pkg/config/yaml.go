package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
// It produces human-readable output with appropriate formatting.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Checks == nil {
		cfg.Checks = make(map[string]CheckConfig)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := &Config{
		TargetFramework:  c.TargetFramework,
		AppVirtualPath:   c.AppVirtualPath,
		AppRoot:          c.AppRoot,
		DefaultNamespace: c.DefaultNamespace,
		Registrations:    slices.Clone(c.Registrations),
		Catalogs:         slices.Clone(c.Catalogs),
		Extensions:       slices.Clone(c.Extensions),
		SeverityDefault:  c.SeverityDefault,
		Ignore:           slices.Clone(c.Ignore),
		Backups:          c.Backups, // BackupsConfig only has value types
		FailureLog:       c.FailureLog,
		Fix:              c.Fix,
		DryRun:           c.DryRun,
		Format:           c.Format,
		CheckFormat:      c.CheckFormat,
		Jobs:             c.Jobs,
		EnableChecks:     slices.Clone(c.EnableChecks),
		DisableChecks:    slices.Clone(c.DisableChecks),
		FixChecks:        slices.Clone(c.FixChecks),
		NoBackups:        c.NoBackups,
	}

	if c.RespectGitignore != nil {
		respect := *c.RespectGitignore
		clone.RespectGitignore = &respect
	}

	if c.Checks != nil {
		clone.Checks = make(map[string]CheckConfig, len(c.Checks))
		for k, v := range c.Checks {
			clone.Checks[k] = v.clone()
		}
	}

	return clone
}

// clone creates a deep copy of a CheckConfig.
func (cc CheckConfig) clone() CheckConfig {
	clone := CheckConfig{}

	if cc.Enabled != nil {
		enabled := *cc.Enabled
		clone.Enabled = &enabled
	}

	if cc.Severity != nil {
		severity := *cc.Severity
		clone.Severity = &severity
	}

	if cc.AutoFix != nil {
		autoFix := *cc.AutoFix
		clone.AutoFix = &autoFix
	}

	if cc.Options != nil {
		clone.Options = make(map[string]any, len(cc.Options))
		maps.Copy(clone.Options, cc.Options) // Note: nested maps/slices in Options are not deep copied
	}

	return clone
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
