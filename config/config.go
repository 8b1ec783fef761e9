package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/wasmguard/analyzer/export"
	"github.com/viant/wasmguard/analyzer/finding"
	"github.com/viant/wasmguard/inspector/graph"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Version is the supported configuration schema major version
const Version = "v1"

// Config represents the analyzer configuration
type Config struct {
	Version           string            `yaml:"version"`
	ExportMarkerName  string            `yaml:"export_marker_name"`
	EnabledRules      []string          `yaml:"enabled_rules"`
	Severity          map[string]string `yaml:"severity"`
	FallibleTypeNames []string          `yaml:"fallible_type_names"`
	Concurrency       int               `yaml:"concurrency"`
	LogLevel          string            `yaml:"log_level"`
}

// Default returns the default configuration
func Default() *Config {
	var rules []string
	for _, id := range finding.DefaultRules() {
		rules = append(rules, string(id))
	}
	return &Config{
		Version:           Version,
		ExportMarkerName:  export.DefaultMarker,
		EnabledRules:      rules,
		FallibleTypeNames: graph.DefaultConfig().FallibleTypes,
	}
}

// Load loads configuration from a YAML file, keeping defaults for absent keys
func Load(ctx context.Context, URL string) (*Config, error) {
	cfg := Default()
	if URL == "" {
		return cfg, nil
	}
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &ConfigurationError{Field: "file", Value: URL, Reason: "invalid yaml", Err: err}
	}
	return cfg, nil
}

// Validate checks the configuration before any unit is processed
func (c *Config) Validate() error {
	if c.Version != "" {
		version := c.Version
		if !strings.HasPrefix(version, "v") {
			version = "v" + version
		}
		if !semver.IsValid(version) || semver.Major(version) != Version {
			return &ConfigurationError{Field: "version", Value: c.Version, Reason: "unsupported version, expected " + Version}
		}
	}
	if strings.TrimSpace(c.ExportMarkerName) == "" {
		return &ConfigurationError{Field: "export_marker_name", Reason: "must not be empty"}
	}
	if _, err := c.Rules(); err != nil {
		return err
	}
	if _, err := c.Severities(); err != nil {
		return err
	}
	for _, name := range c.FallibleTypeNames {
		if strings.TrimSpace(name) == "" || strings.Contains(name, "::") {
			return &ConfigurationError{Field: "fallible_type_names", Value: name, Reason: "expected a bare type name"}
		}
	}
	if c.Concurrency < 0 {
		return &ConfigurationError{Field: "concurrency", Value: fmt.Sprint(c.Concurrency), Reason: "must not be negative"}
	}
	return nil
}

// Rules returns enabled rule identifiers, defaulting to finding.DefaultRules
func (c *Config) Rules() ([]finding.RuleID, error) {
	if len(c.EnabledRules) == 0 {
		return finding.DefaultRules(), nil
	}
	var result []finding.RuleID
	for _, name := range c.EnabledRules {
		id, err := finding.ParseRuleID(name)
		if err != nil {
			return nil, &ConfigurationError{Field: "enabled_rules", Value: name, Reason: "unknown rule", Err: err}
		}
		result = append(result, id)
	}
	return result, nil
}

// Severities returns per rule severity overrides
func (c *Config) Severities() (map[finding.RuleID]finding.Severity, error) {
	result := make(map[finding.RuleID]finding.Severity, len(c.Severity))
	for name, value := range c.Severity {
		id, err := finding.ParseRuleID(name)
		if err != nil {
			return nil, &ConfigurationError{Field: "severity", Value: name, Reason: "unknown rule", Err: err}
		}
		severity, err := finding.ParseSeverity(value)
		if err != nil {
			return nil, &ConfigurationError{Field: "severity." + name, Value: value, Reason: "unknown severity", Err: err}
		}
		result[id] = severity
	}
	return result, nil
}

// Workers returns the number of units analyzed concurrently
func (c *Config) Workers() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return runtime.NumCPU()
}

// Model returns the source model configuration
func (c *Config) Model() *graph.Config {
	ret := graph.DefaultConfig()
	if len(c.FallibleTypeNames) > 0 {
		ret.FallibleTypes = c.FallibleTypeNames
	}
	return ret
}
