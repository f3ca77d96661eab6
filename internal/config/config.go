// changelint - Keep a Changelog linter
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/changelint

// Package config provides hierarchical configuration management for changelint using koanf.
// Configuration is loaded with priority: environment variables > project config (.changelint.yml)
// > user config (~/.config/changelint/config.yml) > defaults. Project and user files may be
// written in YAML or JSON.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ariel-frischer/changelint/internal/changelog"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "CHANGELINT_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the changelint configuration
type Configuration struct {
	// File is the changelog linted when no path is given on the command line.
	File string `koanf:"file" validate:"required"`

	// ChangeTypes is the change-type vocabulary in the order groups must
	// appear within a release. Security is opt-in.
	ChangeTypes []string `koanf:"change_types" validate:"min=1,dive,required"`

	// PlaceholderDates are accepted in place of an ISO-8601 date.
	PlaceholderDates []string `koanf:"placeholder_dates"`

	// UnreleasedLabel spells the unreleased heading written by fmt and
	// promote. Empty keeps whatever the file uses.
	UnreleasedLabel string `koanf:"unreleased_label"`

	RequireReferences    bool `koanf:"require_references"`
	RequireReferenceURLs bool `koanf:"require_reference_urls"`

	// Rules overrides rule severities: rule ID -> error | warning | off.
	Rules map[string]string `koanf:"rules" validate:"dive,oneof=error warning off"`

	OutputFormat  string        `koanf:"output_format" validate:"oneof=text json"`
	TagPrefix     string        `koanf:"tag_prefix"`
	WatchDebounce time.Duration `koanf:"watch_debounce" validate:"min=0"`
	RemoteTimeout time.Duration `koanf:"remote_timeout" validate:"gt=0"`
	MaxWorkers    int           `koanf:"max_workers" validate:"min=1,max=64"`

	// KeepEmptyGroups keeps placeholder groups when formatting.
	KeepEmptyGroups bool `koanf:"keep_empty_groups"`

	// Sources lists the files and providers that contributed to this configuration.
	Sources map[ConfigSource]string `koanf:"-"`

	k *koanf.Koanf
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .changelint.yml)
	ProjectConfigPath string
	// SkipUserConfig ignores the user-level config file
	SkipUserConfig bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	sources := map[ConfigSource]string{SourceDefault: "built-in"}

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k, sources); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, sources); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k, sources); err != nil {
		return nil, err
	}

	cfg, err := finalizeConfig(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	return cfg, nil
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		_ = k.Set(key, value)
	}
}

func loadUserConfig(k *koanf.Koanf, sources map[ConfigSource]string) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := loadConfigFile(k, path, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	sources[SourceUser] = path
	return nil
}

// loadProjectConfig loads the first project config that exists. An explicit
// path must exist.
func loadProjectConfig(k *koanf.Koanf, customPath string, sources map[ConfigSource]string) error {
	path := customPath
	if path == "" {
		path = FindProjectConfig()
		if path == "" {
			return nil
		}
	} else if !fileExists(path) {
		return fmt.Errorf("config file %s: %w", path, os.ErrNotExist)
	}

	if err := loadConfigFile(k, path, "project"); err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	sources[SourceProject] = path
	return nil
}

// loadConfigFile picks the parser from the file extension. YAML syntax is
// checked first so errors carry line numbers.
func loadConfigFile(k *koanf.Koanf, path, configType string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides. List keys take
// comma separated values.
func loadEnvironmentConfig(k *koanf.Koanf, sources map[ConfigSource]string) error {
	found := false
	provider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = envTransform(key)
		if _, known := KnownKeys[key]; !known {
			return "", nil
		}
		found = true
		if KnownKeys[key].Type == TypeList {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	if found {
		sources[SourceEnv] = EnvPrefix + "*"
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.k = k
	return &cfg, nil
}

// Vocabulary returns the configured change types in canonical spelling.
// Values are validated on load, so every entry is a known type.
func (c *Configuration) Vocabulary() []changelog.ChangeType {
	types := make([]changelog.ChangeType, 0, len(c.ChangeTypes))
	for _, s := range c.ChangeTypes {
		t, _ := changelog.ParseChangeType(s)
		types = append(types, t)
	}
	return types
}

// RuleSeverities merges the require_* switches into the rule overrides.
// Explicit rules entries win.
func (c *Configuration) RuleSeverities() map[string]string {
	out := make(map[string]string, len(c.Rules)+2)
	if c.RequireReferences {
		out["missing-reference"] = "error"
	}
	if c.RequireReferenceURLs {
		out["bare-reference"] = "error"
	}
	for rule, sev := range c.Rules {
		out[rule] = sev
	}
	return out
}

// Marshal renders the effective configuration as YAML or JSON.
func (c *Configuration) Marshal(asJSON bool) ([]byte, error) {
	k := c.k
	if k == nil {
		k = koanf.New(".")
		loadDefaults(k)
	}
	if asJSON {
		return k.Marshal(json.Parser())
	}
	return k.Marshal(yaml.Parser())
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: CHANGELINT_MAX_WORKERS -> max_workers
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
