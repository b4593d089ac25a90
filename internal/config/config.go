// Package config provides hierarchical configuration management for
// updatefeed using koanf. Configuration is loaded with priority:
// environment variables > project config (.updatefeed/config.yml) > user
// config (~/.config/updatefeed/config.yml) > defaults. YAML is preferred;
// legacy JSON configs are still loaded with a migration warning.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/updatefeed/updatefeed/internal/updates"
)

// Configuration represents the updatefeed CLI tool configuration.
type Configuration struct {
	// Root is the project directory whose commit history is read.
	Root string `koanf:"root"`

	// OutputDir receives updates.txt, updates.json, updates.rss, and the
	// seen index. Empty means auto-detection from the project layout.
	OutputDir string `koanf:"output_dir"`

	// SiteURL prefixes RSS item links (e.g. "https://example.com").
	SiteURL string `koanf:"site_url"`

	// MaxCommitCount bounds how many commits one run fetches.
	MaxCommitCount int `koanf:"max_commit_count"`

	// Since excludes commits authored before this cutoff. Accepts
	// RFC 3339 or a bare yyyy-MM-dd date. Empty means no cutoff.
	Since string `koanf:"since"`

	// KeepPattern replaces the default message filter when set. Compiled
	// case-insensitively; its match result is used exclusively.
	KeepPattern string `koanf:"keep_pattern"`

	// StripBranch removes a leading [...] branch prefix from messages.
	StripBranch bool `koanf:"strip_branch"`

	// ConfidentialTerms is a comma-separated list of literal terms masked
	// with the confidential marker.
	ConfidentialTerms string `koanf:"confidential_terms"`

	// HideTerms is a comma-separated list of literal terms deleted from
	// messages.
	HideTerms string `koanf:"hide_terms"`

	// Remote hosting-API credentials. Remote mode runs when all three are
	// set. Can be set via UPDATEFEED_REMOTE_* env vars.
	RemoteToken string `koanf:"remote_token"`
	RemoteOwner string `koanf:"remote_owner"`
	RemoteRepo  string `koanf:"remote_repo"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path.
	ProjectConfigPath string
	// WarningWriter receives migration warnings (default: os.Stderr).
	WarningWriter io.Writer
	// SkipWarnings suppresses migration warnings.
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := opts.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if err := loadUserConfig(k, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("UPDATEFEED_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := ValidateConfigValues(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.Root = expandHomePath(cfg.Root)
	cfg.OutputDir = expandHomePath(cfg.OutputDir)

	return &cfg, nil
}

// loadUserConfig loads user-level config (YAML preferred, legacy JSON
// supported with a migration warning).
func loadUserConfig(k *koanf.Koanf, warningWriter io.Writer, skipWarnings bool) error {
	yamlPath, _ := UserConfigPath()
	legacyPath, _ := LegacyUserConfigPath()
	return loadLayer(k, yamlPath, legacyPath, "user", warningWriter, skipWarnings)
}

// loadProjectConfig loads project-level config, honoring a custom path
// override (used in tests).
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	yamlPath := ProjectConfigPath()
	if customPath != "" {
		yamlPath = customPath
	}
	return loadLayer(k, yamlPath, LegacyProjectConfigPath(), "project", warningWriter, skipWarnings)
}

// loadLayer loads one config layer, preferring YAML over legacy JSON.
func loadLayer(k *koanf.Koanf, yamlPath, legacyPath, layer string, warningWriter io.Writer, skipWarnings bool) error {
	if fileExists(yamlPath) {
		if err := ValidateYAMLSyntax(yamlPath); err != nil {
			return fmt.Errorf("validating %s config: %w", layer, err)
		}
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading %s config %s: %w", layer, yamlPath, err)
		}
		return nil
	}

	if fileExists(legacyPath) {
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("loading legacy %s config %s: %w", layer, legacyPath, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyPath)
			fmt.Fprintf(warningWriter, "  Move it to %s in YAML format.\n\n", yamlPath)
		}
	}
	return nil
}

// envTransform converts environment variable names to config keys.
// Example: UPDATEFEED_MAX_COMMIT_COUNT -> max_commit_count.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "UPDATEFEED_"))
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// SinceTime parses the configured cutoff. Returns nil when unset.
func (c *Configuration) SinceTime() (*time.Time, error) {
	if strings.TrimSpace(c.Since) == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, c.Since); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid since cutoff %q (expected RFC 3339 or yyyy-MM-dd)", c.Since)
}

// ConfidentialTermList returns the parsed confidential terms.
func (c *Configuration) ConfidentialTermList() []string {
	return updates.SplitTerms(c.ConfidentialTerms)
}

// HideTermList returns the parsed hide terms.
func (c *Configuration) HideTermList() []string {
	return updates.SplitTerms(c.HideTerms)
}
