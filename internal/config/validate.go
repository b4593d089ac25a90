package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// maxCommitCountLimit caps how many commits one run may fetch.
const maxCommitCountLimit = 100000

// ValidateYAMLSyntax checks that a file contains well-formed YAML before
// koanf loads it, so syntax errors surface with the file path attached.
func ValidateYAMLSyntax(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	return nil
}

// ValidateConfigValues checks value constraints after unmarshaling.
func ValidateConfigValues(cfg *Configuration) error {
	if cfg.MaxCommitCount < 1 || cfg.MaxCommitCount > maxCommitCountLimit {
		return fmt.Errorf("max_commit_count must be between 1 and %d, got %d", maxCommitCountLimit, cfg.MaxCommitCount)
	}

	if cfg.KeepPattern != "" {
		if _, err := regexp.Compile("(?i)" + cfg.KeepPattern); err != nil {
			return fmt.Errorf("keep_pattern does not compile: %w", err)
		}
	}

	if _, err := cfg.SinceTime(); err != nil {
		return err
	}

	return nil
}
