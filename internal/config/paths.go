package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the XDG-compliant user config path:
// ~/.config/updatefeed/config.yml.
func UserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "updatefeed", "config.yml"), nil
}

// LegacyUserConfigPath returns the deprecated JSON user config path:
// ~/.updatefeed/config.json.
func LegacyUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".updatefeed", "config.json"), nil
}

// ProjectConfigPath returns the project config path relative to the
// working directory: .updatefeed/config.yml.
func ProjectConfigPath() string {
	return filepath.Join(".updatefeed", "config.yml")
}

// LegacyProjectConfigPath returns the deprecated JSON project config path.
func LegacyProjectConfigPath() string {
	return filepath.Join(".updatefeed", "config.json")
}
