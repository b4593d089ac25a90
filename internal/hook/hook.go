// Package hook installs and removes the post-commit git hook that reruns
// generation after every commit, and provides the short-lived run lock that
// serializes near-simultaneous hook firings. The core pipeline assumes at
// most one generation process touches the canonical text and index files at
// a time; this package is where that external serialization lives.
package hook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// marker identifies a hook script written by updatefeed, so install and
// uninstall never clobber a hand-written hook.
const marker = "# updatefeed post-commit hook"

// Script returns the POSIX shell post-commit hook body.
func Script() string {
	return marker + `
# Regenerates the updates feed after every commit.
updatefeed generate --lock --quiet || true
`
}

// hookPath resolves the post-commit hook path for a repository root.
func hookPath(repoRoot string) (string, error) {
	gitDir := filepath.Join(repoRoot, ".git")
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%s is not a git repository root", repoRoot)
	}
	return filepath.Join(gitDir, "hooks", "post-commit"), nil
}

// Install writes the post-commit hook and returns its path. An existing
// hook not written by updatefeed is left untouched and reported as an error.
func Install(repoRoot string) (string, error) {
	path, err := hookPath(repoRoot)
	if err != nil {
		return "", err
	}

	if data, err := os.ReadFile(path); err == nil {
		if strings.Contains(string(data), marker) {
			// Already installed; rewrite in case the script changed.
		} else {
			return "", fmt.Errorf("a post-commit hook already exists at %s; merge it manually", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating hooks directory: %w", err)
	}

	script := "#!/bin/sh\n" + Script()
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		return "", fmt.Errorf("writing hook: %w", err)
	}
	return path, nil
}

// Uninstall removes the post-commit hook if updatefeed installed it.
func Uninstall(repoRoot string) error {
	path, err := hookPath(repoRoot)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading hook: %w", err)
	}
	if !strings.Contains(string(data), marker) {
		return fmt.Errorf("post-commit hook at %s was not installed by updatefeed", path)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing hook: %w", err)
	}
	return nil
}
