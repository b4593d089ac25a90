package config

// GetDefaultConfigTemplate returns a fully commented config template that
// helps users understand all available options.
func GetDefaultConfigTemplate() string {
	return `# updatefeed configuration
# Priority: UPDATEFEED_* env vars > .updatefeed/config.yml > ~/.config/updatefeed/config.yml

# Source settings
root: "."                             # Project directory whose commit history is read
max_commit_count: 2000                # Max commits fetched per run
since: ""                             # Cutoff: RFC 3339 or yyyy-MM-dd (empty = no cutoff)

# Remote mode (used when all three are set; otherwise the local log is read)
remote_token: ""                      # Hosting API token (prefer UPDATEFEED_REMOTE_TOKEN)
remote_owner: ""                      # Repository owner
remote_repo: ""                       # Repository name

# Output settings
output_dir: ""                        # Artifact directory (empty = auto-detect public/static/dist/www)
site_url: ""                          # Link prefix for RSS items, e.g. https://example.com

# Message handling
keep_pattern: ""                      # Override filter regex (case-insensitive; replaces the default)
strip_branch: false                   # Strip a leading [branch] prefix from messages
confidential_terms: ""                # Comma-separated terms masked with --confidential--
hide_terms: ""                        # Comma-separated terms deleted from messages
`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"root": ".",
		// output_dir: empty selects auto-detection from the project layout
		// (public/, static/, dist/, www/).
		"output_dir": "",
		"site_url":   "",
		// max_commit_count: one run never reads more than this many commits.
		"max_commit_count":   2000,
		"since":              "",
		"keep_pattern":       "",
		"strip_branch":       false,
		"confidential_terms": "",
		"hide_terms":         "",
		"remote_token":       "",
		"remote_owner":       "",
		"remote_repo":        "",
	}
}
