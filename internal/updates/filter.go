package updates

import (
	"fmt"
	"regexp"
	"strings"
)

// defaultRejectPattern matches housekeeping commit prefixes that never
// belong in a user-facing changelog.
var defaultRejectPattern = regexp.MustCompile(`(?i)^(chore|ci|build|refactor)\b`)

// Filter decides whether a commit's message is retained. With no override
// pattern it applies the default heuristic: reject merge commits and
// housekeeping prefixes, accept everything else. A user-supplied pattern
// replaces the default policy entirely.
type Filter struct {
	keep *regexp.Regexp
}

// NewFilter compiles an optional override pattern. The pattern is matched
// case-insensitively; an empty pattern selects the default heuristic.
func NewFilter(keepPattern string) (*Filter, error) {
	if keepPattern == "" {
		return &Filter{}, nil
	}
	re, err := regexp.Compile("(?i)" + keepPattern)
	if err != nil {
		return nil, fmt.Errorf("compiling keep pattern %q: %w", keepPattern, err)
	}
	return &Filter{keep: re}, nil
}

// Keep reports whether the message should be retained.
func (f *Filter) Keep(message string) bool {
	if f.keep != nil {
		return f.keep.MatchString(message)
	}

	msg := strings.TrimSpace(message)
	if strings.HasPrefix(strings.ToLower(msg), "merge") {
		return false
	}
	return !defaultRejectPattern.MatchString(msg)
}
