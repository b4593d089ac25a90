// Package commits fetches raw commit records from either a local git
// repository or a remote hosting API, normalizing both into one record
// shape. It uses the go-git library for local repositories so no git CLI
// installation is required. Exactly one source runs per invocation: the
// remote API takes priority when its token, owner, and repository name are
// all configured; otherwise the local repository at Root is read.
package commits

import (
	"context"
	"time"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default, it's a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for commit-source operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Record is one normalized commit. Records are immutable after creation
// and sourced fresh each run; downstream stages never branch on which
// source produced them.
type Record struct {
	// ID is the commit hash (local) or remote SHA. Unique and opaque.
	ID string
	// Timestamp is the author date of the commit.
	Timestamp time.Time
	// Message is the full commit message.
	Message string
	// Author is the author name, if known.
	Author string
}

// Options bounds a fetch. MaxCount limits the number of records returned;
// Since, when non-nil, excludes commits authored before the cutoff.
type Options struct {
	Root        string
	MaxCount    int
	Since       *time.Time
	RemoteToken string
	RemoteOwner string
	RemoteRepo  string
}

// remoteConfigured reports whether all three remote values are present.
func (o Options) remoteConfigured() bool {
	return o.RemoteToken != "" && o.RemoteOwner != "" && o.RemoteRepo != ""
}

// Fetch returns commit records ordered newest-first, bounded by
// opts.MaxCount and optionally by opts.Since. The remote source is used
// when fully configured, the local repository otherwise.
func Fetch(ctx context.Context, opts Options) ([]Record, error) {
	if opts.remoteConfigured() {
		logDebug("[commits] fetching from remote %s/%s", opts.RemoteOwner, opts.RemoteRepo)
		return fetchRemote(ctx, opts)
	}
	logDebug("[commits] fetching from local repository at %s", opts.Root)
	return fetchLocal(opts)
}
