package updates

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/updatefeed/updatefeed/internal/commits"
)

// Artifact file names within the output directory.
const (
	TextFileName  = "updates.txt"
	JSONFileName  = "updates.json"
	RSSFileName   = "updates.rss"
	IndexFileName = "updates.index.json"
)

// Config carries everything one generation run needs. Zero values select
// sensible defaults where noted.
type Config struct {
	// Root is the working copy whose commit log is read in local mode.
	Root string
	// OutputDir receives the four artifacts.
	OutputDir string
	// SiteURL prefixes RSS item links; may be empty.
	SiteURL string
	// MaxCommitCount bounds the fetch (default 2000).
	MaxCommitCount int
	// Since, when non-nil, excludes commits authored before the cutoff.
	Since *time.Time
	// KeepPattern overrides the default message filter when non-empty.
	KeepPattern string
	// StripBranch removes a leading [...] prefix from messages.
	StripBranch bool
	// ConfidentialTerms are masked with the confidential marker.
	ConfidentialTerms []string
	// HideTerms are deleted from messages.
	HideTerms []string
	// Force discards prior state and reprocesses the full fetched window.
	Force bool

	// Remote hosting-API credentials. Remote mode runs when all three are set.
	RemoteToken string
	RemoteOwner string
	RemoteRepo  string

	// WarningWriter receives non-fatal warnings (default os.Stderr).
	WarningWriter io.Writer
	// Now supplies the current time for updated_at stamps (default time.Now).
	Now func() time.Time
}

// DefaultMaxCommitCount bounds the fetch when no limit is configured.
const DefaultMaxCommitCount = 2000

// Result is the return contract of a successful generation run.
type Result struct {
	OutDir    string
	TxtPath   string
	JSONPath  string
	RSSPath   string
	IndexPath string
	Items     []Block
}

// Generate runs the full pipeline: fetch commits, filter, redact, group,
// merge into the canonical text, re-derive the JSON and RSS
// representations, and persist all four artifacts. Fetch-stage errors
// propagate before any file on disk is modified; per-block render issues
// are surfaced as warnings and never abort the run.
func Generate(ctx context.Context, cfg Config) (*Result, error) {
	warnw := cfg.WarningWriter
	if warnw == nil {
		warnw = os.Stderr
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	maxCount := cfg.MaxCommitCount
	if maxCount <= 0 {
		maxCount = DefaultMaxCommitCount
	}

	filter, err := NewFilter(cfg.KeepPattern)
	if err != nil {
		return nil, err
	}
	redactor := NewRedactor(cfg.StripBranch, cfg.ConfidentialTerms, cfg.HideTerms)

	records, err := commits.Fetch(ctx, commits.Options{
		Root:        cfg.Root,
		MaxCount:    maxCount,
		Since:       cfg.Since,
		RemoteToken: cfg.RemoteToken,
		RemoteOwner: cfg.RemoteOwner,
		RemoteRepo:  cfg.RemoteRepo,
	})
	if err != nil {
		return nil, err
	}

	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = cfg.Root
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	res := &Result{
		OutDir:    outDir,
		TxtPath:   filepath.Join(outDir, TextFileName),
		JSONPath:  filepath.Join(outDir, JSONFileName),
		RSSPath:   filepath.Join(outDir, RSSFileName),
		IndexPath: filepath.Join(outDir, IndexFileName),
	}

	existingText, err := readExistingText(res.TxtPath, cfg.Force)
	if err != nil {
		return nil, err
	}

	index, err := LoadIndex(res.IndexPath)
	if err != nil {
		var corrupt *IndexCorruptError
		if !errors.As(err, &corrupt) {
			return nil, err
		}
		// Recoverable: proceed with an empty index; commits may be
		// re-included once.
		fmt.Fprintf(warnw, "Warning: %v (rebuilding index)\n", corrupt)
	}

	text, index := Merge(existingText, index, records, MergeOptions{
		Filter:   filter,
		Redactor: redactor,
		Force:    cfg.Force,
	})

	blocks := Parse(text)
	res.Items = blocks

	jsonBytes, err := RenderJSON(blocks, now())
	if err != nil {
		return nil, err
	}
	rssBytes, warnings, err := RenderRSS(blocks, cfg.SiteURL, now())
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		fmt.Fprintf(warnw, "Warning: %s\n", w)
	}
	indexBytes, err := MarshalIndex(index)
	if err != nil {
		return nil, err
	}

	if err := writeArtifacts(ctx, map[string][]byte{
		res.TxtPath:   []byte(text),
		res.JSONPath:  jsonBytes,
		res.RSSPath:   rssBytes,
		res.IndexPath: indexBytes,
	}); err != nil {
		return nil, err
	}

	return res, nil
}

// readExistingText loads the canonical text store, treating a missing file
// (or a forced rebuild) as empty.
func readExistingText(path string, force bool) (string, error) {
	if force {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading canonical text: %w", err)
	}
	return string(data), nil
}

// writeArtifacts persists all artifacts concurrently, each via an atomic
// temp-file-plus-rename so a crashed run never leaves a truncated file.
// The fan-out is one pipeline stage: every write is awaited before return.
func writeArtifacts(ctx context.Context, files map[string][]byte) error {
	g, _ := errgroup.WithContext(ctx)
	for path, data := range files {
		g.Go(func() error {
			return writeFileAtomic(path, data)
		})
	}
	return g.Wait()
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // Best effort cleanup
		return fmt.Errorf("renaming %s into place: %w", filepath.Base(path), err)
	}
	return nil
}
