package commits

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// openRepo opens the git repository rooted at path. It uses go-git's
// PlainOpenWithOptions with DetectDotGit enabled so a subdirectory of the
// working copy also resolves to the repository root.
func openRepo(path string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, &RepositoryNotFoundError{Path: path, Err: err}
	}
	return repo, nil
}

// fetchLocal reads the commit log of the working copy at opts.Root,
// newest-first by committer time, stopping at opts.MaxCount records.
func fetchLocal(opts Options) ([]Record, error) {
	repo, err := openRepo(opts.Root)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		// Empty repository: no commits yet, nothing to fetch.
		logDebug("[commits] no HEAD reference: %v", err)
		return nil, nil
	}

	iter, err := repo.Log(&git.LogOptions{
		From:  head.Hash(),
		Order: git.LogOrderCommitterTime,
		Since: opts.Since,
	})
	if err != nil {
		return nil, fmt.Errorf("reading commit log: %w", err)
	}
	defer iter.Close()

	var records []Record
	err = iter.ForEach(func(c *object.Commit) error {
		if opts.MaxCount > 0 && len(records) >= opts.MaxCount {
			return storer.ErrStop
		}
		if opts.Since != nil && c.Author.When.Before(*opts.Since) {
			// LogOptions.Since filters on committer time; enforce the
			// cutoff on the author date as well.
			return nil
		}
		records = append(records, Record{
			ID:        c.Hash.String(),
			Timestamp: c.Author.When,
			Message:   c.Message,
			Author:    c.Author.Name,
		})
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, fmt.Errorf("iterating commit log: %w", err)
	}

	logDebug("[commits] local fetch returned %d records", len(records))
	return records, nil
}
