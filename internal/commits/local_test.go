package commits

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initTestRepo creates a repository and commits each message in order, one
// hour apart starting at baseTime.
func initTestRepo(t *testing.T, messages ...string) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	for i, msg := range messages {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte(strconv.Itoa(i)), 0o644))
		_, err = wt.Add("file.txt")
		require.NoError(t, err)

		when := baseTime().Add(time.Duration(i) * time.Hour)
		_, err = wt.Commit(msg, &git.CommitOptions{
			Author:    &object.Signature{Name: "Dev", Email: "dev@example.com", When: when},
			Committer: &object.Signature{Name: "Dev", Email: "dev@example.com", When: when},
		})
		require.NoError(t, err)
	}
	return dir
}

func baseTime() time.Time {
	return time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local)
}

func TestFetch_LocalNewestFirst(t *testing.T) {
	t.Parallel()

	root := initTestRepo(t, "first", "second", "third")

	records, err := Fetch(context.Background(), Options{Root: root})
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "third", records[0].Message)
	assert.Equal(t, "second", records[1].Message)
	assert.Equal(t, "first", records[2].Message)
	assert.Equal(t, "Dev", records[0].Author)
	assert.Len(t, records[0].ID, 40, "id is the full commit hash")
	assert.True(t, records[0].Timestamp.After(records[2].Timestamp))
}

func TestFetch_LocalMaxCount(t *testing.T) {
	t.Parallel()

	root := initTestRepo(t, "a", "b", "c", "d")

	records, err := Fetch(context.Background(), Options{Root: root, MaxCount: 2})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "d", records[0].Message)
	assert.Equal(t, "c", records[1].Message)
}

func TestFetch_LocalSinceCutoff(t *testing.T) {
	t.Parallel()

	root := initTestRepo(t, "old", "recent", "newest")

	// Cutoff lands between the first and second commit.
	since := baseTime().Add(30 * time.Minute)
	records, err := Fetch(context.Background(), Options{Root: root, Since: &since})
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "newest", records[0].Message)
	assert.Equal(t, "recent", records[1].Message)
}

func TestFetch_LocalNotARepository(t *testing.T) {
	t.Parallel()

	_, err := Fetch(context.Background(), Options{Root: t.TempDir()})
	require.Error(t, err)

	var notFound *RepositoryNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Contains(t, notFound.Error(), notFound.Path)
}

func TestFetch_LocalEmptyRepository(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	records, err := Fetch(context.Background(), Options{Root: dir})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetch_LocalFromSubdirectory(t *testing.T) {
	t.Parallel()

	root := initTestRepo(t, "only")
	sub := filepath.Join(root, "nested", "dir")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	records, err := Fetch(context.Background(), Options{Root: sub})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "only", records[0].Message)
}
