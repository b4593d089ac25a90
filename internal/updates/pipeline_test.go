package updates

import (
	"bytes"
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

	"github.com/updatefeed/updatefeed/internal/commits"
)

// initTestRepo creates a working repository and commits each message in
// order, one minute apart, so author timestamps are deterministic.
func initTestRepo(t *testing.T, messages ...string) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
	for i, msg := range messages {
		name := filepath.Join(dir, "file.txt")
		content := []byte(msg + "\n" + strconv.Itoa(i))
		require.NoError(t, os.WriteFile(name, content, 0o644))
		_, err = wt.Add("file.txt")
		require.NoError(t, err)

		when := base.Add(time.Duration(i) * time.Minute)
		_, err = wt.Commit(msg, &git.CommitOptions{
			Author: &object.Signature{
				Name:  "Dev",
				Email: "dev@example.com",
				When:  when,
			},
			Committer: &object.Signature{
				Name:  "Dev",
				Email: "dev@example.com",
				When:  when,
			},
		})
		require.NoError(t, err)
	}
	return dir
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
}

func readArtifacts(t *testing.T, res *Result) map[string][]byte {
	t.Helper()

	out := make(map[string][]byte, 4)
	for _, path := range []string{res.TxtPath, res.JSONPath, res.RSSPath, res.IndexPath} {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		out[filepath.Base(path)] = data
	}
	return out
}

func TestGenerate_WritesAllArtifacts(t *testing.T) {
	t.Parallel()

	root := initTestRepo(t, "Fix crash", "chore: tidy", "Add feature")
	outDir := t.TempDir()

	res, err := Generate(context.Background(), Config{
		Root:      root,
		OutputDir: outDir,
		SiteURL:   "https://example.com",
		Now:       fixedNow,
	})
	require.NoError(t, err)

	assert.Equal(t, outDir, res.OutDir)
	files := readArtifacts(t, res)

	text := string(files[TextFileName])
	assert.Contains(t, text, "- Fix crash")
	assert.Contains(t, text, "- Add feature")
	assert.NotContains(t, text, "chore", "chore commits are filtered")

	assert.Contains(t, string(files[JSONFileName]), `"updated_at": "2024-03-05T12:00:00Z"`)
	assert.Contains(t, string(files[RSSFileName]), "https://example.com/updates#2024-03-01")

	// All three ids are marked seen, including the filtered one.
	index, err := LoadIndex(res.IndexPath)
	require.NoError(t, err)
	assert.Equal(t, 3, index.Len())
}

func TestGenerate_Idempotent(t *testing.T) {
	t.Parallel()

	root := initTestRepo(t, "Fix crash", "Add feature")
	outDir := t.TempDir()
	cfg := Config{Root: root, OutputDir: outDir, SiteURL: "https://example.com", Now: fixedNow}

	first, err := Generate(context.Background(), cfg)
	require.NoError(t, err)
	before := readArtifacts(t, first)

	second, err := Generate(context.Background(), cfg)
	require.NoError(t, err)
	after := readArtifacts(t, second)

	for name := range before {
		assert.True(t, bytes.Equal(before[name], after[name]),
			"%s changed on a run with no new commits", name)
	}
}

func TestGenerate_IncrementalAppendsNewCommitsOnly(t *testing.T) {
	t.Parallel()

	root := initTestRepo(t, "Fix crash")
	outDir := t.TempDir()
	cfg := Config{Root: root, OutputDir: outDir, Now: fixedNow}

	_, err := Generate(context.Background(), cfg)
	require.NoError(t, err)

	// A second commit lands between runs.
	repo, err := git.PlainOpen(root)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), []byte("v2"), 0o644))
	_, err = wt.Add("file.txt")
	require.NoError(t, err)
	when := time.Date(2024, 3, 2, 10, 0, 0, 0, time.Local)
	_, err = wt.Commit("Add feature", &git.CommitOptions{
		Author:    &object.Signature{Name: "Dev", Email: "dev@example.com", When: when},
		Committer: &object.Signature{Name: "Dev", Email: "dev@example.com", When: when},
	})
	require.NoError(t, err)

	res, err := Generate(context.Background(), cfg)
	require.NoError(t, err)

	text, err := os.ReadFile(res.TxtPath)
	require.NoError(t, err)
	blocks := Parse(string(text))
	require.Len(t, blocks, 2)
	assert.Equal(t, "2024-03-02", blocks[0].Date)
	assert.Equal(t, []string{"Add feature"}, blocks[0].Points)
	assert.Equal(t, []string{"Fix crash"}, blocks[1].Points)
}

func TestGenerate_SameDateDuplicatesCollapse(t *testing.T) {
	t.Parallel()

	root := initTestRepo(t, "Fix crash", "Fix crash")
	outDir := t.TempDir()

	res, err := Generate(context.Background(), Config{Root: root, OutputDir: outDir, Now: fixedNow})
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	assert.Equal(t, []string{"Fix crash"}, res.Items[0].Points)
}

func TestGenerate_ForceRebuildsFromScratch(t *testing.T) {
	t.Parallel()

	root := initTestRepo(t, "Fix crash")
	outDir := t.TempDir()
	cfg := Config{Root: root, OutputDir: outDir, Now: fixedNow}

	_, err := Generate(context.Background(), cfg)
	require.NoError(t, err)

	// Pollute the canonical text; force must discard it.
	txtPath := filepath.Join(outDir, TextFileName)
	require.NoError(t, os.WriteFile(txtPath, []byte("2020-01-01\n- stale garbage\n"), 0o644))

	cfg.Force = true
	res, err := Generate(context.Background(), cfg)
	require.NoError(t, err)

	text, err := os.ReadFile(res.TxtPath)
	require.NoError(t, err)
	assert.NotContains(t, string(text), "stale garbage")
	assert.Contains(t, string(text), "- Fix crash")
}

func TestGenerate_CorruptIndexRecovers(t *testing.T) {
	t.Parallel()

	root := initTestRepo(t, "Fix crash")
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outDir, IndexFileName), []byte("{bad"), 0o644))

	var warnings bytes.Buffer
	res, err := Generate(context.Background(), Config{
		Root:          root,
		OutputDir:     outDir,
		Now:           fixedNow,
		WarningWriter: &warnings,
	})
	require.NoError(t, err)

	assert.Contains(t, warnings.String(), "rebuilding index")

	index, err := LoadIndex(res.IndexPath)
	require.NoError(t, err)
	assert.Equal(t, 1, index.Len(), "index rewritten from this run's commits")
}

func TestGenerate_FetchErrorLeavesArtifactsUntouched(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	txtPath := filepath.Join(outDir, TextFileName)
	prior := []byte("2024-01-01\n- prior state\n")
	require.NoError(t, os.WriteFile(txtPath, prior, 0o644))

	_, err := Generate(context.Background(), Config{
		Root:      t.TempDir(), // not a repository
		OutputDir: outDir,
		Now:       fixedNow,
	})
	require.Error(t, err)

	var notFound *commits.RepositoryNotFoundError
	assert.True(t, errors.As(err, &notFound))

	data, err := os.ReadFile(txtPath)
	require.NoError(t, err)
	assert.Equal(t, prior, data, "fatal fetch errors must precede all writes")
	assert.NoFileExists(t, filepath.Join(outDir, JSONFileName))
}

func TestGenerate_EmptyRepository(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	outDir := t.TempDir()
	res, err := Generate(context.Background(), Config{Root: dir, OutputDir: outDir, Now: fixedNow})
	require.NoError(t, err)

	text, err := os.ReadFile(res.TxtPath)
	require.NoError(t, err)
	assert.Empty(t, string(text))
	assert.Contains(t, string(mustRead(t, res.JSONPath)), `"items": []`)
}

func TestGenerate_OutputDirDefaultsToRoot(t *testing.T) {
	t.Parallel()

	root := initTestRepo(t, "Fix crash")
	res, err := Generate(context.Background(), Config{Root: root, Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, root, res.OutDir)
	assert.FileExists(t, filepath.Join(root, TextFileName))
}

func TestGenerate_InvalidKeepPattern(t *testing.T) {
	t.Parallel()

	_, err := Generate(context.Background(), Config{
		Root:        t.TempDir(),
		KeepPattern: "[unclosed",
		Now:         fixedNow,
	})
	require.Error(t, err)
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}
