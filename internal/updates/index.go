package updates

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// IndexCorruptError indicates the persisted seen-index file exists but
// failed to parse. It is recovered locally: the caller proceeds with an
// empty index (commits may be reprocessed once) rather than aborting.
type IndexCorruptError struct {
	Path string
	Err  error
}

func (e *IndexCorruptError) Error() string {
	return fmt.Sprintf("seen index %s is corrupt: %v", e.Path, e.Err)
}

func (e *IndexCorruptError) Unwrap() error { return e.Err }

// Index is the persisted set of commit identifiers already incorporated
// into the changelog. It provides at-most-once inclusion per commit across
// incremental runs and is append-only except for forced full rebuilds.
type Index struct {
	seen map[string]struct{}
}

// indexFile is the on-disk shape: { "seen": [commit-id, ...] }.
type indexFile struct {
	Seen []string `json:"seen"`
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{seen: make(map[string]struct{})}
}

// Has reports whether the commit id has already been processed.
func (x *Index) Has(id string) bool {
	_, ok := x.seen[id]
	return ok
}

// Add marks a commit id as processed. Ids are marked once fetched and
// evaluated, regardless of whether the message passed the filter, so a
// commit is never re-evaluated on a later run.
func (x *Index) Add(id string) {
	x.seen[id] = struct{}{}
}

// Len returns the number of seen ids.
func (x *Index) Len() int { return len(x.seen) }

// IDs returns the seen ids sorted, for deterministic persistence.
func (x *Index) IDs() []string {
	ids := make([]string, 0, len(x.seen))
	for id := range x.seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LoadIndex reads a seen index from disk. A missing file yields an empty
// index and no error. A file that fails to parse yields an empty index
// together with an *IndexCorruptError so the caller can warn and proceed.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewIndex(), nil
		}
		return NewIndex(), &IndexCorruptError{Path: path, Err: err}
	}

	var f indexFile
	if err := json.Unmarshal(data, &f); err != nil {
		return NewIndex(), &IndexCorruptError{Path: path, Err: err}
	}

	x := NewIndex()
	for _, id := range f.Seen {
		x.Add(id)
	}
	return x, nil
}

// MarshalIndex serializes the index to its on-disk JSON form.
func MarshalIndex(x *Index) ([]byte, error) {
	ids := x.IDs()
	if ids == nil {
		ids = []string{}
	}
	data, err := json.MarshalIndent(indexFile{Seen: ids}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling seen index: %w", err)
	}
	return append(data, '\n'), nil
}
