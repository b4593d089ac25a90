package updates

import (
	"strings"

	"github.com/updatefeed/updatefeed/internal/commits"
)

// MergeOptions configures how new commits are folded into existing state.
type MergeOptions struct {
	Filter   *Filter
	Redactor *Redactor
	// Force discards the existing text and seen ids before merging, so
	// every fetched commit is reprocessed regardless of prior state.
	Force bool
}

// Merge partitions newCommits against the seen index, runs the new ones
// through filter, redactor, and grouper, and prepends the freshly
// serialized blocks to the existing canonical text. The existing text is
// never re-parsed or reformatted, only trimmed and concatenated after a
// blank-line separator, so prior content survives verbatim.
//
// Merge is pure with respect to disk: it takes the state pair as values
// and returns the updated pair; persistence happens at the pipeline
// boundary.
func Merge(existingText string, index *Index, newCommits []commits.Record, opts MergeOptions) (string, *Index) {
	if opts.Force {
		existingText = ""
		index = NewIndex()
	}

	var fresh []Line
	for _, rec := range newCommits {
		if index.Has(rec.ID) {
			continue
		}
		index.Add(rec.ID)
		if !opts.Filter.Keep(rec.Message) {
			continue
		}
		text := opts.Redactor.Redact(subjectLine(rec.Message))
		if text == "" {
			continue
		}
		fresh = append(fresh, Line{When: rec.Timestamp, Text: text})
	}

	newText := Serialize(Group(fresh))
	existing := strings.TrimSpace(existingText)

	switch {
	case newText == "" && existing == "":
		return "", index
	case newText == "":
		return existing + "\n", index
	case existing == "":
		return newText, index
	default:
		return strings.TrimSpace(newText) + "\n\n" + existing + "\n", index
	}
}

// subjectLine returns the first line of a commit message. The canonical
// store is line-oriented, so only the subject contributes a point.
func subjectLine(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		return message[:i]
	}
	return message
}
