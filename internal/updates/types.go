// Package updates implements the update-generation pipeline: filtering and
// redacting commit messages, grouping them by calendar date, merging against
// a persisted seen-commit index for idempotent incremental runs, and
// re-deriving text, JSON, and RSS representations from one canonical
// text-block format.
//
// The canonical text file is the single source of truth. JSON and RSS are
// always regenerated from its parsed form, never hand-merged.
package updates

// Block is one calendar date's worth of deduplicated changelog lines.
// Within a block, points are a set (no duplicate line text) whose insertion
// order is preserved. Blocks are the unit of both storage and rendering.
type Block struct {
	Date   string   `json:"date"`
	Points []string `json:"points"`
}

// Feed is the JSON representation derived from the canonical text. Items
// preserve block order from the text: descending by date, most recent first.
type Feed struct {
	UpdatedAt string  `json:"updated_at"`
	Items     []Block `json:"items"`
}
