package updates

import (
	"sort"
	"time"
)

// dateKeyLayout is the calendar-date key format for block headers.
const dateKeyLayout = "2006-01-02"

// Line is one retained, redacted message with the timestamp of the commit
// that produced it.
type Line struct {
	When time.Time
	Text string
}

// Group buckets lines by local-time calendar date, preserving first-seen
// order within a date and dropping exact-text repeats. Blocks are returned
// sorted by date key descending, most recent date first.
func Group(lines []Line) []Block {
	points := make(map[string][]string)
	seen := make(map[string]map[string]struct{})
	var keys []string

	for _, l := range lines {
		key := l.When.Local().Format(dateKeyLayout)
		if _, ok := seen[key]; !ok {
			seen[key] = make(map[string]struct{})
			keys = append(keys, key)
		}
		if _, dup := seen[key][l.Text]; dup {
			continue
		}
		seen[key][l.Text] = struct{}{}
		points[key] = append(points[key], l.Text)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	blocks := make([]Block, 0, len(keys))
	for _, key := range keys {
		blocks = append(blocks, Block{Date: key, Points: points[key]})
	}
	return blocks
}
