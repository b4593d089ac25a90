package updates

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// RenderWarning reports a non-fatal per-block issue during rendering. The
// offending block is skipped in that output format; the run continues for
// remaining blocks and formats.
type RenderWarning struct {
	Date   string
	Reason string
}

func (w RenderWarning) String() string {
	return fmt.Sprintf("skipping block %q: %s", w.Date, w.Reason)
}

// RenderJSON derives the JSON representation from parsed blocks, preserving
// their order (descending by date, most recent block first).
func RenderJSON(blocks []Block, now time.Time) ([]byte, error) {
	items := blocks
	if items == nil {
		items = []Block{}
	}
	feed := Feed{
		UpdatedAt: now.UTC().Format(time.RFC3339),
		Items:     items,
	}
	data, err := json.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON feed: %w", err)
	}
	return append(data, '\n'), nil
}

// RSS 2.0 document shape.
type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
}

// RenderRSS derives an RSS 2.0 document from parsed blocks. Each block
// becomes one item whose id and link are siteURL + "/updates#" + date, whose
// date is the block date at midnight UTC, and whose description joins the
// points as bullet lines. A block whose date string fails to parse is
// skipped and reported as a RenderWarning rather than aborting the render.
func RenderRSS(blocks []Block, siteURL string, now time.Time) ([]byte, []RenderWarning, error) {
	channel := rssChannel{
		Title:         "Updates",
		Link:          siteURL + "/updates",
		Description:   "Latest project updates",
		LastBuildDate: now.UTC().Format(time.RFC1123Z),
	}

	var warnings []RenderWarning
	for _, block := range blocks {
		when, err := time.ParseInLocation(dateKeyLayout, block.Date, time.UTC)
		if err != nil {
			warnings = append(warnings, RenderWarning{Date: block.Date, Reason: "invalid date"})
			continue
		}
		link := siteURL + "/updates#" + block.Date
		channel.Items = append(channel.Items, rssItem{
			Title:       "Updates for " + block.Date,
			Link:        link,
			GUID:        link,
			PubDate:     when.Format(time.RFC1123Z),
			Description: bulletJoin(block.Points),
		})
	}

	data, err := xml.MarshalIndent(rssDoc{Version: "2.0", Channel: channel}, "", "  ")
	if err != nil {
		return nil, warnings, fmt.Errorf("marshaling RSS feed: %w", err)
	}

	out := xml.Header + string(data) + "\n"
	return []byte(out), warnings, nil
}

// bulletJoin renders points as "• point" lines.
func bulletJoin(points []string) string {
	lines := make([]string, len(points))
	for i, p := range points {
		lines[i] = "• " + p
	}
	return strings.Join(lines, "\n")
}
