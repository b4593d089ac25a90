package updates

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var renderNow = time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

func TestRenderJSON(t *testing.T) {
	t.Parallel()

	blocks := []Block{
		{Date: "2024-03-02", Points: []string{"newer"}},
		{Date: "2024-03-01", Points: []string{"older", "second"}},
	}

	data, err := RenderJSON(blocks, renderNow)
	require.NoError(t, err)

	var feed Feed
	require.NoError(t, json.Unmarshal(data, &feed))
	assert.Equal(t, "2024-03-05T14:30:00Z", feed.UpdatedAt)
	require.Len(t, feed.Items, 2)
	assert.Equal(t, "2024-03-02", feed.Items[0].Date, "block order preserved")
	assert.Equal(t, []string{"older", "second"}, feed.Items[1].Points)

	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestRenderJSON_EmptyBlocks(t *testing.T) {
	t.Parallel()

	data, err := RenderJSON(nil, renderNow)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"items": []`, "nil blocks render an empty array, not null")
}

func TestRenderJSON_LocalNowNormalizedToUTC(t *testing.T) {
	t.Parallel()

	offset := time.FixedZone("UTC+2", 2*60*60)
	local := time.Date(2024, 3, 5, 16, 30, 0, 0, offset)

	data, err := RenderJSON(nil, local)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"updated_at": "2024-03-05T14:30:00Z"`)
}

func TestRenderRSS(t *testing.T) {
	t.Parallel()

	blocks := []Block{
		{Date: "2024-03-02", Points: []string{"Fix crash", "Add feature"}},
		{Date: "2024-03-01", Points: []string{"Initial release"}},
	}

	data, warnings, err := RenderRSS(blocks, "https://example.com", renderNow)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, xml.Header))

	var doc struct {
		Version string     `xml:"version,attr"`
		Channel rssChannel `xml:"channel"`
	}
	require.NoError(t, xml.Unmarshal(data, &doc))

	assert.Equal(t, "2.0", doc.Version)
	assert.Equal(t, "Updates", doc.Channel.Title)
	assert.Equal(t, "https://example.com/updates", doc.Channel.Link)
	assert.Equal(t, renderNow.Format(time.RFC1123Z), doc.Channel.LastBuildDate)

	require.Len(t, doc.Channel.Items, 2)
	first := doc.Channel.Items[0]
	assert.Equal(t, "Updates for 2024-03-02", first.Title)
	assert.Equal(t, "https://example.com/updates#2024-03-02", first.Link)
	assert.Equal(t, first.Link, first.GUID)
	assert.Equal(t, "Sat, 02 Mar 2024 00:00:00 +0000", first.PubDate, "block date pinned to midnight UTC")
	assert.Equal(t, "• Fix crash\n• Add feature", first.Description)
}

func TestRenderRSS_InvalidDateSkippedWithWarning(t *testing.T) {
	t.Parallel()

	blocks := []Block{
		{Date: "2024-03-02", Points: []string{"kept"}},
		{Date: "not-a-date", Points: []string{"dropped"}},
	}

	data, warnings, err := RenderRSS(blocks, "https://example.com", renderNow)
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.Equal(t, "not-a-date", warnings[0].Date)
	assert.Contains(t, warnings[0].String(), `skipping block "not-a-date"`)

	out := string(data)
	assert.Contains(t, out, "Updates for 2024-03-02")
	assert.NotContains(t, out, "dropped")
}

func TestRenderRSS_EmptySiteURL(t *testing.T) {
	t.Parallel()

	blocks := []Block{{Date: "2024-03-01", Points: []string{"p"}}}

	data, warnings, err := RenderRSS(blocks, "", renderNow)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	// Links degrade to fragment paths; the document stays well-formed.
	assert.Contains(t, string(data), "<link>/updates#2024-03-01</link>")
}
