package commits

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultRemoteTimeout bounds the whole remote fetch, all pages included,
// so the pipeline fails with a RemoteFetchError rather than hang.
const DefaultRemoteTimeout = 30 * time.Second

// remotePageSize is the per_page value sent to the commits endpoint.
const remotePageSize = 100

// APIBaseURL is the base URL of the hosting API's REST endpoint.
// Can be overridden for testing.
var APIBaseURL = "https://api.github.com"

// remoteCommit mirrors the hosting API's commit shape. Only the fields
// mapped into a Record are declared.
type remoteCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name string `json:"name"`
			Date string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// fetchRemote queries the paginated commits endpoint over HTTPS and maps
// each entry into a Record (id = SHA, timestamp = author date). Non-200
// responses fail with RemoteFetchError carrying the status and body;
// malformed bodies fail with RemoteParseError.
func fetchRemote(ctx context.Context, opts Options) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultRemoteTimeout)
	defer cancel()

	var records []Record
	for page := 1; ; page++ {
		batch, err := fetchRemotePage(ctx, opts, page)
		if err != nil {
			return nil, err
		}

		for _, rc := range batch {
			if opts.MaxCount > 0 && len(records) >= opts.MaxCount {
				return records, nil
			}
			rec, err := mapRemoteCommit(rc)
			if err != nil {
				return nil, err
			}
			if opts.Since != nil && rec.Timestamp.Before(*opts.Since) {
				// Commits arrive newest-first; past the cutoff means done.
				return records, nil
			}
			records = append(records, rec)
		}

		if len(batch) < remotePageSize {
			break
		}
		if opts.MaxCount > 0 && len(records) >= opts.MaxCount {
			break
		}
	}

	logDebug("[commits] remote fetch returned %d records", len(records))
	return records, nil
}

// fetchRemotePage fetches and decodes a single page of commits.
func fetchRemotePage(ctx context.Context, opts Options, page int) ([]remoteCommit, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, commitsURL(opts, page), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+opts.RemoteToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, &RemoteFetchError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteFetchError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &RemoteFetchError{Status: resp.StatusCode, Body: string(body)}
	}

	var batch []remoteCommit
	if err := json.Unmarshal(body, &batch); err != nil {
		return nil, &RemoteParseError{Err: err}
	}
	return batch, nil
}

// commitsURL builds the paginated commits endpoint URL for a page.
func commitsURL(opts Options, page int) string {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(remotePageSize))
	q.Set("page", strconv.Itoa(page))
	if opts.Since != nil {
		q.Set("since", opts.Since.UTC().Format(time.RFC3339))
	}
	return fmt.Sprintf("%s/repos/%s/%s/commits?%s",
		APIBaseURL, url.PathEscape(opts.RemoteOwner), url.PathEscape(opts.RemoteRepo), q.Encode())
}

// mapRemoteCommit converts one API entry into a Record.
func mapRemoteCommit(rc remoteCommit) (Record, error) {
	when, err := time.Parse(time.RFC3339, rc.Commit.Author.Date)
	if err != nil {
		return Record{}, &RemoteParseError{Err: fmt.Errorf("commit %s: invalid author date %q: %w", rc.SHA, rc.Commit.Author.Date, err)}
	}
	return Record{
		ID:        rc.SHA,
		Timestamp: when,
		Message:   rc.Commit.Message,
		Author:    rc.Commit.Author.Name,
	}, nil
}
