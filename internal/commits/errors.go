package commits

import "fmt"

// RepositoryNotFoundError indicates the configured root path is not a valid
// git repository. Fatal: the run aborts before any output file is written.
type RepositoryNotFoundError struct {
	Path string
	Err  error
}

func (e *RepositoryNotFoundError) Error() string {
	return fmt.Sprintf("no git repository found at %s: %v", e.Path, e.Err)
}

func (e *RepositoryNotFoundError) Unwrap() error { return e.Err }

// RemoteFetchError indicates a failed request to the hosting API. Status is
// zero when the request itself failed (network error or timeout) rather
// than returning a non-success status.
type RemoteFetchError struct {
	Status int
	Body   string
	Err    error
}

func (e *RemoteFetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote API returned status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("remote fetch failed: %v", e.Err)
}

func (e *RemoteFetchError) Unwrap() error { return e.Err }

// RemoteParseError indicates the hosting API response body was not valid JSON.
type RemoteParseError struct {
	Err error
}

func (e *RemoteParseError) Error() string {
	return fmt.Sprintf("parsing remote API response: %v", e.Err)
}

func (e *RemoteParseError) Unwrap() error { return e.Err }
