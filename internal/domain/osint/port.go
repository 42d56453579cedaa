package osint

import "context"

// Result is one web-search hit.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// Searcher port for the external web-search capability. Zero results is a
// valid, non-error response; a transport failure is an error and the caller
// degrades the evidence signal accordingly.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}
