// Package scraper turns raw listing and FAQ page HTML into structured
// records. Parsing a unit that lacks required fields is not an error: the
// unit is skipped and counted, and extraction continues.
package scraper

import "context"

// Fetcher returns the raw HTML of a page. The network layer lives behind
// this boundary; see internal/httpx.
type Fetcher interface {
	FetchPage(ctx context.Context, rawURL string) (string, error)
}
