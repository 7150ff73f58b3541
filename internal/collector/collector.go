package collector

import (
	"context"
)

// FetchResult is the raw outcome of the repository listing request
type FetchResult struct {
	// Body is the response body exactly as received
	Body       []byte
	StatusCode int
}

// Collector defines the interface for fetching repository listings
type Collector interface {
	// FetchRepositories performs one request for the authenticated
	// account's repositories. Any status other than 200 is returned as an
	// error together with a result carrying the status code.
	FetchRepositories(ctx context.Context) (*FetchResult, error)
}
