package mock

import (
	"context"

	wikimd "github.com/DyllonWright/wikipedia-to-markdown"
)

var _ wikimd.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of wikimd.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) ([]byte, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.FetchFn(ctx, url)
}
