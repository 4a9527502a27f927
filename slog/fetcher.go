// Package slog provides logging decorators for pipeline components.
package slog

import (
	"context"
	"log/slog"
	"time"

	wikimd "github.com/DyllonWright/wikipedia-to-markdown"
)

// Ensure Fetcher implements wikimd.Fetcher at compile time.
var _ wikimd.Fetcher = (*Fetcher)(nil)

// Fetcher wraps a wikimd.Fetcher with request logging.
type Fetcher struct {
	next   wikimd.Fetcher
	logger *slog.Logger
}

// NewFetcher creates a new logging Fetcher.
func NewFetcher(next wikimd.Fetcher, logger *slog.Logger) *Fetcher {
	return &Fetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	begin := time.Now()
	body, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Warn("fetch failed",
			"url", url,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	f.logger.Info("fetch",
		"url", url,
		"bytes", len(body),
		"duration", time.Since(begin),
	)
	return body, nil
}
