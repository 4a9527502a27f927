package wikimd

import "context"

// Writer persists a rendered document.
type Writer interface {
	// WriteMarkdown writes content to a file derived from the article
	// title and returns the path written. An existing file of the same
	// name is overwritten.
	WriteMarkdown(ctx context.Context, title, content string) (path string, err error)
}
