package mock

import (
	"context"

	wikimd "github.com/DyllonWright/wikipedia-to-markdown"
)

var _ wikimd.Writer = (*Writer)(nil)

// Writer is a mock implementation of wikimd.Writer.
type Writer struct {
	WriteMarkdownFn func(ctx context.Context, title, content string) (string, error)
}

func (w *Writer) WriteMarkdown(ctx context.Context, title, content string) (string, error) {
	return w.WriteMarkdownFn(ctx, title, content)
}
