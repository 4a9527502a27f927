package mock

import (
	"context"

	wikimd "github.com/DyllonWright/wikipedia-to-markdown"
)

var _ wikimd.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of wikimd.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string, opts wikimd.ExtractOptions) (*wikimd.Article, error)
}

func (e *ContentExtractor) Extract(html string, opts wikimd.ExtractOptions) (*wikimd.Article, error) {
	return e.ExtractFn(html, opts)
}

var _ wikimd.TableExtractor = (*TableExtractor)(nil)

// TableExtractor is a mock implementation of wikimd.TableExtractor.
type TableExtractor struct {
	ExtractTablesFn func(ctx context.Context, pdf []byte) ([]wikimd.TableBlock, error)
}

func (e *TableExtractor) ExtractTables(ctx context.Context, pdf []byte) ([]wikimd.TableBlock, error) {
	return e.ExtractTablesFn(ctx, pdf)
}
