package wikimd

import "context"

// ExtractOptions configures content extraction for a single article.
type ExtractOptions struct {
	// BaseURL is used to resolve relative image sources. Usually the
	// article URL itself.
	BaseURL string

	// StopHeadings truncates extraction at the first heading whose text
	// case-insensitively matches any entry. The matched heading and
	// everything after it are dropped.
	StopHeadings []string
}

// ContentExtractor produces the ordered block sequence and reference table
// from the main content region of raw article HTML.
type ContentExtractor interface {
	// Extract parses the HTML and returns the article content.
	// Returns ENOTFOUND if the main content region is absent.
	Extract(html string, opts ExtractOptions) (*Article, error)
}

// TableExtractor produces table blocks from a PDF rendering of the
// article, in page order. Table order is independent of HTML block order.
type TableExtractor interface {
	ExtractTables(ctx context.Context, pdf []byte) ([]TableBlock, error)
}
