package wikimd

import "strings"

// BlockKind identifies the variant held by a ContentBlock.
type BlockKind int

// BlockKind constants. The zero value is intentionally invalid.
const (
	BlockHeading BlockKind = iota + 1
	BlockParagraph
	BlockListItem
	BlockImage
	BlockTable       // a table rendered inline at its document position
	BlockTableMarker // a table occurred here; content is sourced elsewhere
)

// SpanKind identifies the variant held by an InlineSpan.
type SpanKind int

// SpanKind constants.
const (
	SpanText SpanKind = iota + 1
	SpanReference
	SpanImage
)

// InlineSpan is a single run of inline content: literal text, a citation
// marker, or an inline image. Hyperlink targets are never stored; link
// elements contribute their visible text only.
type InlineSpan struct {
	Kind SpanKind
	Text string // SpanText: literal text; SpanImage: alt text
	Ref  int    // SpanReference: 1-based footnote index
	URL  string // SpanImage: resolved image source
}

// InlineRun is an ordered sequence of inline spans.
type InlineRun []InlineSpan

// Text returns the concatenated plain text of the run, ignoring reference
// markers and images.
func (r InlineRun) Text() string {
	var b strings.Builder
	for _, s := range r {
		if s.Kind == SpanText {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// References returns the citation marker indices in order of appearance.
func (r InlineRun) References() []int {
	var refs []int
	for _, s := range r {
		if s.Kind == SpanReference {
			refs = append(refs, s.Ref)
		}
	}
	return refs
}

// ContentBlock is a tagged variant representing one block of article
// content. Slice order is significant and reflects document order.
type ContentBlock struct {
	Kind BlockKind

	// Level is the heading level (1-6) for BlockHeading.
	Level int

	// Depth is the 0-based nesting depth for BlockListItem.
	Depth int

	// Ordered marks a BlockListItem as belonging to a numbered list.
	Ordered bool

	// Inline holds the content for heading, paragraph, and list item blocks.
	Inline InlineRun

	// Alt and SourceURL describe a BlockImage.
	Alt       string
	SourceURL string

	// Table holds the content of a BlockTable.
	Table *TableBlock
}

// Reference is a single footnote entry keyed by its inline citation index.
type Reference struct {
	Index int
	Text  string
}

// TableBlock is a rows-by-columns grid of cell text.
type TableBlock struct {
	Caption string
	Rows    [][]string
}

// MaxColumns returns the widest row's column count.
func (t *TableBlock) MaxColumns() int {
	max := 0
	for _, row := range t.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// Normalize pads every row with empty cells up to the maximum observed
// column count, so that all rows render with the same cell count.
func (t *TableBlock) Normalize() {
	max := t.MaxColumns()
	for i, row := range t.Rows {
		for len(row) < max {
			row = append(row, "")
		}
		t.Rows[i] = row
	}
}

// Article holds the extracted content of a single article: the title, the
// ordered block sequence, and the footnote table. The block extractor is
// the sole producer of Article values.
type Article struct {
	Title      string
	Blocks     []ContentBlock
	References []Reference
}

// Document is the top-level aggregate handed to the renderer. It must not
// be mutated once rendering begins.
type Document struct {
	Title      string
	URL        string
	Blocks     []ContentBlock
	References []Reference

	// Tables holds tables sourced from the PDF rendering, in page order.
	// Their order is independent of Blocks order.
	Tables []TableBlock
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	if d.Title == "" {
		return Errorf(EINVALID, "document title required")
	}
	seen := make(map[int]struct{}, len(d.References))
	for _, ref := range d.References {
		if ref.Index < 1 {
			return Errorf(EINVALID, "reference index must be positive, got %d", ref.Index)
		}
		if _, ok := seen[ref.Index]; ok {
			return Errorf(EINVALID, "duplicate reference index %d", ref.Index)
		}
		seen[ref.Index] = struct{}{}
	}
	return nil
}
