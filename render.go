package wikimd

import (
	"fmt"
	"regexp"
	"strings"
)

// TablePlacement selects where PDF-extracted tables appear in the output.
type TablePlacement int

const (
	// TablesAppend collects extracted tables in a trailing
	// "## Extracted Tables" section. This is the default.
	TablesAppend TablePlacement = iota

	// TablesInline substitutes extracted tables at table-marker positions
	// in document order. Tables left over after the last marker are
	// appended as in TablesAppend.
	TablesInline
)

// RenderOptions configures Markdown serialization.
type RenderOptions struct {
	Placement TablePlacement
}

// citationPattern matches a bracketed footnote index such as [3].
var citationPattern = regexp.MustCompile(`\[(\d+)\]`)

// EscapeCitations backslash-escapes bracketed numbers so Markdown
// renderers do not treat them as link references.
func EscapeCitations(s string) string {
	return citationPattern.ReplaceAllString(s, `\[$1]`)
}

// RenderMarkdown serializes a Document into final Markdown text. It is a
// pure function of its inputs: no network or filesystem access, and the
// same document and options always yield byte-identical output.
func RenderMarkdown(doc *Document, opts RenderOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# [%s](%s)\n", doc.Title, doc.URL)

	nextTable := 0
	i := 0
	for i < len(doc.Blocks) {
		blk := doc.Blocks[i]
		switch blk.Kind {
		case BlockHeading:
			b.WriteString("\n" + strings.Repeat("#", clampLevel(blk.Level)) + " " + renderInline(blk.Inline) + "\n")
		case BlockParagraph:
			if text := renderInline(blk.Inline); text != "" {
				b.WriteString("\n" + text + "\n")
			}
		case BlockListItem:
			i = renderListRun(&b, doc.Blocks, i)
			continue
		case BlockImage:
			fmt.Fprintf(&b, "\n![%s](%s)\n", blk.Alt, blk.SourceURL)
		case BlockTable:
			if blk.Table != nil && len(blk.Table.Rows) > 0 {
				b.WriteString("\n" + renderTable(blk.Table) + "\n")
			}
		case BlockTableMarker:
			// In append mode the marker emits nothing; the table content
			// arrives via the Extracted Tables section instead.
			if opts.Placement == TablesInline && nextTable < len(doc.Tables) {
				b.WriteString("\n" + renderTable(&doc.Tables[nextTable]) + "\n")
				nextTable++
			}
		}
		i++
	}

	if len(doc.References) > 0 {
		b.WriteString("\n## References\n")
		for _, ref := range doc.References {
			fmt.Fprintf(&b, "[%d] %s\n", ref.Index, ref.Text)
		}
	}

	if rest := doc.Tables[nextTable:]; len(rest) > 0 {
		b.WriteString("\n## Extracted Tables\n")
		for n := range rest {
			fmt.Fprintf(&b, "\n### Table %d\n\n", n+1)
			b.WriteString(renderTable(&rest[n]) + "\n")
		}
	}

	return b.String()
}

// renderListRun renders a contiguous run of list item blocks starting at
// index i and returns the index of the first block past the run. Ordered
// items are numbered within their run per nesting depth.
func renderListRun(b *strings.Builder, blocks []ContentBlock, i int) int {
	b.WriteString("\n")
	counters := make(map[int]int)
	prevDepth := -1
	for i < len(blocks) && blocks[i].Kind == BlockListItem {
		it := blocks[i]
		if it.Depth < prevDepth {
			for d := range counters {
				if d > it.Depth {
					delete(counters, d)
				}
			}
		}
		prefix := "- "
		if it.Ordered {
			counters[it.Depth]++
			prefix = fmt.Sprintf("%d. ", counters[it.Depth])
		}
		b.WriteString(strings.Repeat("  ", it.Depth) + prefix + renderInline(it.Inline) + "\n")
		prevDepth = it.Depth
		i++
	}
	return i
}

// renderInline serializes an inline run, escaping citation tokens.
func renderInline(run InlineRun) string {
	var b strings.Builder
	for _, s := range run {
		switch s.Kind {
		case SpanText:
			b.WriteString(EscapeCitations(s.Text))
		case SpanReference:
			fmt.Fprintf(&b, `\[%d]`, s.Ref)
		case SpanImage:
			fmt.Fprintf(&b, "![%s](%s)", s.Text, s.URL)
		}
	}
	return strings.TrimSpace(b.String())
}

// renderTable serializes a table as a pipe-delimited Markdown table with a
// header-separator row. Rows are padded to the widest row without mutating
// the input.
func renderTable(t *TableBlock) string {
	cols := t.MaxColumns()
	if cols == 0 {
		return ""
	}

	row := func(cells []string) string {
		escaped := make([]string, cols)
		for j := 0; j < cols; j++ {
			if j < len(cells) {
				escaped[j] = escapeCell(cells[j])
			}
		}
		return "| " + strings.Join(escaped, " | ") + " |"
	}

	lines := make([]string, 0, len(t.Rows)+1)
	lines = append(lines, row(t.Rows[0]))
	sep := make([]string, cols)
	for j := range sep {
		sep[j] = "---"
	}
	lines = append(lines, "| "+strings.Join(sep, " | ")+" |")
	for _, r := range t.Rows[1:] {
		lines = append(lines, row(r))
	}
	return strings.Join(lines, "\n")
}

// escapeCell flattens newlines and escapes pipes so cell content cannot
// break table structure.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.TrimSpace(s)
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}
