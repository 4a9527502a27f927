// Package tabula provides a PDF implementation of wikimd.TableExtractor
// using the tabula PDF library's table detection. Tables are returned in
// page order, independent of the article's HTML block order.
package tabula

import (
	"context"
	"os"
	"strings"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/model"

	wikimd "github.com/DyllonWright/wikipedia-to-markdown"
)

// Ensure Extractor implements wikimd.TableExtractor at compile time.
var _ wikimd.TableExtractor = (*Extractor)(nil)

// Extractor locates tabular regions in a PDF rendering of an article and
// returns them as normalized table blocks.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractTables parses raw PDF bytes and returns every detected table in
// page order. Callers treat any failure here as a degraded-output path,
// never as fatal: the conversion continues without tables.
func (e *Extractor) ExtractTables(ctx context.Context, pdf []byte) ([]wikimd.TableBlock, error) {
	if len(pdf) == 0 {
		return nil, wikimd.Errorf(wikimd.EINVALID, "empty PDF input")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The PDF reader works on files, so spool the bytes to a temp file
	// for the duration of the parse.
	tmp, err := os.CreateTemp("", "wikimd-*.pdf")
	if err != nil {
		return nil, wikimd.Errorf(wikimd.EINTERNAL, "create temp PDF: %v", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(pdf); err != nil {
		tmp.Close()
		return nil, wikimd.Errorf(wikimd.EINTERNAL, "write temp PDF: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, wikimd.Errorf(wikimd.EINTERNAL, "close temp PDF: %v", err)
	}

	doc, _, err := tabula.Open(tmp.Name()).Document()
	if err != nil {
		return nil, wikimd.Errorf(wikimd.EUNAVAILABLE, "parse PDF: %v", err)
	}

	var tables []wikimd.TableBlock
	for _, page := range doc.Pages {
		for _, t := range page.ExtractTables() {
			tb := toTableBlock(t)
			if len(tb.Rows) == 0 {
				continue
			}
			tables = append(tables, tb)
		}
	}
	return tables, nil
}

// toTableBlock flattens a detected table's cell text into a normalized
// grid. Empty cells survive as empty strings to preserve column
// alignment; rows with no content at all are dropped.
func toTableBlock(t *model.Table) wikimd.TableBlock {
	var tb wikimd.TableBlock
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row))
		empty := true
		for _, cell := range row {
			text := strings.TrimSpace(strings.ReplaceAll(cell.Text, "\n", " "))
			if text != "" {
				empty = false
			}
			cells = append(cells, text)
		}
		if empty {
			continue
		}
		tb.Rows = append(tb.Rows, cells)
	}
	tb.Normalize()
	return tb
}
