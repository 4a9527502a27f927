package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	wikimd "github.com/DyllonWright/wikipedia-to-markdown"
)

// markdownLink matches a Markdown link that is not an image.
var markdownLink = regexp.MustCompile(`(^|[^!])\[([^\]]*)\]\([^)]*\)`)

// infoboxTable converts an infobox into a two-column Property/Value table
// rendered at its document position. Returns nil when no usable rows
// remain, in which case the caller drops the table.
func (e *Extractor) infoboxTable(sel *goquery.Selection) *wikimd.TableBlock {
	tb := &wikimd.TableBlock{
		Caption: collapseSpace(sel.ChildrenFiltered("caption").First().Text()),
		Rows:    [][]string{{"Property", "Value"}},
	}

	sel.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("th, td")
		switch cells.Length() {
		case 2:
			key := e.cellText(cells.Eq(0))
			value := e.cellText(cells.Eq(1))
			if key == "" && value == "" {
				return
			}
			tb.Rows = append(tb.Rows, []string{key, value})
		case 1:
			// Spanning rows act as section labels within the box.
			if v := e.cellText(cells.Eq(0)); v != "" {
				tb.Rows = append(tb.Rows, []string{v, ""})
			}
		default:
			e.warn("skipping malformed infobox row", "cells", cells.Length())
		}
	})

	if len(tb.Rows) <= 1 {
		e.warn("skipping infobox with no usable rows")
		return nil
	}
	tb.Normalize()
	return tb
}

// cellText renders a table cell's content as single-line Markdown,
// falling back to plain text when no converter is configured or the cell
// HTML cannot be converted.
func (e *Extractor) cellText(cell *goquery.Selection) string {
	if e.converter != nil {
		if h, err := goquery.OuterHtml(cell); err == nil {
			if md, err := e.converter.Convert(h); err == nil {
				// Link targets are discarded everywhere; cells keep only
				// the visible link text.
				md = markdownLink.ReplaceAllString(md, "$1$2")
				return collapseSpace(md)
			}
		}
	}
	return collapseSpace(cell.Text())
}

func collapseSpace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
