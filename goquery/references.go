package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	wikimd "github.com/DyllonWright/wikipedia-to-markdown"
)

// extractReferences parses the article's footnote list into the reference
// table. Indices are assigned in list order, which matches the numbering
// of the inline citation markers.
func (e *Extractor) extractReferences(doc *goquery.Document, base *url.URL) []wikimd.Reference {
	list := doc.Find("ol.references").First()
	if list.Length() == 0 {
		return nil
	}

	var refs []wikimd.Reference
	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		// Backlink carets ("^ a b") point into the article body and add
		// nothing to the footnote text.
		item := li.Clone()
		item.Find(".mw-cite-backlink").Remove()

		text := strings.TrimSpace(e.inlineRun(item, base).Text())
		refs = append(refs, wikimd.Reference{
			Index: len(refs) + 1,
			Text:  text,
		})
	})
	return refs
}
