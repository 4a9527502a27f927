// Package goquery implements HTML content extraction for Wikipedia
// articles using the goquery traversal library. It walks the main content
// region and produces the ordered block sequence and reference table.
package goquery

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	wikimd "github.com/DyllonWright/wikipedia-to-markdown"
)

// Ensure Extractor implements wikimd.ContentExtractor at compile time.
var _ wikimd.ContentExtractor = (*Extractor)(nil)

// Extractor extracts typed content blocks from Wikipedia article HTML.
type Extractor struct {
	converter wikimd.Converter
	logger    *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCellConverter sets the converter used to render infobox cell HTML
// as Markdown. Without one, cells fall back to plain text.
func WithCellConverter(c wikimd.Converter) Option {
	return func(e *Extractor) {
		e.converter = c
	}
}

// WithLogger enables warnings for skipped malformed elements.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = l
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses article HTML and returns the title, ordered block
// sequence, and reference table for the main content region. Returns
// ENOTFOUND if the main content region is absent. Malformed individual
// elements are skipped with a warning; extraction continues.
func (e *Extractor) Extract(html string, opts wikimd.ExtractOptions) (*wikimd.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, wikimd.Errorf(wikimd.EINVALID, "failed to parse HTML: %v", err)
	}

	var base *url.URL
	if opts.BaseURL != "" {
		base, err = url.Parse(opts.BaseURL)
		if err != nil {
			return nil, wikimd.Errorf(wikimd.EINVALID, "invalid base URL: %v", err)
		}
	}

	content := doc.Find("div#mw-content-text").First()
	if content.Length() == 0 {
		return nil, wikimd.Errorf(wikimd.ENOTFOUND, "main content region not found")
	}

	article := &wikimd.Article{Title: e.extractTitle(doc, opts.BaseURL)}

	stops := make(map[string]struct{}, len(opts.StopHeadings))
	for _, s := range opts.StopHeadings {
		stops[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	content.Find("h1, h2, h3, h4, h5, h6, p, ul, ol, dl, figure, table").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		return e.appendElement(article, sel, base, stops)
	})

	// The reference table is parsed independently of the stop-heading
	// truncation: footnotes are captured even when content ends early.
	article.References = e.extractReferences(doc, base)

	return article, nil
}

// appendElement converts one content element into blocks. Returning false
// stops the walk (stop heading reached).
func (e *Extractor) appendElement(article *wikimd.Article, sel *goquery.Selection, base *url.URL, stops map[string]struct{}) bool {
	// Elements nested inside tables or figures are handled by the table
	// and image paths; nested lists are handled recursively from their
	// outermost list. The footnote list is parsed separately.
	if sel.ParentsFiltered("table, figure, ul, ol, dl").Length() > 0 {
		return true
	}

	name := goquery.NodeName(sel)
	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		// Match against the extracted text so "[edit]" chrome never
		// defeats a stop heading.
		run := e.inlineRun(sel, base)
		text := strings.TrimSpace(run.Text())
		if _, stop := stops[strings.ToLower(text)]; stop {
			return false
		}
		if text == "" {
			return true
		}
		article.Blocks = append(article.Blocks, wikimd.ContentBlock{
			Kind:   wikimd.BlockHeading,
			Level:  int(name[1] - '0'),
			Inline: run,
		})

	case "p":
		run := e.inlineRun(sel, base)
		if strings.TrimSpace(run.Text()) == "" && len(run.References()) == 0 {
			return true
		}
		article.Blocks = append(article.Blocks, wikimd.ContentBlock{
			Kind:   wikimd.BlockParagraph,
			Inline: run,
		})

	case "ul", "ol":
		if sel.HasClass("references") {
			return true
		}
		e.appendList(article, sel, name == "ol", 0, base)

	case "dl":
		// Definition terms and descriptions read as short paragraphs.
		sel.ChildrenFiltered("dt, dd").Each(func(_ int, child *goquery.Selection) {
			run := e.inlineRun(child, base)
			if strings.TrimSpace(run.Text()) == "" {
				return
			}
			article.Blocks = append(article.Blocks, wikimd.ContentBlock{
				Kind:   wikimd.BlockParagraph,
				Inline: run,
			})
		})

	case "figure":
		if blk, ok := e.imageBlock(sel, base); ok {
			article.Blocks = append(article.Blocks, blk)
		}

	case "table":
		if IsInfobox(sel) {
			if tb := e.infoboxTable(sel); tb != nil {
				article.Blocks = append(article.Blocks, wikimd.ContentBlock{
					Kind:  wikimd.BlockTable,
					Table: tb,
				})
			}
			return true
		}
		// Other tables defer their content to the PDF extraction path.
		article.Blocks = append(article.Blocks, wikimd.ContentBlock{Kind: wikimd.BlockTableMarker})
	}

	return true
}

// appendList emits list item blocks for the list's direct items, then
// recurses into nested lists one depth deeper.
func (e *Extractor) appendList(article *wikimd.Article, list *goquery.Selection, ordered bool, depth int, base *url.URL) {
	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		// Item text excludes nested lists, which become deeper items.
		item := li.Clone()
		item.ChildrenFiltered("ul, ol").Remove()
		run := e.inlineRun(item, base)
		if strings.TrimSpace(run.Text()) != "" || len(run.References()) > 0 {
			article.Blocks = append(article.Blocks, wikimd.ContentBlock{
				Kind:    wikimd.BlockListItem,
				Depth:   depth,
				Ordered: ordered,
				Inline:  run,
			})
		}
		li.ChildrenFiltered("ul, ol").Each(func(_ int, sub *goquery.Selection) {
			e.appendList(article, sub, goquery.NodeName(sub) == "ol", depth+1, base)
		})
	})
}

// imageBlock builds an image block from a figure or image element. An
// image with no resolvable source is skipped with a warning.
func (e *Extractor) imageBlock(sel *goquery.Selection, base *url.URL) (wikimd.ContentBlock, bool) {
	img := sel
	if goquery.NodeName(sel) != "img" {
		img = sel.Find("img").First()
	}
	if img.Length() == 0 {
		return wikimd.ContentBlock{}, false
	}

	src := resolveURL(base, img.AttrOr("src", ""))
	if src == "" {
		e.warn("skipping image with no resolvable source")
		return wikimd.ContentBlock{}, false
	}

	alt := img.AttrOr("alt", "")
	if alt == "" {
		// A figure caption makes a better alt text than nothing.
		alt = strings.TrimSpace(sel.Find("figcaption").First().Text())
	}

	return wikimd.ContentBlock{
		Kind:      wikimd.BlockImage,
		Alt:       alt,
		SourceURL: src,
	}, true
}

// extractTitle reads the article heading, falling back to the URL tail.
func (e *Extractor) extractTitle(doc *goquery.Document, articleURL string) string {
	if t := strings.TrimSpace(doc.Find("h1#firstHeading").First().Text()); t != "" {
		return t
	}
	if t, err := wikimd.ArticleTitleFromURL(articleURL); err == nil {
		return t
	}
	return "wikipedia"
}

func (e *Extractor) warn(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}

// resolveURL resolves a possibly relative source against the article base
// URL. Returns empty string when no absolute URL can be produced.
func resolveURL(base *url.URL, src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if !ref.IsAbs() {
		return ""
	}
	return ref.String()
}
