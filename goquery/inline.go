package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	wikimd "github.com/DyllonWright/wikipedia-to-markdown"
)

// whitespaceRun matches any run of whitespace, including newlines left
// over from HTML source formatting.
var whitespaceRun = regexp.MustCompile(`\s+`)

// inlineRun flattens the selection's children into an inline run: visible
// link text, bold/italic markers, citation references, and inline images.
func (e *Extractor) inlineRun(sel *goquery.Selection, base *url.URL) wikimd.InlineRun {
	var run wikimd.InlineRun
	for _, node := range sel.Nodes {
		e.walkInline(node, base, &run)
	}
	return normalizeRun(run)
}

func (e *Extractor) walkInline(n *html.Node, base *url.URL, run *wikimd.InlineRun) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			appendText(run, c.Data)

		case html.ElementNode:
			switch c.Data {
			case "img":
				src := resolveURL(base, attr(c, "src"))
				if src == "" {
					e.warn("skipping inline image with no resolvable source")
					continue
				}
				*run = append(*run, wikimd.InlineSpan{
					Kind: wikimd.SpanImage,
					Text: attr(c, "alt"),
					URL:  src,
				})

			case "a":
				// Visible text only; the link target is discarded.
				e.walkInline(c, base, run)

			case "b", "strong":
				e.wrapEmphasis(c, base, run, "**")

			case "i", "em":
				e.wrapEmphasis(c, base, run, "*")

			case "sup":
				if idx, ok := CitationIndex(c); ok {
					*run = append(*run, wikimd.InlineSpan{Kind: wikimd.SpanReference, Ref: idx})
					continue
				}
				e.walkInline(c, base, run)

			case "style", "script":
				// rendered markup only

			default:
				if hasClass(c, "mw-editsection") {
					// "[edit]" links are chrome, not content.
					continue
				}
				e.walkInline(c, base, run)
			}
		}
	}
}

// wrapEmphasis surrounds a text-only subtree with a Markdown emphasis
// marker. Mixed subtrees (references, images) pass through unwrapped so
// their spans survive.
func (e *Extractor) wrapEmphasis(n *html.Node, base *url.URL, run *wikimd.InlineRun, marker string) {
	var inner wikimd.InlineRun
	e.walkInline(n, base, &inner)
	inner = normalizeRun(inner)
	if len(inner) == 0 {
		return
	}
	if len(inner) == 1 && inner[0].Kind == wikimd.SpanText {
		if t := strings.TrimSpace(inner[0].Text); t != "" {
			appendText(run, marker+t+marker)
		}
		return
	}
	*run = append(*run, inner...)
}

// appendText merges adjacent text into the run's trailing text span.
func appendText(run *wikimd.InlineRun, s string) {
	if s == "" {
		return
	}
	if n := len(*run); n > 0 && (*run)[n-1].Kind == wikimd.SpanText {
		(*run)[n-1].Text += s
		return
	}
	*run = append(*run, wikimd.InlineSpan{Kind: wikimd.SpanText, Text: s})
}

// normalizeRun collapses whitespace within text spans, trims the run's
// edges, and drops spans left empty.
func normalizeRun(run wikimd.InlineRun) wikimd.InlineRun {
	out := run[:0]
	for _, s := range run {
		if s.Kind == wikimd.SpanText {
			s.Text = whitespaceRun.ReplaceAllString(s.Text, " ")
		}
		out = append(out, s)
	}
	// Trim the leading edge of the first text span and the trailing edge
	// of the last, then drop anything emptied by the trim.
	for len(out) > 0 && out[0].Kind == wikimd.SpanText {
		out[0].Text = strings.TrimLeft(out[0].Text, " ")
		if out[0].Text != "" {
			break
		}
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1].Kind == wikimd.SpanText {
		last := len(out) - 1
		out[last].Text = strings.TrimRight(out[last].Text, " ")
		if out[last].Text != "" {
			break
		}
		out = out[:last]
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// nodeText returns the concatenated text content of a subtree.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}
