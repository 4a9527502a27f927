package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// The classification heuristics live here as standalone predicates so they
// can be tested against fixture fragments in isolation.

// citationIndexPattern matches the bracketed index of an inline citation.
var citationIndexPattern = regexp.MustCompile(`\[(\d+)\]`)

// IsInfobox reports whether a table is a structured key/value summary box.
// Wikipedia marks these with an "infobox" class; as a fallback, a table
// whose leading rows form th/td key-value pairs is treated as one.
func IsInfobox(sel *goquery.Selection) bool {
	if cls, ok := sel.Attr("class"); ok {
		for _, c := range strings.Fields(cls) {
			if strings.Contains(strings.ToLower(c), "infobox") {
				return true
			}
		}
	}
	return hasKeyValueShape(sel)
}

// hasKeyValueShape inspects the table's first rows for a two-column
// th/td structure. Rows wider than two cells disqualify the table.
func hasKeyValueShape(sel *goquery.Selection) bool {
	rows := sel.Find("tr")
	if rows.Length() < 2 {
		return false
	}

	pairs := 0
	regular := true
	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i >= 4 {
			return false
		}
		cells := row.ChildrenFiltered("th, td")
		switch cells.Length() {
		case 0, 1:
			// caption-style or spanning row; neutral
		case 2:
			if goquery.NodeName(cells.First()) == "th" {
				pairs++
			}
		default:
			regular = false
			return false
		}
		return true
	})

	return regular && pairs >= 2
}

// CitationIndex reports whether a sup element carries an inline citation
// marker, returning its positive footnote index. Wikipedia renders these
// as <sup class="reference"><a>[n]</a></sup>.
func CitationIndex(n *html.Node) (int, bool) {
	if n.Type != html.ElementNode || n.Data != "sup" || !hasClass(n, "reference") {
		return 0, false
	}
	m := citationIndexPattern.FindStringSubmatch(nodeText(n))
	if m == nil {
		return 0, false
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil || idx < 1 {
		return 0, false
	}
	return idx, true
}
