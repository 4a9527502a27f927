package goquery_test

import (
	"testing"

	wikimd "github.com/DyllonWright/wikipedia-to-markdown"
	wikigoquery "github.com/DyllonWright/wikipedia-to-markdown/goquery"
	"github.com/DyllonWright/wikipedia-to-markdown/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<!DOCTYPE html>
<html>
<body>
<div id="content">
<h1 id="firstHeading">The Gambler (2014 film)</h1>
<div id="mw-content-text">
<div class="mw-parser-output">
<table class="infobox vevent">
<tr><th colspan="2">The Gambler</th></tr>
<tr><th>Directed by</th><td>Rupert Wyatt</td></tr>
<tr><th>Starring</th><td><a href="/wiki/Mark_Wahlberg">Mark Wahlberg</a></td></tr>
</table>
<p><b>The Gambler</b> is a 2014 American <a href="/wiki/Crime_film">crime</a> drama film.<sup class="reference"><a href="#cite_note-1">[1]</a></sup></p>
<h2>Plot<span class="mw-editsection"><a href="/edit">edit</a></span></h2>
<p>Jim Bennett is a literature professor.<sup class="reference"><a href="#cite_note-2">[2]</a></sup></p>
<figure typeof="mw:File/Thumb">
<a href="/wiki/File:Poster.jpg"><img src="//upload.wikimedia.org/poster.jpg" alt="Theatrical poster"></a>
<figcaption>Theatrical release poster</figcaption>
</figure>
<h2>Cast</h2>
<ul>
<li>Mark Wahlberg as Jim Bennett</li>
<li>John Goodman as Frank
<ul><li>credited lead</li></ul>
</li>
</ul>
<h2>Reception</h2>
<table class="wikitable">
<tr><th>Year</th><th>Award</th><th>Result</th></tr>
<tr><td>2015</td><td>Saturn</td><td>Nominated</td></tr>
</table>
<p>The film received mixed reviews.</p>
<h2>References</h2>
<ol class="references">
<li id="cite_note-1"><span class="mw-cite-backlink"><a href="#top">^</a></span> <i>Box Office Mojo</i>, retrieved 2015.</li>
<li id="cite_note-2"><span class="mw-cite-backlink"><a href="#top">^</a></span> Production notes.</li>
</ol>
<h2>External links</h2>
<p>Official site.</p>
</div>
</div>
</div>
</body>
</html>`

func extract(t *testing.T, html string, opts wikimd.ExtractOptions) *wikimd.Article {
	t.Helper()
	extractor := wikigoquery.NewExtractor(
		wikigoquery.WithCellConverter(htmltomarkdown.NewConverter()),
	)
	article, err := extractor.Extract(html, opts)
	require.NoError(t, err)
	return article
}

func kinds(blocks []wikimd.ContentBlock) []wikimd.BlockKind {
	out := make([]wikimd.BlockKind, len(blocks))
	for i, b := range blocks {
		out[i] = b.Kind
	}
	return out
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	baseOpts := wikimd.ExtractOptions{
		BaseURL:      "https://en.wikipedia.org/wiki/The_Gambler_(2014_film)",
		StopHeadings: []string{"References", "Notes", "Bibliography"},
	}

	t.Run("reads the article title", func(t *testing.T) {
		t.Parallel()

		article := extract(t, articleHTML, baseOpts)

		assert.Equal(t, "The Gambler (2014 film)", article.Title)
	})

	t.Run("falls back to the URL tail when the heading is missing", func(t *testing.T) {
		t.Parallel()

		html := `<div id="mw-content-text"><p>Stub.</p></div>`
		article := extract(t, html, baseOpts)

		assert.Equal(t, "The Gambler (2014 film)", article.Title)
	})

	t.Run("missing main content region is fatal", func(t *testing.T) {
		t.Parallel()

		extractor := wikigoquery.NewExtractor()
		_, err := extractor.Extract("<html><body><p>not an article</p></body></html>", baseOpts)

		require.Error(t, err)
		assert.Equal(t, wikimd.ENOTFOUND, wikimd.ErrorCode(err))
	})

	t.Run("emits blocks in document order", func(t *testing.T) {
		t.Parallel()

		article := extract(t, articleHTML, baseOpts)

		assert.Equal(t, []wikimd.BlockKind{
			wikimd.BlockTable,     // infobox
			wikimd.BlockParagraph, // lead
			wikimd.BlockHeading,   // Plot
			wikimd.BlockParagraph,
			wikimd.BlockImage,
			wikimd.BlockHeading, // Cast
			wikimd.BlockListItem,
			wikimd.BlockListItem,
			wikimd.BlockListItem, // nested
			wikimd.BlockHeading,  // Reception
			wikimd.BlockTableMarker,
			wikimd.BlockParagraph,
		}, kinds(article.Blocks))
	})

	t.Run("stop heading hard-truncates content", func(t *testing.T) {
		t.Parallel()

		article := extract(t, articleHTML, baseOpts)

		for _, blk := range article.Blocks {
			if blk.Kind == wikimd.BlockHeading {
				assert.NotEqual(t, "References", blk.Inline.Text())
				assert.NotEqual(t, "External links", blk.Inline.Text())
			}
			assert.NotEqual(t, "Official site.", blk.Inline.Text())
		}
	})

	t.Run("stop heading match is case-insensitive", func(t *testing.T) {
		t.Parallel()

		opts := baseOpts
		opts.StopHeadings = []string{"rEcEpTiOn"}
		article := extract(t, articleHTML, opts)

		for _, blk := range article.Blocks {
			assert.NotEqual(t, wikimd.BlockTableMarker, blk.Kind, "wikitable lives after the Reception heading")
		}
	})

	t.Run("edit links are excluded from headings", func(t *testing.T) {
		t.Parallel()

		article := extract(t, articleHTML, baseOpts)

		var headings []string
		for _, blk := range article.Blocks {
			if blk.Kind == wikimd.BlockHeading {
				headings = append(headings, blk.Inline.Text())
				assert.Equal(t, 2, blk.Level)
			}
		}
		assert.Equal(t, []string{"Plot", "Cast", "Reception"}, headings)
	})

	t.Run("citation markers become reference spans", func(t *testing.T) {
		t.Parallel()

		article := extract(t, articleHTML, baseOpts)

		lead := article.Blocks[1]
		require.Equal(t, wikimd.BlockParagraph, lead.Kind)
		assert.Equal(t, []int{1}, lead.Inline.References())
		assert.NotContains(t, lead.Inline.Text(), "[1]")
	})

	t.Run("links contribute visible text only", func(t *testing.T) {
		t.Parallel()

		article := extract(t, articleHTML, baseOpts)

		lead := article.Blocks[1]
		assert.Contains(t, lead.Inline.Text(), "crime drama film")
		assert.NotContains(t, lead.Inline.Text(), "/wiki/Crime_film")
	})

	t.Run("bold text survives as markdown emphasis", func(t *testing.T) {
		t.Parallel()

		article := extract(t, articleHTML, baseOpts)

		lead := article.Blocks[1]
		assert.Contains(t, lead.Inline.Text(), "**The Gambler**")
	})

	t.Run("figure becomes an image block with a resolved URL", func(t *testing.T) {
		t.Parallel()

		article := extract(t, articleHTML, baseOpts)

		var img *wikimd.ContentBlock
		for i := range article.Blocks {
			if article.Blocks[i].Kind == wikimd.BlockImage {
				img = &article.Blocks[i]
				break
			}
		}
		require.NotNil(t, img)
		assert.Equal(t, "Theatrical poster", img.Alt)
		assert.Equal(t, "https://upload.wikimedia.org/poster.jpg", img.SourceURL)
	})

	t.Run("image without a source is skipped", func(t *testing.T) {
		t.Parallel()

		html := `<div id="mw-content-text">
			<figure><img alt="broken"></figure>
			<p>Still here.</p>
		</div>`
		article := extract(t, html, baseOpts)

		assert.Equal(t, []wikimd.BlockKind{wikimd.BlockParagraph}, kinds(article.Blocks))
	})

	t.Run("nested list items carry depth and list kind", func(t *testing.T) {
		t.Parallel()

		article := extract(t, articleHTML, baseOpts)

		var items []wikimd.ContentBlock
		for _, blk := range article.Blocks {
			if blk.Kind == wikimd.BlockListItem {
				items = append(items, blk)
			}
		}
		require.Len(t, items, 3)
		assert.Equal(t, 0, items[0].Depth)
		assert.Equal(t, "Mark Wahlberg as Jim Bennett", items[0].Inline.Text())
		assert.Equal(t, 0, items[1].Depth)
		assert.Equal(t, "John Goodman as Frank", items[1].Inline.Text())
		assert.Equal(t, 1, items[2].Depth)
		assert.Equal(t, "credited lead", items[2].Inline.Text())
		for _, it := range items {
			assert.False(t, it.Ordered)
		}
	})

	t.Run("ordered lists are marked ordered", func(t *testing.T) {
		t.Parallel()

		html := `<div id="mw-content-text"><ol><li>first</li><li>second</li></ol></div>`
		article := extract(t, html, baseOpts)

		require.Len(t, article.Blocks, 2)
		assert.True(t, article.Blocks[0].Ordered)
		assert.True(t, article.Blocks[1].Ordered)
	})

	t.Run("infobox renders inline as a property table", func(t *testing.T) {
		t.Parallel()

		article := extract(t, articleHTML, baseOpts)

		box := article.Blocks[0]
		require.Equal(t, wikimd.BlockTable, box.Kind)
		require.NotNil(t, box.Table)
		assert.Equal(t, []string{"Property", "Value"}, box.Table.Rows[0])
		assert.Contains(t, box.Table.Rows, []string{"Directed by", "Rupert Wyatt"})
		assert.Contains(t, box.Table.Rows, []string{"Starring", "Mark Wahlberg"})
	})

	t.Run("non-infobox table becomes a marker without inline content", func(t *testing.T) {
		t.Parallel()

		article := extract(t, articleHTML, baseOpts)

		for _, blk := range article.Blocks {
			if blk.Kind == wikimd.BlockTableMarker {
				assert.Nil(t, blk.Table)
			}
			if blk.Kind == wikimd.BlockParagraph {
				assert.NotContains(t, blk.Inline.Text(), "Saturn")
			}
		}
	})

	t.Run("references parse despite stop-heading truncation", func(t *testing.T) {
		t.Parallel()

		article := extract(t, articleHTML, baseOpts)

		require.Len(t, article.References, 2)
		assert.Equal(t, 1, article.References[0].Index)
		assert.Equal(t, "*Box Office Mojo*, retrieved 2015.", article.References[0].Text)
		assert.Equal(t, 2, article.References[1].Index)
		assert.Equal(t, "Production notes.", article.References[1].Text)
	})

	t.Run("reference backlinks are stripped", func(t *testing.T) {
		t.Parallel()

		article := extract(t, articleHTML, baseOpts)

		for _, ref := range article.References {
			assert.NotContains(t, ref.Text, "^")
		}
	})
}
