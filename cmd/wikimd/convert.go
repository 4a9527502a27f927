package main

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"

	wikimd "github.com/DyllonWright/wikipedia-to-markdown"
)

// defaultStopHeadings lists the trailing sections after which article
// content stops being useful for note-taking. The --stop flag adds to
// this set; it never replaces it.
func defaultStopHeadings() []string {
	return []string{"References", "Notes", "Bibliography"}
}

// ConvertCmd converts one article URL into one Markdown file.
type ConvertCmd struct {
	URL          string
	Stop         []string
	InlineTables bool
}

// Run executes the pipeline: acquire, extract, render, write.
func (c *ConvertCmd) Run(ctx context.Context, deps *Dependencies) error {
	body, err := deps.Fetcher.Fetch(ctx, c.URL)
	if err != nil {
		return fmt.Errorf("fetch article: %w", err)
	}

	article, err := deps.Extractor.Extract(string(body), wikimd.ExtractOptions{
		BaseURL:      c.URL,
		StopHeadings: append(defaultStopHeadings(), c.Stop...),
	})
	if err != nil {
		return fmt.Errorf("extract content: %w", err)
	}

	// Table extraction failures degrade the output instead of aborting
	// a conversion that can still produce useful notes.
	var tables []wikimd.TableBlock
	if deps.Tables != nil {
		tables = c.pdfTables(ctx, deps)
	}

	doc := &wikimd.Document{
		Title:      article.Title,
		URL:        c.URL,
		Blocks:     article.Blocks,
		References: article.References,
		Tables:     tables,
	}

	placement := wikimd.TablesAppend
	if c.InlineTables {
		placement = wikimd.TablesInline
	}
	content := wikimd.RenderMarkdown(doc, wikimd.RenderOptions{Placement: placement})
	deps.Logger.Debug("rendered document",
		"bytes", len(content),
		"blocks", len(doc.Blocks),
		"hash", fmt.Sprintf("%016x", xxhash.Sum64String(content)),
	)

	path, err := deps.Writer.WriteMarkdown(ctx, doc.Title, content)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "Markdown file created at: %s\n", path)
	return nil
}

// pdfTables fetches the article's PDF rendering and extracts its tables.
// Every failure is logged and swallowed; the conversion continues with an
// empty table set.
func (c *ConvertCmd) pdfTables(ctx context.Context, deps *Dependencies) []wikimd.TableBlock {
	pdfURL, err := wikimd.PDFURL(c.URL)
	if err != nil {
		deps.Logger.Warn("skipping PDF tables", "error", err)
		return nil
	}

	pdf, err := deps.Fetcher.Fetch(ctx, pdfURL)
	if err != nil {
		deps.Logger.Warn("skipping PDF tables: download failed", "url", pdfURL, "error", err)
		return nil
	}

	tables, err := deps.Tables.ExtractTables(ctx, pdf)
	if err != nil {
		deps.Logger.Warn("skipping PDF tables: extraction failed", "error", err)
		return nil
	}
	return tables
}
