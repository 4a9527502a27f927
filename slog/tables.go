package slog

import (
	"context"
	"log/slog"
	"time"

	wikimd "github.com/DyllonWright/wikipedia-to-markdown"
)

// Ensure TableExtractor implements wikimd.TableExtractor at compile time.
var _ wikimd.TableExtractor = (*TableExtractor)(nil)

// TableExtractor wraps a wikimd.TableExtractor with extraction logging.
type TableExtractor struct {
	next   wikimd.TableExtractor
	logger *slog.Logger
}

// NewTableExtractor creates a new logging TableExtractor.
func NewTableExtractor(next wikimd.TableExtractor, logger *slog.Logger) *TableExtractor {
	return &TableExtractor{next: next, logger: logger}
}

// ExtractTables delegates to the wrapped extractor and logs the outcome.
func (e *TableExtractor) ExtractTables(ctx context.Context, pdf []byte) ([]wikimd.TableBlock, error) {
	begin := time.Now()
	tables, err := e.next.ExtractTables(ctx, pdf)
	if err != nil {
		e.logger.Warn("PDF table extraction failed",
			"pdf_bytes", len(pdf),
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	e.logger.Info("PDF table extraction",
		"pdf_bytes", len(pdf),
		"tables", len(tables),
		"duration", time.Since(begin),
	)
	return tables, nil
}
