package main

import (
	"io"
	"log/slog"

	wikimd "github.com/DyllonWright/wikipedia-to-markdown"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Logger *slog.Logger
	Stdout io.Writer

	Fetcher   wikimd.Fetcher
	Extractor wikimd.ContentExtractor
	Writer    wikimd.Writer

	// Tables is nil when PDF table extraction is disabled.
	Tables wikimd.TableExtractor
}
