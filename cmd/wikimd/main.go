package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/DyllonWright/wikipedia-to-markdown/fs"
	wikigoquery "github.com/DyllonWright/wikipedia-to-markdown/goquery"
	"github.com/DyllonWright/wikipedia-to-markdown/htmltomarkdown"
	wikihttp "github.com/DyllonWright/wikipedia-to-markdown/http"
	wikislog "github.com/DyllonWright/wikipedia-to-markdown/slog"
	"github.com/DyllonWright/wikipedia-to-markdown/tabula"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wikimd"),
		kong.Description("Convert a Wikipedia article to Markdown, with optional PDF table extraction"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	outdir := cli.Outdir
	if outdir == "" {
		outdir, err = fs.DefaultDownloadsDir()
		if err != nil {
			return fmt.Errorf("resolve output directory: %w", err)
		}
	}

	timeout := cli.Timeout
	if timeout == 0 {
		timeout = wikihttp.DefaultFetchTimeout
	}

	// Wire dependencies. One polite request per second keeps the
	// Wikimedia servers happy across the HTML and PDF fetches.
	fetcher := wikihttp.NewFetcher(
		wikihttp.WithTimeout(timeout),
		wikihttp.WithRateLimit(1.0),
	)

	deps := &Dependencies{
		Logger:  logger,
		Fetcher: wikislog.NewFetcher(fetcher, logger),
		Extractor: wikigoquery.NewExtractor(
			wikigoquery.WithCellConverter(htmltomarkdown.NewConverter()),
			wikigoquery.WithLogger(logger),
		),
		Writer: fs.NewWriter(outdir),
		Stdout: stdout,
	}
	if !cli.NoPDF {
		deps.Tables = wikislog.NewTableExtractor(tabula.NewExtractor(), logger)
	}

	cmd := &ConvertCmd{
		URL:          cli.URL,
		Stop:         cli.Stop,
		InlineTables: cli.InlineTables,
	}

	return cmd.Run(ctx, deps)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL          string        `arg:"" required:"" help:"Wikipedia article URL, e.g. https://en.wikipedia.org/wiki/The_Gambler_(2014_film)"`
	Outdir       string        `short:"o" help:"Output directory (default: ~/Downloads)"`
	NoPDF        bool          `name:"no-pdf" help:"Disable PDF download and table extraction"`
	Stop         []string      `help:"Additional section headings at which to stop (case-insensitive)"`
	InlineTables bool          `help:"Place extracted tables at their positions in the article instead of a trailing section"`
	Timeout      time.Duration `short:"t" default:"30s" help:"HTTP request timeout"`
	Verbose      bool          `short:"v" help:"Enable debug logging"`
}
