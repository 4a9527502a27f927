package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	wikimd "github.com/DyllonWright/wikipedia-to-markdown"
	"github.com/DyllonWright/wikipedia-to-markdown/mock"
	wikislog "github.com/DyllonWright/wikipedia-to-markdown/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs successful fetches and passes the body through", func(t *testing.T) {
		t.Parallel()

		logger, buf := newTestLogger()
		fetcher := wikislog.NewFetcher(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) ([]byte, error) {
				return []byte("<html></html>"), nil
			},
		}, logger)

		body, err := fetcher.Fetch(context.Background(), "https://en.wikipedia.org/wiki/Example")
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", string(body))
		assert.Contains(t, buf.String(), "msg=fetch")
		assert.Contains(t, buf.String(), "url=https://en.wikipedia.org/wiki/Example")
	})

	t.Run("logs failures as warnings and propagates the error", func(t *testing.T) {
		t.Parallel()

		logger, buf := newTestLogger()
		fetcher := wikislog.NewFetcher(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) ([]byte, error) {
				return nil, errors.New("connection refused")
			},
		}, logger)

		_, err := fetcher.Fetch(context.Background(), "https://en.wikipedia.org/wiki/Example")
		require.Error(t, err)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "fetch failed")
	})
}

func TestTableExtractor_ExtractTables(t *testing.T) {
	t.Parallel()

	t.Run("logs the table count", func(t *testing.T) {
		t.Parallel()

		logger, buf := newTestLogger()
		extractor := wikislog.NewTableExtractor(&mock.TableExtractor{
			ExtractTablesFn: func(ctx context.Context, pdf []byte) ([]wikimd.TableBlock, error) {
				return []wikimd.TableBlock{{Rows: [][]string{{"A"}}}}, nil
			},
		}, logger)

		tables, err := extractor.ExtractTables(context.Background(), []byte("%PDF-1.4"))
		require.NoError(t, err)
		assert.Len(t, tables, 1)
		assert.Contains(t, buf.String(), "tables=1")
	})

	t.Run("logs extraction failures as warnings", func(t *testing.T) {
		t.Parallel()

		logger, buf := newTestLogger()
		extractor := wikislog.NewTableExtractor(&mock.TableExtractor{
			ExtractTablesFn: func(ctx context.Context, pdf []byte) ([]wikimd.TableBlock, error) {
				return nil, wikimd.Errorf(wikimd.EUNAVAILABLE, "parse PDF: bad header")
			},
		}, logger)

		_, err := extractor.ExtractTables(context.Background(), []byte("junk"))
		require.Error(t, err)
		assert.Contains(t, buf.String(), "level=WARN")
	})
}
