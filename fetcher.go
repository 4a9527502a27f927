package wikimd

import (
	"context"
	"net/url"
	"regexp"
	"strings"
)

// Fetcher retrieves raw bytes from URLs.
// Implementations apply timeouts, retries, and rate limiting as needed.
type Fetcher interface {
	// Fetch performs a GET request and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// wikiPathPattern matches the article title segment of a /wiki/ URL.
var wikiPathPattern = regexp.MustCompile(`/wiki/(.+)$`)

// ArticleTitleFromURL derives a human-readable title from a Wikipedia
// article URL by decoding the /wiki/ path segment and replacing
// underscores with spaces.
func ArticleTitleFromURL(articleURL string) (string, error) {
	m := wikiPathPattern.FindStringSubmatch(articleURL)
	if m == nil {
		return "", Errorf(EINVALID, "not a Wikipedia article URL: %s", articleURL)
	}
	title, err := url.PathUnescape(m[1])
	if err != nil {
		title = m[1]
	}
	return strings.ReplaceAll(title, "_", " "), nil
}

// PDFURL returns the REST endpoint serving the article's PDF rendering,
// derived from the article URL's host and /wiki/ title segment.
func PDFURL(articleURL string) (string, error) {
	m := wikiPathPattern.FindStringSubmatch(articleURL)
	if m == nil {
		return "", Errorf(EINVALID, "not a Wikipedia article URL: %s", articleURL)
	}
	u, err := url.Parse(articleURL)
	if err != nil || u.Host == "" {
		return "", Errorf(EINVALID, "invalid article URL: %s", articleURL)
	}
	title, err := url.PathUnescape(m[1])
	if err != nil {
		title = m[1]
	}
	return u.Scheme + "://" + u.Host + "/api/rest_v1/page/pdf/" + url.PathEscape(title), nil
}
