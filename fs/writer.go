// Package fs provides file-based output for rendered documents.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	wikimd "github.com/DyllonWright/wikipedia-to-markdown"
)

// unsafeChars matches characters illegal in file names on common
// filesystems.
var unsafeChars = regexp.MustCompile(`[\\/*?:"<>|]`)

var whitespaceRun = regexp.MustCompile(`\s+`)

// SanitizeFilename converts an article title to a filesystem-safe base
// name: illegal characters become hyphens and whitespace collapses.
// An empty result falls back to "wikipedia".
func SanitizeFilename(title string) string {
	name := unsafeChars.ReplaceAllString(title, "-")
	name = whitespaceRun.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	if name == "" {
		return "wikipedia"
	}
	return name
}

// DefaultDownloadsDir returns the user's standard downloads location.
func DefaultDownloadsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", wikimd.Errorf(wikimd.EINTERNAL, "resolve home directory: %v", err)
	}
	return filepath.Join(home, "Downloads"), nil
}

// Ensure Writer implements wikimd.Writer at compile time.
var _ wikimd.Writer = (*Writer)(nil)

// Writer writes rendered Markdown into a base directory, one file per
// article. An existing file of the same name is overwritten without
// warning; that is the chosen conflict policy.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteMarkdown writes content as UTF-8 text to
// <baseDir>/<sanitized title>.md, creating the directory if absent, and
// returns the path written.
func (w *Writer) WriteMarkdown(ctx context.Context, title, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", wikimd.Errorf(wikimd.EINTERNAL, "create output directory %s: %v", w.baseDir, err)
	}

	path := filepath.Join(w.baseDir, SanitizeFilename(title)+".md")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", wikimd.Errorf(wikimd.EINTERNAL, "write %s: %v", path, err)
	}

	return path, nil
}
