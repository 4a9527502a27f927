// Package htmltomarkdown wraps the html-to-markdown library behind the
// wikimd.Converter interface. The block extractor uses it for content too
// irregular to walk span by span, such as infobox table cells.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"

	wikimd "github.com/DyllonWright/wikipedia-to-markdown"
)

// Ensure Converter implements wikimd.Converter at compile time.
var _ wikimd.Converter = (*Converter)(nil)

// Converter converts HTML fragments to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", wikimd.Errorf(wikimd.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}
