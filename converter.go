package wikimd

// Converter converts an HTML fragment to Markdown. It is used for content
// too irregular to walk span by span, such as infobox table cells.
type Converter interface {
	Convert(html string) (string, error)
}
