// Package wikimd converts a single Wikipedia article into a Markdown
// document suitable for note-taking tools. It fetches the article HTML
// (and optionally its PDF rendering), extracts the main content region
// into an ordered sequence of typed blocks, and re-serializes those
// blocks as Markdown with heading, image, citation, and table rules.
//
// This package contains domain types, interfaces, and the pure rendering
// logic. Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, tabula/, http/, fs/).
package wikimd
