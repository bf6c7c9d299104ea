// Package pipeline implements the HTML preview stages that follow the
// shortcode transform:
//   - Markdown normalization (line endings, blank line runs)
//   - Markdown to HTML conversion via Goldmark
//   - Badge stylesheet injection into the HTML document
//
// Badge rendering itself lives in the root mdbadge package. This package only
// sees markdown that already contains badge markup, so the Goldmark renderer
// keeps raw inline HTML.
package pipeline
