// Package mdbadge rewrites badge shortcodes in documentation markdown.
//
// Pages carry HTML comment markers such as
//
//	<!-- md:version 1.4.0 -->
//	<!-- md:feature resize -->
//	<!-- md:flag experimental -->
//
// and the transform replaces each one with inline badge markup: an icon
// linking to the matching anchor of the site's conventions page, plus an
// optional text part. Links are computed relative to the page being
// processed, so the output works wherever the site is served from.
//
// # Quick Start
//
//	tree := mdbadge.NewTree("sw/changelog/conventions.md", "sw/changelog/index.md", "sw/guide.md")
//	t, err := mdbadge.NewTransformer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out := t.Transform(markdown, mdbadge.Page{SourcePath: "sw/guide.md"}, tree)
//
// Transform never fails. Markers of an unknown type are left in place, and
// references to pages missing from the tree become "#". Use
// TransformWithReport to learn about both.
//
// # Marker Types
//
//   - version SPEC: tag icon, text links SPEC to the changelog anchor
//   - feature TEXT: toggle icon, text TEXT
//   - plugin TEXT: floppy icon, text TEXT
//   - default TEXT: water icon, text TEXT
//   - experimental: flask icon, no text
//   - flag SUBTYPE: experimental renders like the experimental marker; other subtypes render nothing
//
// Type names and flag subtypes are matched case-insensitively.
//
// # Link Resolution
//
// A reference "target#anchor" is resolved against the page's source path:
// the relative path from the page (treated as a directory, the way
// directory-style URLs are served) to the target, with the first
// StripDepth segments removed. The default depth of 1 drops the ".." that
// the page's own URL directory adds.
//
// # HTML Preview
//
// Converter wraps the transform and can also render the page to HTML
// through goldmark with a badge stylesheet injected:
//
//	conv, err := mdbadge.NewConverter(mdbadge.WithStyle("default"))
//	res, err := conv.Convert(ctx, mdbadge.Input{Markdown: md, Page: page, Tree: tree, HTML: true})
//
// # Concurrency
//
// Transformer and Converter are safe for concurrent use. The mdbadge
// command processes pages with a worker pool sized from GOMAXPROCS.
package mdbadge
