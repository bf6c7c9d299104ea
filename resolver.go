package mdbadge

import (
	"path"
	"strings"
)

// DefaultStripDepth is the number of leading segments dropped from computed links.
// Pages are addressed by directory URL, so the first ".." of a relative path
// only climbs out of the page itself.
const DefaultStripDepth = 1

// MaxStripDepth bounds the configurable strip depth.
const MaxStripDepth = 16

// UnresolvedLink is returned for references that are not in the file tree.
const UnresolvedLink = "#"

// Resolver computes page-relative links to documents in a FileTree.
// The zero value is not usable; create with NewResolver.
type Resolver struct {
	stripDepth   int
	onUnresolved func(reference string, page Page)
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverStripDepth sets how many leading segments are dropped from
// computed relative paths. Negative values are ignored.
func WithResolverStripDepth(n int) ResolverOption {
	return func(r *Resolver) {
		if n >= 0 {
			r.stripDepth = n
		}
	}
}

// WithUnresolvedHandler registers a callback invoked for every reference
// whose target is missing from the tree.
func WithUnresolvedHandler(fn func(reference string, page Page)) ResolverOption {
	return func(r *Resolver) {
		r.onUnresolved = fn
	}
}

// NewResolver creates a Resolver using DefaultStripDepth unless overridden.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{stripDepth: DefaultStripDepth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// StripDepth returns the configured strip depth.
func (r *Resolver) StripDepth() int {
	return r.stripDepth
}

// Resolve turns reference ("path" or "path#anchor") into a link usable from page.
// Missing targets resolve to UnresolvedLink and never carry the anchor.
func (r *Resolver) Resolve(reference string, page Page, tree FileTree) string {
	target, anchor := splitAnchor(reference)

	var ref FileRef
	var found bool
	if tree != nil {
		ref, found = tree.Lookup(target)
	}
	if !found {
		if r.onUnresolved != nil {
			r.onUnresolved(reference, page)
		}
		return UnresolvedLink
	}

	link := stripLeadingSegments(relPath(ref.SourcePath, page.SourcePath), r.stripDepth)
	if anchor == "" {
		return link
	}
	return link + "#" + anchor
}

// splitAnchor splits on the first '#'. Anything after a second '#' is dropped.
func splitAnchor(reference string) (target, anchor string) {
	target, anchor, _ = strings.Cut(reference, "#")
	anchor, _, _ = strings.Cut(anchor, "#")
	return target, anchor
}

// relPath returns the slash-separated path to target from start,
// with start treated as a directory. Both paths are relative to the same root.
func relPath(target, start string) string {
	targetParts := splitSegments(target)
	startParts := splitSegments(start)

	common := 0
	for common < len(targetParts) && common < len(startParts) &&
		targetParts[common] == startParts[common] {
		common++
	}

	parts := make([]string, 0, len(startParts)-common+len(targetParts)-common)
	for range startParts[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, targetParts[common:]...)

	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}

// splitSegments cleans p and returns its non-empty segments.
func splitSegments(p string) []string {
	cleaned := path.Clean("/" + p)
	if cleaned == "/" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(cleaned, "/"), "/")
}

// stripLeadingSegments drops the first n segments of a slash-separated path.
func stripLeadingSegments(p string, n int) string {
	if n <= 0 {
		return p
	}
	parts := strings.Split(p, "/")
	if n >= len(parts) {
		return ""
	}
	return strings.Join(parts[n:], "/")
}
