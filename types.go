package mdbadge

import (
	"path"
	"sort"
	"strings"
)

// Page is the document currently being transformed.
// SourcePath is its site-relative path (e.g., "sw/guide/install.md").
type Page struct {
	SourcePath string
}

// FileRef identifies a document in the site tree.
type FileRef struct {
	SourcePath string
}

// FileTree maps site-relative source paths to documents.
// Implementations must be safe for concurrent reads.
type FileTree interface {
	Lookup(sourcePath string) (FileRef, bool)
}

// Tree is a map-backed FileTree.
// Populate it with Add before sharing; after that it is read-only.
type Tree struct {
	files map[string]FileRef
}

// NewTree creates a Tree containing the given source paths.
func NewTree(paths ...string) *Tree {
	t := &Tree{files: make(map[string]FileRef, len(paths))}
	for _, p := range paths {
		t.Add(p)
	}
	return t
}

// Add registers a source path. Empty paths are ignored.
func (t *Tree) Add(sourcePath string) {
	key := normalizeSourcePath(sourcePath)
	if key == "" {
		return
	}
	t.files[key] = FileRef{SourcePath: key}
}

// Lookup returns the document registered under sourcePath.
func (t *Tree) Lookup(sourcePath string) (FileRef, bool) {
	if t == nil {
		return FileRef{}, false
	}
	ref, ok := t.files[normalizeSourcePath(sourcePath)]
	return ref, ok
}

// Len returns the number of documents in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.files)
}

// Paths returns all registered source paths in lexical order.
func (t *Tree) Paths() []string {
	if t == nil {
		return nil
	}
	paths := make([]string, 0, len(t.files))
	for p := range t.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Compile-time interface check.
var _ FileTree = (*Tree)(nil)

// normalizeSourcePath cleans a site-relative path to the form used as tree key.
// Backslashes are treated as separators so Windows-built trees match.
func normalizeSourcePath(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return ""
	}
	p = strings.TrimPrefix(path.Clean(p), "/")
	if p == "." {
		return ""
	}
	return p
}
