package mdbadge

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// IsMarkdownFile reports whether name has a .md or .markdown extension.
func IsMarkdownFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".md" || ext == ".markdown"
}

// ScanTree walks fsys from root and registers every markdown file.
// Source paths are relative to root and use forward slashes.
// Use "." as root to scan the whole filesystem.
func ScanTree(fsys fs.FS, root string) (*Tree, error) {
	if root == "" {
		root = "."
	}

	tree := NewTree()
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrTreeScan, p, err)
		}
		if d.IsDir() {
			// Hidden directories (.git, .cache) never hold site pages.
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !IsMarkdownFile(p) {
			return nil
		}
		tree.Add(relativeTo(root, p))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tree, nil
}

// relativeTo strips root from a path returned by fs.WalkDir.
func relativeTo(root, p string) string {
	if root == "." {
		return p
	}
	return strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
}
