package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mdbadge "github.com/alnah/go-mdbadge"
	"github.com/alnah/go-mdbadge/internal/fileutil"
)

// pageJob is one page to process.
type pageJob struct {
	SourcePath string // site-relative, forward slashes
	InputPath  string
	OutputPath string
}

// discoverPages scans docsDir once and returns the site tree with one job per page.
// Jobs follow the tree's lexical order; output paths mirror the docs layout.
func discoverPages(docsDir, outputDir string) (*mdbadge.Tree, []pageJob, error) {
	tree, err := mdbadge.ScanTree(os.DirFS(docsDir), ".")
	if err != nil {
		return nil, nil, fmt.Errorf("discovering pages: %w", err)
	}

	paths := tree.Paths()
	jobs := make([]pageJob, 0, len(paths))
	for _, p := range paths {
		jobs = append(jobs, newPageJob(p, docsDir, outputDir))
	}
	return tree, jobs, nil
}

// newPageJob maps a site-relative source path to its input and output files.
func newPageJob(sourcePath, docsDir, outputDir string) pageJob {
	rel := filepath.FromSlash(sourcePath)
	return pageJob{
		SourcePath: sourcePath,
		InputPath:  filepath.Join(docsDir, rel),
		OutputPath: filepath.Join(outputDir, rel),
	}
}

// sourcePathFor converts an absolute or docs-relative file path back to a
// site-relative source path. ok is false for paths outside docsDir.
func sourcePathFor(docsDir, file string) (string, bool) {
	rel, err := filepath.Rel(docsDir, file)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

// htmlPathFor returns the HTML preview path next to a markdown output.
func htmlPathFor(outputPath string) string {
	// Error ignored: ReplaceExt only fails for an empty extension.
	p, _ := fileutil.ReplaceExt(outputPath, ".html")
	return p
}
