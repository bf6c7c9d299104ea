package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// installPage uses several shortcode kinds plus one unknown type.
const installPage = "# Install\n\n" +
	"<!-- md:version 1.0 -->\n" +
	"<!-- md:feature Cool Feature -->\n" +
	"<!-- md:flag experimental -->\n" +
	"<!-- md:sparkle -->\n"

// sitePages is a minimal docs tree with the default conventions and
// changelog pages and one guide page.
var sitePages = map[string]string{
	"sw/changelog/conventions.md": "# Conventions\n",
	"sw/changelog/index.md":       "# Changelog\n\n## 1.0\n",
	"sw/guide/install.md":         installPage,
}

// writeDocs creates files under a fresh docs directory and returns its path.
func writeDocs(t *testing.T, files map[string]string) string {
	t.Helper()

	docs := filepath.Join(t.TempDir(), "docs")
	for name, content := range files {
		path := filepath.Join(docs, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.MkdirAll(docs, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return docs
}

// testEnv returns an Environment writing to buffers.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

// readFile returns a file's content or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
