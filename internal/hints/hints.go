// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/alnah/go-mdbadge/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// goos is swapped in tests.
var goos = runtime.GOOS

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-mdbadge/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), "go-mdbadge/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForDocsDir returns hints when the docs directory is missing.
func ForDocsDir(dir string) string {
	if dir == "" {
		return format("pass the docs directory as an argument or set docs.dir in the config")
	}
	return format(fmt.Sprintf("%q is not a directory; pass the docs root, not a page", dir))
}

// ForUnresolvedReferences returns hints for links whose target page is missing.
// The usual causes are site paths that point elsewhere or a wrong strip depth.
func ForUnresolvedReferences(conventions, changelog string, stripDepth int) string {
	return formatHints([]string{
		fmt.Sprintf("check that %s and %s exist under the docs root", conventions, changelog),
		fmt.Sprintf("adjust --conventions/--changelog or --strip-depth (now %d)", stripDepth),
	})
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForWatchLimit returns hints when the file watcher cannot register directories.
// Inotify limits are Linux specific; containers often share the host limit.
func ForWatchLimit() string {
	if goos != "linux" {
		return format("reduce the number of watched directories")
	}
	hints := []string{"raise fs.inotify.max_user_watches (sysctl -w fs.inotify.max_user_watches=524288)"}
	if IsInContainer() {
		hints = append(hints, "the limit is set on the container host")
	}
	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}

func filepathSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
