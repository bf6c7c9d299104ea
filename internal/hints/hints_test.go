package hints

// Notes:
// - ForWatchLimit tests cannot use t.Parallel() because they modify the
//   package-level IsInContainer and goos variables.

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		searched []string
		want     string
		notWant  string
	}{
		{
			name:     "suggests user config path",
			searched: []string{"work.yaml", "work.yml", "/home/u/.config/go-mdbadge/work.yaml"},
			want:     "or create /home/u/.config/go-mdbadge/work.yaml",
		},
		{
			name:     "windows separators",
			searched: []string{`C:\Users\u\AppData\Roaming\go-mdbadge\work.yaml`},
			want:     "or create",
		},
		{
			name:     "no user path",
			searched: []string{"work.yaml"},
			want:     "use --config",
			notWant:  "or create",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ForConfigNotFound(tt.searched)
			if !strings.HasPrefix(got, "\n  hint: ") {
				t.Errorf("hint %q missing prefix", got)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hint %q should contain %q", got, tt.want)
			}
			if tt.notWant != "" && strings.Contains(got, tt.notWant) {
				t.Errorf("hint %q should not contain %q", got, tt.notWant)
			}
		})
	}
}

func TestForDocsDir(t *testing.T) {
	t.Parallel()

	if got := ForDocsDir(""); !strings.Contains(got, "docs.dir") {
		t.Errorf("ForDocsDir(\"\") = %q, want mention of docs.dir", got)
	}
	if got := ForDocsDir("docs/index.md"); !strings.Contains(got, `"docs/index.md"`) {
		t.Errorf("ForDocsDir() = %q, want quoted path", got)
	}
}

func TestForUnresolvedReferences(t *testing.T) {
	t.Parallel()

	got := ForUnresolvedReferences("sw/changelog/conventions.md", "sw/changelog/index.md", 1)
	for _, want := range []string{"sw/changelog/conventions.md", "sw/changelog/index.md", "--strip-depth (now 1)"} {
		if !strings.Contains(got, want) {
			t.Errorf("hint %q should contain %q", got, want)
		}
	}
	if strings.Count(got, "hint:") != 1 {
		t.Errorf("hint %q should be a single hint line", got)
	}
}

func TestForStyleNotFound(t *testing.T) {
	t.Parallel()

	if got := ForStyleNotFound(nil); got != "" {
		t.Errorf("ForStyleNotFound(nil) = %q, want empty", got)
	}
	if got := ForStyleNotFound([]string{"default", "minimal"}); !strings.Contains(got, "default, minimal") {
		t.Errorf("ForStyleNotFound() = %q, want list", got)
	}
}

func TestForOutputDirectory(t *testing.T) {
	t.Parallel()

	if got := ForOutputDirectory(); !strings.Contains(got, "writable") {
		t.Errorf("ForOutputDirectory() = %q", got)
	}
}

func TestForWatchLimit_Linux(t *testing.T) {
	origOS, origContainer := goos, IsInContainer
	defer func() { goos, IsInContainer = origOS, origContainer }()

	goos = "linux"
	IsInContainer = func() bool { return false }

	got := ForWatchLimit()
	if !strings.Contains(got, "max_user_watches") {
		t.Errorf("hint %q should mention inotify limit", got)
	}
	if strings.Contains(got, "container host") {
		t.Errorf("hint %q should not mention container outside one", got)
	}
}

func TestForWatchLimit_Container(t *testing.T) {
	origOS, origContainer := goos, IsInContainer
	defer func() { goos, IsInContainer = origOS, origContainer }()

	goos = "linux"
	IsInContainer = func() bool { return true }

	if got := ForWatchLimit(); !strings.Contains(got, "container host") {
		t.Errorf("hint %q should mention container host", got)
	}
}

func TestForWatchLimit_OtherOS(t *testing.T) {
	origOS := goos
	defer func() { goos = origOS }()

	goos = "darwin"

	if got := ForWatchLimit(); strings.Contains(got, "inotify") {
		t.Errorf("hint %q should not mention inotify on darwin", got)
	}
}
