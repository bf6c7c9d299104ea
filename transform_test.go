package mdbadge

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func newTestTransformer(t *testing.T, opts ...TransformerOption) *Transformer {
	t.Helper()
	tr, err := NewTransformer(opts...)
	if err != nil {
		t.Fatalf("NewTransformer() error = %v", err)
	}
	return tr
}

var guidePage = Page{SourcePath: "sw/guide/install.md"}

// ---------------------------------------------------------------------------
// TestTransform_Scenarios - Marker replacement behavior
// ---------------------------------------------------------------------------

func TestTransform_Scenarios(t *testing.T) {
	t.Parallel()

	tr := newTestTransformer(t)
	tree := siteTree()

	t.Run("feature badge text and icon anchor", func(t *testing.T) {
		t.Parallel()

		out := tr.Transform("<!-- md:feature Cool Feature -->", guidePage, tree)
		n := badgeNode(t, out)
		if !strings.Contains(out, `<span class="mdx-badge__text">Cool Feature</span>`) {
			t.Errorf("text fragment should be exactly Cool Feature: %s", out)
		}
		if !strings.Contains(out, "conventions.md#feature") {
			t.Errorf("icon should link to #feature: %s", out)
		}
		if got := childClasses(n); len(got) != 2 {
			t.Errorf("children = %v, want icon and text", got)
		}
	})

	t.Run("version links changelog anchor", func(t *testing.T) {
		t.Parallel()

		out := tr.Transform("<!-- md:version 1.4.0 -->", guidePage, tree)
		if !strings.Contains(out, `<span class="mdx-badge__text">[1.4.0](../changelog/index.md#1.4.0)</span>`) {
			t.Errorf("text fragment should link changelog#1.4.0: %s", out)
		}
	})

	t.Run("empty version is icon only", func(t *testing.T) {
		t.Parallel()

		out := tr.Transform("<!-- md:version -->", guidePage, tree)
		if got := childClasses(badgeNode(t, out)); len(got) != 1 || got[0] != BadgeIconClass {
			t.Errorf("children = %v, want icon only", got)
		}
	})

	t.Run("flag experimental equals experimental", func(t *testing.T) {
		t.Parallel()

		flag := tr.Transform("<!-- md:flag experimental -->", guidePage, tree)
		exp := tr.Transform("<!-- md:experimental -->", guidePage, tree)
		if flag != exp {
			t.Errorf("flag experimental = %q, want %q", flag, exp)
		}
		if !strings.Contains(exp, "material-flask-outline") || !strings.Contains(exp, "#experimental") {
			t.Errorf("experimental badge malformed: %s", exp)
		}
	})

	t.Run("flag required is removed", func(t *testing.T) {
		t.Parallel()

		if out := tr.Transform("<!-- md:flag required -->", guidePage, tree); out != "" {
			t.Errorf("Transform() = %q, want empty", out)
		}
	})

	t.Run("flag sub-type is case-sensitive", func(t *testing.T) {
		t.Parallel()

		if out := tr.Transform("<!-- md:FLAG Experimental -->", guidePage, tree); out != "" {
			t.Errorf("Transform() = %q, want empty", out)
		}
	})

	t.Run("unknown marker is unchanged", func(t *testing.T) {
		t.Parallel()

		in := "<!-- md:unknown foo -->"
		if out := tr.Transform(in, guidePage, tree); out != in {
			t.Errorf("Transform() = %q, want %q", out, in)
		}
	})

	t.Run("type is case insensitive", func(t *testing.T) {
		t.Parallel()

		lower := tr.Transform("<!-- md:feature X -->", guidePage, tree)
		upper := tr.Transform("<!-- MD:FEATURE X -->", guidePage, tree)
		if lower != upper {
			t.Errorf("uppercase marker = %q, want %q", upper, lower)
		}
	})
}

// ---------------------------------------------------------------------------
// TestTransform_Identity - Text without markers
// ---------------------------------------------------------------------------

func TestTransform_Identity(t *testing.T) {
	t.Parallel()

	tr := newTestTransformer(t)
	tree := siteTree()

	inputs := []string{
		"",
		"# Title\n\nPlain paragraph.\n",
		"<!-- a normal comment -->",
		"<!-- md: -->",
		"<!--md:feature no space -->",
		"<!-- md:feature\nsplit across lines -->",
		"Windows\r\nline endings\r\n",
		"unicode: café ✓",
	}

	for _, in := range inputs {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			t.Parallel()

			if out := tr.Transform(in, guidePage, tree); out != in {
				t.Errorf("Transform(%q) = %q, want unchanged", in, out)
			}
		})
	}
}

func TestTransform_SurroundingTextPreserved(t *testing.T) {
	t.Parallel()

	tr := newTestTransformer(t)
	in := "# Options\n\n## resize <!-- md:flag required --> done\n\n" +
		"Before <!-- md:plugin thumbs --> after.\r\n<!-- md:unknown x -->\n"

	out := tr.Transform(in, guidePage, siteTree())

	if !strings.HasPrefix(out, "# Options\n\n## resize  done\n\nBefore <span class=\"mdx-badge\">") {
		t.Errorf("prefix not preserved:\n%s", out)
	}
	if !strings.HasSuffix(out, "</span> after.\r\n<!-- md:unknown x -->\n") {
		t.Errorf("suffix not preserved:\n%s", out)
	}
}

func TestTransform_MultipleMarkersPerLine(t *testing.T) {
	t.Parallel()

	tr := newTestTransformer(t)
	out := tr.Transform("<!-- md:version 1.0 --> <!-- md:feature --> <!-- md:experimental -->", guidePage, siteTree())

	if got := strings.Count(out, `<span class="mdx-badge">`); got != 3 {
		t.Errorf("badge count = %d, want 3 in %s", got, out)
	}
	if strings.Contains(out, "<!--") {
		t.Errorf("markers remain in %s", out)
	}
}

func TestTransform_Idempotent(t *testing.T) {
	t.Parallel()

	tr := newTestTransformer(t)
	tree := siteTree()
	in := "<!-- md:version 1.4.0 -->\n<!-- md:feature A -->\n<!-- md:plugin B -->\n" +
		"<!-- md:default C -->\n<!-- md:experimental -->\n<!-- md:flag experimental -->\n<!-- md:nope -->\n"

	once := tr.Transform(in, guidePage, tree)
	twice := tr.Transform(once, guidePage, tree)

	if once != twice {
		t.Errorf("second pass changed output:\nonce:  %s\ntwice: %s", once, twice)
	}
}

func TestTransform_MissingTargetsFallBack(t *testing.T) {
	t.Parallel()

	tr := newTestTransformer(t)
	out := tr.Transform("<!-- md:version 9.9 -->", Page{SourcePath: "a.md"}, NewTree("a.md"))

	if !strings.Contains(out, "(# 'Minimum version')") || !strings.Contains(out, "[9.9](#)") {
		t.Errorf("missing documents should resolve to #: %s", out)
	}
}

func TestTransform_StripDepthOption(t *testing.T) {
	t.Parallel()

	tr := newTestTransformer(t, WithStripDepth(0))
	out := tr.Transform("<!-- md:experimental -->", guidePage, siteTree())

	if !strings.Contains(out, "(../../changelog/conventions.md#experimental ") {
		t.Errorf("strip depth 0 should keep page step: %s", out)
	}
}

func TestTransform_ConcurrentUse(t *testing.T) {
	t.Parallel()

	tr := newTestTransformer(t)
	tree := siteTree()
	want := tr.Transform("<!-- md:version 1.0 -->", guidePage, tree)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, _ := tr.TransformWithReport("<!-- md:version 1.0 --><!-- md:version x -->", guidePage, tree)
			if !strings.HasPrefix(out, want) {
				t.Errorf("concurrent output differs: %s", out)
			}
		}()
	}
	wg.Wait()
}

// ---------------------------------------------------------------------------
// TestNewTransformer - Option validation
// ---------------------------------------------------------------------------

func TestNewTransformer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []TransformerOption
		wantErr error
	}{
		{name: "defaults", opts: nil},
		{name: "max strip depth", opts: []TransformerOption{WithStripDepth(MaxStripDepth)}},
		{name: "negative strip depth", opts: []TransformerOption{WithStripDepth(-1)}, wantErr: ErrInvalidStripDepth},
		{name: "strip depth too large", opts: []TransformerOption{WithStripDepth(MaxStripDepth + 1)}, wantErr: ErrInvalidStripDepth},
		{
			name:    "site path with anchor",
			opts:    []TransformerOption{WithSitePaths(SitePaths{Conventions: "c.md#x"})},
			wantErr: ErrInvalidSitePath,
		},
		{
			name:    "blank site path",
			opts:    []TransformerOption{WithSitePaths(SitePaths{Changelog: "   "})},
			wantErr: ErrInvalidSitePath,
		},
		{name: "nil logger keeps default", opts: []TransformerOption{WithLogger(nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr, err := NewTransformer(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewTransformer() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && tr == nil {
				t.Fatal("NewTransformer() returned nil transformer")
			}
		})
	}
}

func TestWithSitePaths_EmptyFieldsKeepDefaults(t *testing.T) {
	t.Parallel()

	tr := newTestTransformer(t, WithSitePaths(SitePaths{Changelog: "news.md"}))
	got := tr.SitePaths()

	if got.Conventions != DefaultConventionsPath {
		t.Errorf("Conventions = %q, want %q", got.Conventions, DefaultConventionsPath)
	}
	if got.Changelog != "news.md" {
		t.Errorf("Changelog = %q, want %q", got.Changelog, "news.md")
	}
}

// ---------------------------------------------------------------------------
// TestTransformWithReport - Diagnostics
// ---------------------------------------------------------------------------

func TestTransformWithReport(t *testing.T) {
	t.Parallel()

	tr := newTestTransformer(t)
	in := "line one\n<!-- md:version 1.0 -->\n\n<!-- md:nope x --> <!-- md:flag required -->\n"

	out, report := tr.TransformWithReport(in, Page{SourcePath: "a.md"}, NewTree("a.md"))

	if want := tr.Transform(in, Page{SourcePath: "a.md"}, NewTree("a.md")); out != want {
		t.Errorf("TransformWithReport output differs from Transform:\n%s\n%s", out, want)
	}
	if report.Page != "a.md" {
		t.Errorf("Page = %q, want a.md", report.Page)
	}
	if len(report.Occurrences) != 3 {
		t.Fatalf("Occurrences = %d, want 3", len(report.Occurrences))
	}

	wantLines := []int{2, 4, 4}
	for i, o := range report.Occurrences {
		if o.Line != wantLines[i] {
			t.Errorf("occurrence %d line = %d, want %d", i, o.Line, wantLines[i])
		}
	}

	unknown := report.Unknown()
	if len(unknown) != 1 || unknown[0].Name != "nope" || unknown[0].Args != "x" {
		t.Errorf("Unknown() = %+v, want the nope marker", unknown)
	}

	// Version icon and text both reference missing documents.
	wantUnresolved := []string{DefaultConventionsPath + "#version", DefaultChangelogPath + "#1.0"}
	if strings.Join(report.Unresolved, ",") != strings.Join(wantUnresolved, ",") {
		t.Errorf("Unresolved = %v, want %v", report.Unresolved, wantUnresolved)
	}
	if !report.HasProblems() {
		t.Error("HasProblems() = false, want true")
	}
}

func TestTransform_LogsDiagnostics(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}
	tr := newTestTransformer(t, WithLogger(logger))

	tr.Transform("<!-- md:experimental --><!-- md:bogus -->", Page{SourcePath: "a.md"}, NewTree("a.md"))

	if got := logger.count("warn", "mdbadge.resolve.unresolved"); got != 1 {
		t.Errorf("unresolved warnings = %d, want 1", got)
	}
	if got := logger.count("debug", "mdbadge.transform.unknown_shortcode"); got != 1 {
		t.Errorf("unknown shortcode debug logs = %d, want 1", got)
	}
	if logger.fields["page"] != "a.md" {
		t.Errorf("fields = %v, want page a.md", logger.fields)
	}
}

type recordingLogger struct {
	mu     sync.Mutex
	calls  []string
	fields map[string]any
}

func (l *recordingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, level+":"+msg)
}

func (l *recordingLogger) count(level, msg string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.calls {
		if c == level+":"+msg {
			n++
		}
	}
	return n
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.record("debug", msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.record("info", msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.record("warn", msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.record("error", msg) }

func (l *recordingLogger) WithFields(fields map[string]any) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fields = fields
	return l
}

var _ FieldsLogger = (*recordingLogger)(nil)
