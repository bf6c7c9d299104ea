package mdbadge

import (
	"fmt"
	"regexp"
	"strings"
)

// shortcodePattern matches <!-- md:TYPE ARGS -->. ARGS keeps its leading
// space and is trimmed later. Matching does not cross line breaks.
var shortcodePattern = regexp.MustCompile(`(?im)<!-- md:(\w+)(.*?) -->`)

// Transformer rewrites shortcode markers in page markdown into badges.
// A Transformer is safe for concurrent use.
type Transformer struct {
	stripDepth int
	site       SitePaths
	logger     Logger
	dispatcher *Dispatcher
}

// TransformerOption configures a Transformer.
type TransformerOption func(*Transformer)

// WithStripDepth sets how many leading segments are dropped from resolved links.
func WithStripDepth(n int) TransformerOption {
	return func(t *Transformer) {
		t.stripDepth = n
	}
}

// WithSitePaths overrides the conventions and changelog documents.
// Empty fields keep their defaults.
func WithSitePaths(site SitePaths) TransformerOption {
	return func(t *Transformer) {
		if site.Conventions != "" {
			t.site.Conventions = site.Conventions
		}
		if site.Changelog != "" {
			t.site.Changelog = site.Changelog
		}
	}
}

// WithLogger attaches a logger for diagnostics such as unresolved references.
func WithLogger(logger Logger) TransformerOption {
	return func(t *Transformer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTransformer creates a Transformer with default site paths and strip depth.
// Returns an error if an option sets an invalid strip depth or site path.
func NewTransformer(opts ...TransformerOption) (*Transformer, error) {
	t := &Transformer{
		stripDepth: DefaultStripDepth,
		site:       DefaultSitePaths(),
		logger:     NopLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.stripDepth < 0 || t.stripDepth > MaxStripDepth {
		return nil, fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidStripDepth, t.stripDepth, MaxStripDepth)
	}
	if err := validateSitePath("conventions", t.site.Conventions); err != nil {
		return nil, err
	}
	if err := validateSitePath("changelog", t.site.Changelog); err != nil {
		return nil, err
	}

	t.dispatcher = NewDispatcher(t.newResolver(nil), t.site)
	return t, nil
}

// SitePaths returns the documents badges link to.
func (t *Transformer) SitePaths() SitePaths {
	return t.site
}

// Transform rewrites every recognized marker in markdown.
// Unknown markers and all other text are copied unchanged.
func (t *Transformer) Transform(markdown string, page Page, tree FileTree) string {
	return t.rewrite(markdown, page, tree, t.dispatcher, nil)
}

// TransformWithReport is Transform plus a record of what was found on the page.
func (t *Transformer) TransformWithReport(markdown string, page Page, tree FileTree) (string, *Report) {
	report := &Report{Page: page.SourcePath}
	resolver := t.newResolver(func(reference string) {
		report.Unresolved = append(report.Unresolved, reference)
	})
	dispatcher := NewDispatcher(resolver, t.site)

	out := t.rewrite(markdown, page, tree, dispatcher, report)
	return out, report
}

// rewrite performs the single left-to-right pass. report may be nil.
func (t *Transformer) rewrite(markdown string, page Page, tree FileTree, d *Dispatcher, report *Report) string {
	matches := shortcodePattern.FindAllStringSubmatchIndex(markdown, -1)
	if len(matches) == 0 {
		return markdown
	}

	var sb strings.Builder
	sb.Grow(len(markdown))

	last := 0
	line, lineScanned := 1, 0
	for _, m := range matches {
		start, end := m[0], m[1]
		raw := markdown[start:end]
		sc := ParseShortcode(markdown[m[2]:m[3]], markdown[m[4]:m[5]], raw)

		sb.WriteString(markdown[last:start])

		replacement, handled := d.Dispatch(sc, page, tree)
		if handled {
			sb.WriteString(replacement)
		} else {
			sb.WriteString(raw)
			withFields(t.logger, map[string]any{
				"page":      page.SourcePath,
				"shortcode": sc.Name,
			}).Debug("mdbadge.transform.unknown_shortcode")
		}

		if report != nil {
			line += strings.Count(markdown[lineScanned:start], "\n")
			lineScanned = start
			report.add(sc, line, handled)
		}
		last = end
	}
	sb.WriteString(markdown[last:])

	return sb.String()
}

// newResolver builds a resolver that logs misses and forwards them to collect.
func (t *Transformer) newResolver(collect func(reference string)) *Resolver {
	logger := t.logger
	return NewResolver(
		WithResolverStripDepth(t.stripDepth),
		WithUnresolvedHandler(func(reference string, page Page) {
			withFields(logger, map[string]any{
				"page":      page.SourcePath,
				"reference": reference,
			}).Warn("mdbadge.resolve.unresolved")
			if collect != nil {
				collect(reference)
			}
		}),
	)
}

// validateSitePath checks a configured document path.
func validateSitePath(name, p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("%w: %s path is empty", ErrInvalidSitePath, name)
	}
	if strings.Contains(p, "#") {
		return fmt.Errorf("%w: %s path %q must not contain an anchor", ErrInvalidSitePath, name, p)
	}
	return nil
}
