package mdbadge

import (
	"strings"
	"testing"
)

func siteTree() *Tree {
	return NewTree(
		DefaultConventionsPath,
		DefaultChangelogPath,
		"sw/guide/install.md",
	)
}

func TestDispatcher_Dispatch(t *testing.T) {
	t.Parallel()

	page := Page{SourcePath: "sw/guide/install.md"}
	const conv = "../changelog/conventions.md"

	tests := []struct {
		name        string
		kind        string
		args        string
		want        string
		wantHandled bool
	}{
		{
			name:        "feature",
			kind:        "feature",
			args:        "Cool Feature",
			want:        `<span class="mdx-badge"><span class="mdx-badge__icon">[:material-toggle-switch:](` + conv + `#feature 'Optional feature')</span><span class="mdx-badge__text">Cool Feature</span></span>`,
			wantHandled: true,
		},
		{
			name:        "plugin",
			kind:        "plugin",
			args:        "mkdocs-rss",
			want:        `<span class="mdx-badge"><span class="mdx-badge__icon">[:material-floppy:](` + conv + `#plugin 'External IP / Plugin')</span><span class="mdx-badge__text">mkdocs-rss</span></span>`,
			wantHandled: true,
		},
		{
			name:        "default",
			kind:        "default",
			args:        "`false`",
			want:        `<span class="mdx-badge"><span class="mdx-badge__icon">[:material-water:](` + conv + `#default 'Default value')</span><span class="mdx-badge__text">` + "`false`" + `</span></span>`,
			wantHandled: true,
		},
		{
			name:        "feature without text",
			kind:        "feature",
			args:        "",
			want:        `<span class="mdx-badge"><span class="mdx-badge__icon">[:material-toggle-switch:](` + conv + `#feature 'Optional feature')</span></span>`,
			wantHandled: true,
		},
		{
			name:        "version",
			kind:        "version",
			args:        "1.4.0",
			want:        `<span class="mdx-badge"><span class="mdx-badge__icon">[:material-tag-outline:](` + conv + `#version 'Minimum version')</span><span class="mdx-badge__text">[1.4.0](../changelog/index.md#1.4.0)</span></span>`,
			wantHandled: true,
		},
		{
			name:        "version without spec",
			kind:        "version",
			args:        "",
			want:        `<span class="mdx-badge"><span class="mdx-badge__icon">[:material-tag-outline:](` + conv + `#version 'Minimum version')</span></span>`,
			wantHandled: true,
		},
		{
			name:        "experimental",
			kind:        "experimental",
			args:        "",
			want:        `<span class="mdx-badge"><span class="mdx-badge__icon">[:material-flask-outline:](` + conv + `#experimental 'Experimental')</span></span>`,
			wantHandled: true,
		},
		{
			name:        "flag required renders nothing",
			kind:        "flag",
			args:        "required",
			want:        "",
			wantHandled: true,
		},
		{
			name:        "flag without subtype renders nothing",
			kind:        "flag",
			args:        "",
			want:        "",
			wantHandled: true,
		},
		{
			name:        "unknown kind",
			kind:        "unknown",
			args:        "foo",
			want:        "",
			wantHandled: false,
		},
	}

	d := NewDispatcher(nil, DefaultSitePaths())
	tree := siteTree()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, handled := d.Dispatch(ParseShortcode(tt.kind, tt.args, ""), page, tree)
			if handled != tt.wantHandled {
				t.Errorf("handled = %v, want %v", handled, tt.wantHandled)
			}
			if got != tt.want {
				t.Errorf("Dispatch() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestDispatcher_FlagExperimentalMatchesExperimental(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil, DefaultSitePaths())
	page := Page{SourcePath: "sw/guide/install.md"}
	tree := siteTree()

	flag, _ := d.Dispatch(ParseShortcode("flag", "experimental", ""), page, tree)
	exp, _ := d.Dispatch(ParseShortcode("experimental", "", ""), page, tree)

	if flag == "" || flag != exp {
		t.Errorf("flag experimental = %q, experimental = %q; want equal and non-empty", flag, exp)
	}
}

func TestDispatcher_MissingSiteDocuments(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil, DefaultSitePaths())
	got, _ := d.Dispatch(ParseShortcode("version", "2.0", ""), Page{SourcePath: "a.md"}, NewTree("a.md"))

	if !strings.Contains(got, "[:material-tag-outline:](# 'Minimum version')") {
		t.Errorf("icon should fall back to #: %s", got)
	}
	if !strings.Contains(got, "[2.0](#)") {
		t.Errorf("version text should fall back to #: %s", got)
	}
}

func TestDispatcher_CustomSitePaths(t *testing.T) {
	t.Parallel()

	site := SitePaths{Conventions: "docs/conventions.md", Changelog: "docs/changes.md"}
	d := NewDispatcher(nil, site)
	tree := NewTree(site.Conventions, site.Changelog, "docs/page.md")

	got, _ := d.Dispatch(ParseShortcode("version", "3.1", ""), Page{SourcePath: "docs/page.md"}, tree)

	if !strings.Contains(got, "(conventions.md#version 'Minimum version')") {
		t.Errorf("icon link should target custom conventions: %s", got)
	}
	if !strings.Contains(got, "[3.1](changes.md#3.1)") {
		t.Errorf("text link should target custom changelog: %s", got)
	}
}

func TestDispatcher_EveryKindIsHandled(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil, DefaultSitePaths())
	for k := range kindNames {
		if _, handled := d.Dispatch(Shortcode{Kind: k, Name: k.String()}, Page{}, nil); !handled {
			t.Errorf("kind %v is not handled", k)
		}
	}
}
