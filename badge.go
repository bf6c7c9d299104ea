package mdbadge

import "strings"

// Badge CSS classes. Site stylesheets target these names.
const (
	BadgeClass     = "mdx-badge"
	BadgeIconClass = "mdx-badge__icon"
	BadgeTextClass = "mdx-badge__text"
)

// Badge is one inline badge: an icon fragment, a text fragment and a style tag.
// Fragments are markup and are emitted without escaping.
type Badge struct {
	Icon  string
	Text  string
	Style string
}

// HTML serializes the badge. Empty fragments produce no child element.
func (b Badge) HTML() string {
	var sb strings.Builder
	sb.Grow(len(b.Icon) + len(b.Text) + 128)

	sb.WriteString(`<span class="`)
	sb.WriteString(BadgeClass)
	if b.Style != "" {
		sb.WriteString(" " + BadgeClass + "--")
		sb.WriteString(b.Style)
	}
	sb.WriteString(`">`)

	if b.Icon != "" {
		sb.WriteString(`<span class="` + BadgeIconClass + `">`)
		sb.WriteString(b.Icon)
		sb.WriteString(`</span>`)
	}
	if b.Text != "" {
		sb.WriteString(`<span class="` + BadgeTextClass + `">`)
		sb.WriteString(b.Text)
		sb.WriteString(`</span>`)
	}

	sb.WriteString(`</span>`)
	return sb.String()
}

// RenderBadge is shorthand for Badge{icon, text, style}.HTML().
func RenderBadge(icon, text, style string) string {
	return Badge{Icon: icon, Text: text, Style: style}.HTML()
}
