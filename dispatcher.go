package mdbadge

import "fmt"

// Default site-relative documents referenced by badges.
const (
	DefaultConventionsPath = "sw/changelog/conventions.md"
	DefaultChangelogPath   = "sw/changelog/index.md"
)

// SitePaths names the documents badges link to.
type SitePaths struct {
	// Conventions is the page whose anchors (#version, #feature, ...) explain each badge.
	Conventions string
	// Changelog is the page whose anchors are version numbers.
	Changelog string
}

// DefaultSitePaths returns the stock conventions and changelog locations.
func DefaultSitePaths() SitePaths {
	return SitePaths{
		Conventions: DefaultConventionsPath,
		Changelog:   DefaultChangelogPath,
	}
}

// badgeIcon pairs a material icon token with its tooltip.
type badgeIcon struct {
	icon    string
	tooltip string
}

var badgeIcons = map[Kind]badgeIcon{
	KindVersion:      {icon: "material-tag-outline", tooltip: "Minimum version"},
	KindFeature:      {icon: "material-toggle-switch", tooltip: "Optional feature"},
	KindPlugin:       {icon: "material-floppy", tooltip: "External IP / Plugin"},
	KindDefault:      {icon: "material-water", tooltip: "Default value"},
	KindExperimental: {icon: "material-flask-outline", tooltip: "Experimental"},
}

// Dispatcher renders shortcodes into badge markup.
type Dispatcher struct {
	resolver *Resolver
	site     SitePaths
}

// NewDispatcher creates a Dispatcher. A nil resolver uses NewResolver().
func NewDispatcher(resolver *Resolver, site SitePaths) *Dispatcher {
	if resolver == nil {
		resolver = NewResolver()
	}
	return &Dispatcher{resolver: resolver, site: site}
}

// Dispatch renders sc for page. It returns false when the kind is not
// handled, in which case the caller keeps the marker text.
func (d *Dispatcher) Dispatch(sc Shortcode, page Page, tree FileTree) (string, bool) {
	switch sc.Kind {
	case KindVersion:
		return d.versionBadge(sc.Args, page, tree), true
	case KindFeature, KindPlugin, KindDefault:
		return Badge{
			Icon: d.iconLink(sc.Kind, page, tree),
			Text: sc.Args,
		}.HTML(), true
	case KindExperimental:
		return d.experimentalBadge(page, tree), true
	case KindFlag:
		return d.flag(sc, page, tree), true
	case KindUnknown:
		return "", false
	default:
		return "", false
	}
}

// flag renders flag sub-types. Only experimental is defined; other
// sub-types render nothing.
func (d *Dispatcher) flag(sc Shortcode, page Page, tree FileTree) string {
	switch sc.FlagKind() {
	case KindExperimental:
		return d.experimentalBadge(page, tree)
	default:
		return ""
	}
}

func (d *Dispatcher) versionBadge(spec string, page Page, tree FileTree) string {
	icon := d.iconLink(KindVersion, page, tree)
	text := ""
	if spec != "" {
		href := d.resolver.Resolve(d.site.Changelog+"#"+spec, page, tree)
		text = fmt.Sprintf("[%s](%s)", spec, href)
	}
	return Badge{Icon: icon, Text: text}.HTML()
}

func (d *Dispatcher) experimentalBadge(page Page, tree FileTree) string {
	return Badge{Icon: d.iconLink(KindExperimental, page, tree)}.HTML()
}

// iconLink renders the icon as a markdown link to the conventions anchor for kind.
func (d *Dispatcher) iconLink(kind Kind, page Page, tree FileTree) string {
	bi := badgeIcons[kind]
	href := d.resolver.Resolve(d.site.Conventions+"#"+kind.String(), page, tree)
	return fmt.Sprintf("[:%s:](%s '%s')", bi.icon, href, bi.tooltip)
}
