package mdbadge

import "strings"

// Kind enumerates the recognized shortcode types.
type Kind int

const (
	KindUnknown Kind = iota
	KindVersion
	KindFeature
	KindPlugin
	KindDefault
	KindExperimental
	KindFlag
)

var kindNames = map[Kind]string{
	KindVersion:      "version",
	KindFeature:      "feature",
	KindPlugin:       "plugin",
	KindDefault:      "default",
	KindExperimental: "experimental",
	KindFlag:         "flag",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// String returns the marker name of the kind, or "unknown".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind maps a marker type name to its Kind, ignoring case.
func ParseKind(name string) Kind {
	if k, ok := kindsByName[strings.ToLower(name)]; ok {
		return k
	}
	return KindUnknown
}

// Shortcode is one marker found in page text.
// Raw holds the full matched marker so unknown kinds can be written back.
type Shortcode struct {
	Kind Kind
	Name string
	Args string
	Raw  string
}

// ParseShortcode builds a Shortcode from a marker's type name and argument text.
// Args are whitespace-trimmed.
func ParseShortcode(name, args, raw string) Shortcode {
	return Shortcode{
		Kind: ParseKind(name),
		Name: name,
		Args: strings.TrimSpace(args),
		Raw:  raw,
	}
}

// FlagKind returns the kind named by the first whitespace-delimited token of
// a flag shortcode's arguments. Unlike marker types, the token is matched
// exactly: "Experimental" names no kind.
func (s Shortcode) FlagKind() Kind {
	fields := strings.Fields(s.Args)
	if len(fields) == 0 {
		return KindUnknown
	}
	if k, ok := kindsByName[fields[0]]; ok {
		return k
	}
	return KindUnknown
}
