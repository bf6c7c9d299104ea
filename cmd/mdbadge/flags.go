package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	mdbadge "github.com/alnah/go-mdbadge"
)

// ErrUsage wraps flag parsing failures.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	noColor bool
}

// logFlags holds diagnostic logging flags.
type logFlags struct {
	level  string
	format string
}

// siteFlags holds link resolution flags.
type siteFlags struct {
	conventions string
	changelog   string
	stripDepth  int
}

// outputFlags holds output location and HTML preview flags.
type outputFlags struct {
	output    string
	html      bool
	style     string
	assetPath string
	noStyle   bool
}

// cmdFlags holds all flags for build, check, watch and config.
// Each command registers only the groups it uses.
type cmdFlags struct {
	common  commonFlags
	log     logFlags
	site    siteFlags
	out     outputFlags
	workers int
	strict  bool

	// set holds the names of flags given on the command line.
	set map[string]bool
}

// isSet reports whether the named flag was given explicitly.
func (f *cmdFlags) isSet(name string) bool {
	return f.set[name]
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-page details")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")
}

// addLogFlags adds logging flags to a FlagSet.
func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.level, "log-level", "", "log level: trace, debug, info, warn, error")
	fs.StringVar(&f.format, "log-format", "", "log format: console, json, pretty")
}

// addSiteFlags adds link resolution flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.conventions, "conventions", "", "site path of the conventions page")
	fs.StringVar(&f.changelog, "changelog", "", "site path of the changelog page")
	fs.IntVar(&f.stripDepth, "strip-depth", mdbadge.DefaultStripDepth, "leading segments dropped from computed links")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default DOCS_DIR/../site-src)")
	fs.BoolVar(&f.html, "html", false, "also write an HTML preview of each page")
	fs.StringVar(&f.style, "style", "", "badge stylesheet for HTML previews")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with styles/NAME.css overrides")
	fs.BoolVar(&f.noStyle, "no-style", false, "do not inject a stylesheet into HTML previews")
}

// newCommandFlagSet builds the FlagSet for a command. Completion scripts are
// generated from the same sets.
func newCommandFlagSet(name string) (*flag.FlagSet, *cmdFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	f := &cmdFlags{}

	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)

	switch name {
	case "build", "watch":
		fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
		addLogFlags(fs, &f.log)
		addOutputFlags(fs, &f.out)
	case "check":
		fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
		fs.BoolVar(&f.strict, "strict", false, "exit 4 when any reference is unresolved")
		addLogFlags(fs, &f.log)
	case "config":
		addOutputFlags(fs, &f.out)
	}

	return fs, f
}

// parseCommandFlags parses args for a command and returns positional args.
// Help requests return flag.ErrHelp after printing usage to stderr.
func parseCommandFlags(name string, args []string, stderr io.Writer) (*cmdFlags, []string, error) {
	fs, f := newCommandFlagSet(name)
	fs.SetOutput(stderr)
	fs.Usage = func() { printCommandUsage(stderr, name) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })

	return f, fs.Args(), nil
}
