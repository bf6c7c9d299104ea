package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdbadge <command> [flags] [DOCS_DIR]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Rewrite shortcodes in every page")
	fmt.Fprintln(w, "  check       Report shortcodes and unresolved links")
	fmt.Fprintln(w, "  watch       Rebuild pages when they change")
	fmt.Fprintln(w, "  config      Print the effective configuration")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdbadge help <command>' for details on a specific command.")
}

// printCommandUsage prints usage for build, check, watch or config.
func printCommandUsage(w io.Writer, name string) {
	switch name {
	case "build":
		fmt.Fprintln(w, "Usage: mdbadge build [flags] [DOCS_DIR]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Rewrite <!-- md:TYPE ARGS --> shortcodes into badges and write every")
		fmt.Fprintln(w, "page under the output directory, mirroring the docs tree.")
	case "check":
		fmt.Fprintln(w, "Usage: mdbadge check [flags] [DOCS_DIR]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Transform every page in memory and report shortcode counts,")
		fmt.Fprintln(w, "unresolved references and unknown shortcode types.")
	case "watch":
		fmt.Fprintln(w, "Usage: mdbadge watch [flags] [DOCS_DIR]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Build once, then rebuild changed pages until interrupted.")
	case "config":
		fmt.Fprintln(w, "Usage: mdbadge config [flags] [DOCS_DIR]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Print the configuration after env vars, config file and flags are merged.")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  DOCS_DIR    Docs root (optional if config has docs.dir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Links:")
	fmt.Fprintln(w, "      --conventions <path>  Conventions page (default sw/changelog/conventions.md)")
	fmt.Fprintln(w, "      --changelog <path>    Changelog page (default sw/changelog/index.md)")
	fmt.Fprintln(w, "      --strip-depth <n>     Leading segments dropped from links (0-16, default 1)")

	if name == "build" || name == "watch" || name == "config" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Output:")
		fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default DOCS_DIR/../site-src)")
		fmt.Fprintln(w, "      --html                Also write an HTML preview of each page")
		fmt.Fprintln(w, "      --style <name>        Badge stylesheet: default, minimal")
		fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/NAME.css overrides")
		fmt.Fprintln(w, "      --no-style            Do not inject a stylesheet")
	}

	if name != "config" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Processing:")
		fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
		if name == "check" {
			fmt.Fprintln(w, "      --strict              Exit 4 when any reference is unresolved")
		}
		fmt.Fprintln(w, "      --log-level <s>       trace, debug, info, warn, error")
		fmt.Fprintln(w, "      --log-format <s>      console, json, pretty")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-page details")
	fmt.Fprintln(w, "      --no-color            Disable colored output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDBADGE_CONFIG, MDBADGE_DOCS_DIR, MDBADGE_OUTPUT_DIR, MDBADGE_CONVENTIONS,")
	fmt.Fprintln(w, "  MDBADGE_CHANGELOG, MDBADGE_STRIP_DEPTH, MDBADGE_STYLE, MDBADGE_LOG_LEVEL,")
	fmt.Fprintln(w, "  MDBADGE_LOG_FORMAT, MDBADGE_WORKERS")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build", "check", "watch", "config":
		printCommandUsage(env.Stdout, args[0])
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdbadge version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdbadge help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
