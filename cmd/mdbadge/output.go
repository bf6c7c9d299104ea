package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"

	mdbadge "github.com/alnah/go-mdbadge"
)

// printer writes human-facing status lines.
// Errors go to stderr and are printed even when quiet.
type printer struct {
	stdout  io.Writer
	stderr  io.Writer
	quiet   bool
	verbose bool
}

// newPrinter creates a printer for the given common flags.
func newPrinter(env *Environment, flags commonFlags) *printer {
	if flags.noColor && !color.NoColor {
		color.NoColor = true
	}
	return &printer{
		stdout:  env.Stdout,
		stderr:  env.Stderr,
		quiet:   flags.quiet,
		verbose: flags.verbose,
	}
}

func (p *printer) success(format string, args ...any) {
	if p.quiet {
		return
	}
	color.New(color.FgGreen).Fprintf(p.stdout, format+"\n", args...)
}

func (p *printer) failure(format string, args ...any) {
	color.New(color.FgRed).Fprintf(p.stderr, format+"\n", args...)
}

func (p *printer) warning(format string, args ...any) {
	if p.quiet {
		return
	}
	color.New(color.FgYellow).Fprintf(p.stderr, format+"\n", args...)
}

func (p *printer) info(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.stdout, format+"\n", args...)
}

func (p *printer) heading(text string) {
	if p.quiet {
		return
	}
	color.New(color.Bold).Fprintln(p.stdout, text)
}

// printBuildResults reports each page and a summary. Returns the failed count.
func (p *printer) printBuildResults(results []PageResult) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			p.failure("FAILED %s: %v", r.InputPath, r.Err)
			continue
		}
		if !p.verbose {
			continue
		}
		p.info("%s -> %s (%v)", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		if r.HTMLPath != "" {
			p.info("%s -> %s", r.InputPath, r.HTMLPath)
		}
	}
	p.printProblems(results)

	if summary.Failed == 0 {
		p.success("Built %d page(s)", summary.Succeeded)
	} else {
		p.info("\n%d succeeded, %d failed", summary.Succeeded, summary.Failed)
	}
	return summary.Failed
}

// printCheckResults reports marker counts and problems per page.
func (p *printer) printCheckResults(results []PageResult) ResultSummary {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			p.failure("FAILED %s: %v", r.InputPath, r.Err)
		}
	}

	totals := make(map[mdbadge.Kind]int)
	for _, r := range results {
		if r.Report == nil {
			continue
		}
		for kind, n := range r.Report.CountByKind() {
			totals[kind] += n
		}
	}

	p.heading("Shortcodes")
	for _, kind := range sortedKinds(totals) {
		p.info("  %-14s %d", kind, totals[kind])
	}
	if len(totals) == 0 {
		p.info("  none")
	}

	p.printProblems(results)

	if summary.Unresolved == 0 && summary.Unknown == 0 && summary.Failed == 0 {
		p.success("Checked %d page(s): no problems", summary.Succeeded)
	} else {
		p.info("\nChecked %d page(s): %d unresolved, %d unknown, %d failed",
			summary.Succeeded, summary.Unresolved, summary.Unknown, summary.Failed)
	}
	return summary
}

// printProblems lists unresolved references and unknown markers per page.
func (p *printer) printProblems(results []PageResult) {
	for _, r := range results {
		if r.Report == nil || !r.Report.HasProblems() {
			continue
		}
		for _, ref := range r.Report.Unresolved {
			p.warning("%s: unresolved reference %s", r.SourcePath, ref)
		}
		for _, o := range r.Report.Unknown() {
			p.warning("%s:%d: unknown shortcode %q", r.SourcePath, o.Line, o.Name)
		}
	}
}

func sortedKinds(counts map[mdbadge.Kind]int) []mdbadge.Kind {
	kinds := make([]mdbadge.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
