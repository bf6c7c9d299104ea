package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-mdbadge/internal/hints"
)

// ErrUnresolvedReferences is returned by check --strict.
var ErrUnresolvedReferences = errors.New("unresolved references")

// runCheck transforms every page in memory and reports what it found.
func runCheck(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCommandFlags("check", args, env.Stderr)
	if err != nil {
		return err
	}

	s, err := resolveSettings(flags, positional, env)
	if err != nil {
		return err
	}
	out := newPrinter(env, flags.common)

	tree, jobs, err := discoverPages(s.docsDir, s.outputDir)
	if err != nil {
		return err
	}

	results := processBatch(ctx, s.converter, tree, jobs, batchOptions{workers: s.cfg.Workers})
	summary := out.printCheckResults(results)

	if summary.Failed > 0 {
		return buildError(summary.Failed, results)
	}
	if flags.strict && summary.Unresolved > 0 {
		return fmt.Errorf("%w: %d reference(s)%s", ErrUnresolvedReferences, summary.Unresolved,
			hints.ForUnresolvedReferences(s.cfg.Site.Conventions, s.cfg.Site.Changelog, s.cfg.Site.StripDepth))
	}
	return nil
}
