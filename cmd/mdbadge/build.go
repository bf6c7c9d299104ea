package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-mdbadge/internal/hints"
)

// runBuild transforms every page under the docs root and writes the results.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCommandFlags("build", args, env.Stderr)
	if err != nil {
		return err
	}

	s, err := resolveSettings(flags, positional, env)
	if err != nil {
		return err
	}

	out := newPrinter(env, flags.common)
	_, err = buildAll(ctx, s, out)
	return err
}

// buildAll scans the docs tree and builds every page.
// It returns the site tree so watch can compare it on the next change.
func buildAll(ctx context.Context, s *settings, out *printer) ([]string, error) {
	tree, jobs, err := discoverPages(s.docsDir, s.outputDir)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		out.warning("no markdown pages found in %s", s.docsDir)
		return nil, nil
	}

	results := processBatch(ctx, s.converter, tree, jobs, batchOptions{
		workers: s.cfg.Workers,
		write:   true,
		html:    s.cfg.HTML.Enabled,
	})

	return tree.Paths(), buildError(out.printBuildResults(results), results)
}

// buildError turns failed pages into the command error.
func buildError(failed int, results []PageResult) error {
	if failed == 0 {
		return nil
	}
	if ioErr := firstIOError(results); ioErr != nil {
		if errors.Is(ioErr, ErrWritePage) {
			return fmt.Errorf("%d page(s) failed: %w%s", failed, ioErr, hints.ForOutputDirectory())
		}
		return fmt.Errorf("%d page(s) failed: %w", failed, ioErr)
	}
	return fmt.Errorf("%w: %d page(s) failed", ErrBuildFailed, failed)
}
