package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	mdbadge "github.com/alnah/go-mdbadge"
	"github.com/alnah/go-mdbadge/internal/hints"
	"github.com/alnah/go-mdbadge/internal/watch"
)

// runWatch builds once, then rebuilds on changes until interrupted.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCommandFlags("watch", args, env.Stderr)
	if err != nil {
		return err
	}

	s, err := resolveSettings(flags, positional, env)
	if err != nil {
		return err
	}
	out := newPrinter(env, flags.common)

	// Page failures are reported and watching continues; a tree that
	// cannot be scanned stops here.
	paths, err := buildAll(ctx, s, out)
	if err != nil && paths == nil {
		return err
	}

	w, err := watch.New(s.docsDir,
		watch.WithFilter(mdbadge.IsMarkdownFile),
		watch.WithLogger(s.logs.GetLogger("watch")),
	)
	if err != nil {
		return fmt.Errorf("starting watcher: %w%s", err, hints.ForWatchLimit())
	}
	defer func() { _ = w.Close() }()

	r := &rebuilder{settings: s, out: out, paths: paths}
	out.info("Watching %s (Ctrl+C to stop)", s.docsDir)

	if err := w.Run(ctx, func(changed []string) { r.rebuild(ctx, changed) }); err != nil {
		return err
	}
	return nil
}

// rebuilder applies watch batches. Batches are serialized.
type rebuilder struct {
	mu       sync.Mutex
	settings *settings
	out      *printer
	paths    []string // site tree at the last build
}

// rebuild updates outputs for a batch of changed files.
// Pages are added or removed: every page is rebuilt since links may now
// resolve differently. Otherwise only the changed pages are rebuilt.
func (r *rebuilder) rebuild(ctx context.Context, changed []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.settings
	tree, jobs, err := discoverPages(s.docsDir, s.outputDir)
	if err != nil {
		r.out.failure("rebuild: %v", err)
		return
	}

	paths := tree.Paths()
	if !slices.Equal(paths, r.paths) {
		r.removeStale(paths)
		r.paths = paths
	} else {
		jobs = changedJobs(jobs, s.docsDir, changed)
	}
	if len(jobs) == 0 {
		return
	}

	results := processBatch(ctx, s.converter, tree, jobs, batchOptions{
		workers: s.cfg.Workers,
		write:   true,
		html:    s.cfg.HTML.Enabled,
	})
	r.out.printBuildResults(results)
}

// removeStale deletes outputs of pages that no longer exist.
func (r *rebuilder) removeStale(current []string) {
	s := r.settings
	for _, p := range r.paths {
		if slices.Contains(current, p) {
			continue
		}
		job := newPageJob(p, s.docsDir, s.outputDir)
		removeOutput(job.OutputPath, r.out)
		if s.cfg.HTML.Enabled {
			removeOutput(htmlPathFor(job.OutputPath), r.out)
		}
	}
}

func removeOutput(path string, out *printer) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		out.failure("removing %s: %v", path, err)
		return
	}
	if out.verbose {
		out.info("Removed %s", path)
	}
}

// changedJobs keeps the jobs whose source file is in changed.
func changedJobs(jobs []pageJob, docsDir string, changed []string) []pageJob {
	wanted := make(map[string]bool, len(changed))
	for _, c := range changed {
		if sp, ok := sourcePathFor(docsDir, c); ok {
			wanted[sp] = true
		}
	}

	var kept []pageJob
	for _, j := range jobs {
		if wanted[j.SourcePath] {
			kept = append(kept, j)
		}
	}
	return kept
}
