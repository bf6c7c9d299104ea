package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	mdbadge "github.com/alnah/go-mdbadge"
	"github.com/alnah/go-mdbadge/internal/fileutil"
)

// Sentinel errors for batch operations.
var (
	ErrReadPage    = errors.New("failed to read page")
	ErrWritePage   = errors.New("failed to write page")
	ErrBuildFailed = errors.New("build failed")
)

// PageConverter is the interface for the page conversion service.
type PageConverter interface {
	Convert(ctx context.Context, input mdbadge.Input) (*mdbadge.Result, error)
}

// Compile-time interface implementation check.
var _ PageConverter = (*mdbadge.Converter)(nil)

// batchOptions controls what processPage does with each result.
type batchOptions struct {
	workers int
	write   bool // write rewritten markdown to OutputPath
	html    bool // also render and write an .html preview
}

// PageResult holds the outcome of a single page.
type PageResult struct {
	SourcePath string
	InputPath  string
	OutputPath string // empty when nothing was written
	HTMLPath   string
	Report     *mdbadge.Report
	Err        error
	Duration   time.Duration
}

// processBatch converts pages concurrently. Results keep the order of jobs.
func processBatch(ctx context.Context, conv PageConverter, tree mdbadge.FileTree, jobs []pageJob, opts batchOptions) []PageResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := resolvePoolSize(opts.workers, len(jobs))
	results := make([]PageResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = PageResult{
						SourcePath: jobs[idx].SourcePath,
						InputPath:  jobs[idx].InputPath,
						Err:        ctx.Err(),
					}
					continue
				}
				results[idx] = processPage(ctx, conv, tree, jobs[idx], opts)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// processPage reads, converts and optionally writes a single page.
func processPage(ctx context.Context, conv PageConverter, tree mdbadge.FileTree, job pageJob, opts batchOptions) PageResult {
	start := time.Now()
	result := PageResult{
		SourcePath: job.SourcePath,
		InputPath:  job.InputPath,
	}
	finish := func(err error) PageResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(job.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadPage, err))
	}

	res, err := conv.Convert(ctx, mdbadge.Input{
		Markdown: string(content),
		Page:     mdbadge.Page{SourcePath: job.SourcePath},
		Tree:     tree,
		HTML:     opts.write && opts.html,
	})
	if err != nil {
		return finish(err)
	}
	result.Report = res.Report

	if !opts.write {
		return finish(nil)
	}

	if err := fileutil.WriteFile(job.OutputPath, []byte(res.Markdown)); err != nil {
		return finish(fmt.Errorf("%w: %v", ErrWritePage, err))
	}
	result.OutputPath = job.OutputPath

	if opts.html {
		htmlPath := htmlPathFor(job.OutputPath)
		if err := fileutil.WriteFile(htmlPath, []byte(res.HTML)); err != nil {
			return finish(fmt.Errorf("%w: %v", ErrWritePage, err))
		}
		result.HTMLPath = htmlPath
	}

	return finish(nil)
}

// ResultSummary holds the count of succeeded and failed pages.
type ResultSummary struct {
	Succeeded  int
	Failed     int
	Unresolved int
	Unknown    int
}

// countResults tallies page outcomes and marker problems.
func countResults(results []PageResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		if r.Report != nil {
			summary.Unresolved += len(r.Report.Unresolved)
			summary.Unknown += len(r.Report.Unknown())
		}
	}
	return summary
}

// firstIOError returns the first read or write failure, if any.
// Used to pick an I/O exit code over a generic failure.
func firstIOError(results []PageResult) error {
	for _, r := range results {
		if errors.Is(r.Err, ErrReadPage) || errors.Is(r.Err, ErrWritePage) {
			return r.Err
		}
	}
	return nil
}
