package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/richtext/internal/logging"
)

// Runner processes discovered files with a pool of workers.
type Runner struct {
	Processor Processor
}

// New returns a runner using p.
func New(p Processor) *Runner {
	return &Runner{Processor: p}
}

// Run discovers files for opts and processes them concurrently. Outcomes are
// returned in path order regardless of completion order. On cancellation the
// outcomes gathered so far are returned with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	work := make(chan string)
	out := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, work, out)
		}()
	}
	go func() {
		defer close(work)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case work <- path:
			}
		}
	}()
	go func() {
		wg.Wait()
		close(out)
	}()

	byPath := make(map[string]FileOutcome, len(files))
	for o := range out {
		byPath[o.Path] = o
	}
	for _, path := range files {
		if o, ok := byPath[path]; ok {
			result.accumulate(o)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, work <-chan string, out chan<- FileOutcome) {
	logger := logging.FromContext(ctx)
	for path := range work {
		if ctx.Err() != nil {
			return
		}

		o := FileOutcome{Path: path}
		o.Result, o.Error = r.Processor.Process(ctx, path)
		if o.Error != nil {
			logger.Debug("process failed", logging.FieldPath, path, logging.FieldError, o.Error)
		}

		select {
		case <-ctx.Done():
			return
		case out <- o:
		}
	}
}
