package s57

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// LoadOptions controls parallel chart loading.
type LoadOptions struct {
	// Workers is the number of loader goroutines; zero means
	// runtime.NumCPU().
	Workers int

	// Parse configures each individual parse.
	Parse ParseOptions

	// SkipErrors keeps loading when individual charts fail; failures
	// are collected and returned alongside the loaded charts. When
	// false the first error cancels the remaining work.
	SkipErrors bool

	// Progress, when set, is called after each chart finishes
	// (successfully or not) with the running count and the total.
	Progress func(loaded, total int)
}

// DefaultLoadOptions returns load options with sensible defaults: one
// worker per CPU, errors collected rather than fatal.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Workers:    runtime.NumCPU(),
		Parse:      DefaultParseOptions(),
		SkipErrors: true,
	}
}

// LoadCellsParallel loads multiple ENC cells concurrently with a
// bounded worker pool. Results come back in input order; failed paths
// leave a nil slot and contribute an error.
func LoadCellsParallel(ctx context.Context, p Parser, paths []string, opts LoadOptions) ([]*Chart, []error) {
	if len(paths) == 0 {
		return nil, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	charts := make([]*Chart, len(paths))
	errs := make([]error, 0)
	loaded := 0

	jobs := make(chan int)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				chart, err := p.ParseWithOptions(paths[index], opts.Parse)

				mu.Lock()
				loaded++
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", paths[index], err))
					if !opts.SkipErrors {
						cancel()
					}
				} else {
					charts[index] = chart
				}
				if opts.Progress != nil {
					opts.Progress(loaded, len(paths))
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for i := range paths {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return charts, errs
}
