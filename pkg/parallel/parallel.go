// Package parallel runs independent jobs over a bounded worker pool. The
// training driver uses it to fit the classifiers concurrently; the data
// preparation and voting stages never depend on it.
package parallel

import (
	"context"
	"sync"
)

// Map runs fn over items with at most maxWorkers goroutines and returns the
// results in input order. The first error encountered is returned alongside
// the partial results; a cancelled context stops workers between jobs.
func Map[T, R any](ctx context.Context, items []T, maxWorkers int, fn func(ctx context.Context, index int, item T) (R, error)) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if maxWorkers <= 0 || maxWorkers > len(items) {
		maxWorkers = len(items)
	}

	jobs := make(chan int, len(items))
	type outcome struct {
		index int
		value R
		err   error
	}
	results := make(chan outcome, len(items))

	var wg sync.WaitGroup
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					results <- outcome{index: i, err: ctx.Err()}
					continue
				}
				v, err := fn(ctx, i, items[i])
				results <- outcome{index: i, value: v, err: err}
			}
		}()
	}
	for i := range items {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(results)

	out := make([]R, len(items))
	var firstErr error
	for res := range results {
		if res.err != nil && firstErr == nil {
			firstErr = res.err
		}
		out[res.index] = res.value
	}
	return out, firstErr
}
