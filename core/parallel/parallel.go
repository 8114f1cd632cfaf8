// Package parallel fans work out over a bounded number of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Workers resolves a requested worker count: values <= 0 mean one worker per
// CPU core.
func Workers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// Parallelize divides items into contiguous ranges, one per worker, and runs
// fn(start, end) for each range concurrently. workers is resolved with
// Workers. With a single worker fn runs on the calling goroutine.
func Parallelize(items, workers int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := Workers(workers)
	if numWorkers > items {
		numWorkers = items // No need for more workers than items
	}
	if numWorkers == 1 {
		fn(0, items)
		return
	}

	// ceiling division
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially when items does not exceed
// threshold and falls back to Parallelize otherwise.
func ParallelizeWithThreshold(items, threshold, workers int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, workers, fn)
}

// ForEach calls fn(i) for every i in [0, items) using
// ParallelizeWithThreshold, so at most threshold items run inline on the
// calling goroutine. Each index is visited exactly once, so fn may write to
// slot i of a preallocated slice without locking.
func ForEach(items, threshold, workers int, fn func(i int)) {
	ParallelizeWithThreshold(items, threshold, workers, func(start, end int) {
		for i := start; i < end; i++ {
			fn(i)
		}
	})
}
