package novelfmt

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Worker sizing constants.
const (
	// MinWorkers ensures at least one chapter is formatted at a time.
	MinWorkers = 1

	// MaxWorkers caps automatic sizing.
	MaxWorkers = 16
)

// ResolveWorkers determines the batch worker count.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by CLIs.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers
	n := runtime.GOMAXPROCS(0)
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// FormatBatch formats chapters concurrently with at most workers chapters
// in flight (0 picks a count with ResolveWorkers). Results are in input
// order. A failing chapter does not stop the others; once ctx is done the
// remaining chapters fail with its error.
func (f *Formatter) FormatBatch(ctx context.Context, chapters []RawChapter, workers int) []BatchResult {
	results := make([]BatchResult, len(chapters))
	if len(chapters) == 0 {
		return results
	}

	n := min(ResolveWorkers(workers), len(chapters))

	var g errgroup.Group
	g.SetLimit(n)

	for i, ch := range chapters {
		g.Go(func() error {
			res, err := f.Format(ctx, ch)
			results[i] = BatchResult{Chapter: ch, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	f.log.Debug().Int("chapters", len(chapters)).Int("workers", n).Msg("batch formatted")
	return results
}
