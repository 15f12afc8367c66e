// Package pool runs batches of independent tasks on a bounded number of goroutines.
package pool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Task is one unit of work. Its result is kept at the task's index.
type Task[T any] func(ctx context.Context) (T, error)

// InvokeAll runs every task with at most workers running at once and blocks until the
// whole batch has finished. Results keep submission order. The first task error cancels
// the context passed to tasks that have not started yet and is returned after all running
// tasks complete; no partial result slice is returned in that case.
func InvokeAll[T any](ctx context.Context, workers int, tasks []Task[T]) ([]T, error) {
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]T, len(tasks))
	for i, task := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := task(gctx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
