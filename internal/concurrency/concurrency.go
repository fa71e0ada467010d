package concurrency

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

// NewResultPool returns a new pool where each task respects context cancellation
// and returns a value. The first task error cancels the context handed to the
// remaining tasks, and Wait() will only return that first error.
func NewResultPool[T any](ctx context.Context, maxGoroutines int) *pool.ResultContextPool[T] {
	return pool.NewWithResults[T]().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(maxGoroutines)
}
