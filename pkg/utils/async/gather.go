package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// Gather runs handler for every item concurrently and collects the results in input order.
//
// Behavior:
//   - limit <= 0 launches one goroutine per item, otherwise at most limit run at once
//   - The first error cancels the context passed to the other handlers and is returned
//   - Results of other handlers are discarded when an error occurs
//   - A panic in a handler is recovered, logged with its stack and returned as an error
func Gather[T, R any](ctx context.Context, items []T, limit int, handler func(ctx context.Context, item T) (R, error)) ([]R, error) {
	eg, egCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}

	results := make([]R, len(items))
	for i, item := range items {
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					ctxlog.From(egCtx).Error("panic in async handler",
						"recover", r,
						"stack", string(stack))
					err = goerr.New("panic in async handler", goerr.V("recover", r))
				}
			}()

			// Skip handlers that have not started yet once a sibling failed
			if err := egCtx.Err(); err != nil {
				return err
			}

			result, err := handler(egCtx, item)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
