package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls the fan-out.
type Config struct {
	Threads int // concurrent files; <= 0 means runtime.NumCPU()
}

// Result is the outcome for one input.
type Result[T any] struct {
	Path  string
	Value T
	Err   error
}

// ForEachFile calls fn once per path with at most cfg.Threads calls in
// flight. A per-file error is recorded in that file's Result and does not
// stop the others. The returned error is only ever the context's.
func ForEachFile[T any](
	ctx context.Context,
	cfg Config,
	paths []string,
	fn func(ctx context.Context, path string) (T, error),
) ([]Result[T], error) {
	thr := cfg.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}
	results := make([]Result[T], len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(thr)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := fn(gctx, p)
			results[i] = Result[T]{Path: p, Value: v, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
