package worker

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// processConcurrent converts inputs with bounded parallelism. Results keep the
// input order; on cancellation the files finished so far are returned with
// the context error.
func processConcurrent(ctx context.Context, opts Options) ([]Result, error) {
	slog.Info("starting concurrent conversion",
		"files", len(opts.Inputs),
		"max_concurrent", opts.MaxConcurrent)

	results := make([]Result, len(opts.Inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.MaxConcurrent)

	for i, input := range opts.Inputs {
		i, input := i, input // per-iteration copies (go directive < 1.22)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each slot is written by exactly one goroutine.
			results[i] = convertFile(input, opts.outputFor(input), opts.Settings)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		done := results[:0]
		for _, r := range results {
			if r.Input != "" {
				done = append(done, r)
			}
		}
		return done, err
	}
	return results, nil
}
