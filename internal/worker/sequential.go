package worker

import (
	"context"
	"fmt"
	"log/slog"
)

// processSequential converts inputs one at a time, checking for cancellation
// between files.
func processSequential(ctx context.Context, opts Options) ([]Result, error) {
	results := make([]Result, 0, len(opts.Inputs))

	for i, input := range opts.Inputs {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		if len(opts.Inputs) > 1 {
			slog.Debug("processing file", "file", fmt.Sprintf("%d/%d", i+1, len(opts.Inputs)))
		}
		results = append(results, convertFile(input, opts.outputFor(input), opts.Settings))
	}

	return results, nil
}
