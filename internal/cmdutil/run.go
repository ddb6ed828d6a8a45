package cmdutil

import (
	"context"

	"primerfig/internal/pipeline"
)

// RunStream runs the batch pipeline, applies a visitor, and streams results via send.
// It returns the number of kept outputs and the first error encountered.
func RunStream[T any](
	ctx context.Context,
	cfg pipeline.Config,
	r pipeline.Renderer,
	inputs []pipeline.Input,
	visit func(pipeline.Result) (bool, T, error),
	send func(T) error,
) (int, error) {
	total := 0
	err := pipeline.ForEachSite(ctx, cfg, r, inputs, func(res pipeline.Result) error {
		keep, out, vErr := visit(res)
		if vErr != nil {
			return vErr
		}
		if !keep {
			return nil
		}
		if err := send(out); err != nil {
			return err
		}
		total++
		return nil
	})
	return total, err
}
