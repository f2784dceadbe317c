package fixpoint

import (
	"context"

	L "github.com/cs-au-dk/absdom/analysis/lattice"

	"golang.org/x/sync/errgroup"
)

// SolveAll solves independent problems in parallel and merges their states
// into the table. Each problem owns its states while it is being solved, so
// the table is the only point of synchronization. The first failure cancels
// the remaining computations.
func SolveAll[N comparable, D L.Element[D]](
	ctx context.Context,
	table *Table[N, D],
	problems ...Problem[N, D],
) ([]*Result[N, D], error) {
	results := make([]*Result[N, D], len(problems))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range problems {
		i, p := i, p
		g.Go(func() error {
			res, err := SolveContext(ctx, p)
			if err != nil {
				return err
			}

			for _, n := range res.Nodes() {
				table.Merge(n, res.In(n))
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
