package execution

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type resolvedField struct {
	key   string
	value Value
}

// resolveEntriesConcurrently resolves sibling fields in parallel. Results are
// buffered per entry index so the response object keeps source order, the
// shared error sink absorbs field errors from all goroutines and the final
// sort keeps the errors array deterministic.
func (r *run) resolveEntriesConcurrently(ctx context.Context, entries []fieldEntry, path *pathNode) []resolvedField {
	results := make([]resolvedField, len(entries))

	group, groupCtx := errgroup.WithContext(ctx)
	for i := range entries {
		i := i
		group.Go(func() error {
			key, value := r.executeField(groupCtx, entries[i], path)
			results[i] = resolvedField{key: key, value: value}
			return groupCtx.Err()
		})
	}

	if err := group.Wait(); err != nil {
		r.appendError("execution canceled: "+err.Error(), entries[0], path)
	}

	return results
}
