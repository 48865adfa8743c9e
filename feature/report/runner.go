package report

import (
	"context"

	"enumeration-report/core/reconcile"

	"golang.org/x/sync/errgroup"
)

// ForEachTrack runs fn for every track with at most concurrency tracks in flight.
// The first error cancels the context handed to the remaining tracks.
func ForEachTrack(ctx context.Context, tracks []reconcile.Track, concurrency int, fn func(ctx context.Context, track reconcile.Track) error) error {
	if concurrency <= 0 {
		concurrency = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, track := range tracks {
		track := track
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, track)
		})
	}
	return g.Wait()
}
