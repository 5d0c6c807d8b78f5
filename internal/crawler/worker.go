package crawler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"indexcrawl/internal/fetch"
	"indexcrawl/internal/frontier"
	"indexcrawl/internal/listing"
	"indexcrawl/internal/metrics"
)

// runWorker drains the frontier until it observes quiescence or the
// crawl is cancelled. A worker with nothing to claim must not exit
// while other workers might still discover directories for it, so it
// sleeps one poll interval and re-checks instead.
func runWorker(
	ctx context.Context,
	id int,
	f *frontier.Frontier,
	fetcher *fetch.Fetcher,
	poll time.Duration,
	log *zap.Logger,
	abort func(error),
) {
	for {
		if ctx.Err() != nil {
			return
		}

		dir, ok := f.ClaimNext()
		if !ok {
			if f.IsQuiescent() {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(poll):
			}
			continue
		}

		res := fetcher.Fetch(ctx, dir)
		switch res.Outcome {
		case fetch.Transient:
			metrics.TransientRetries.Inc()
			log.Debug("transient fetch failure, requeued",
				zap.Int("worker", id), zap.String("dir", dir), zap.Error(res.Err))
			f.ReleaseTransient(dir)

		case fetch.FatalMismatch:
			abort(res.Err)
			return

		case fetch.Success:
			links, err := listing.Parse(res.Body)
			if err != nil {
				abort(fmt.Errorf("parse %s: %w", dir, err))
				return
			}
			for _, l := range links {
				if l.Dir {
					if f.OfferDirectory(l.Path) {
						metrics.DirectoriesDiscovered.Inc()
					}
				} else {
					f.OfferFile(l.Path)
					metrics.FilesDiscovered.Inc()
				}
			}
			f.CompleteVisit(dir)
		}
	}
}
