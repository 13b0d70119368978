package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"hotel_sentiment/internal/adapters/observability"
	"hotel_sentiment/internal/domain"
)

// BackfillService rates stored reviews that have no aspect ratings yet.
type BackfillService struct {
	repo    domain.ReviewRepository
	rater   domain.Rater
	rl      *rate.Limiter
	workers int
	batch   int
}

type BackfillStats struct {
	Rated   int64
	Skipped int64
	Failed  int64
}

// NewBackfillService bounds concurrency to workers and writes to rps updates per second.
func NewBackfillService(repo domain.ReviewRepository, rater domain.Rater, workers, batch, rps int) *BackfillService {
	if workers <= 0 {
		workers = 1
	}
	if batch <= 0 {
		batch = 500
	}
	lim := rate.NewLimiter(rate.Inf, 0)
	if rps > 0 {
		lim = rate.NewLimiter(rate.Limit(rps), rps)
	}
	return &BackfillService{repo: repo, rater: rater, rl: lim, workers: workers, batch: batch}
}

// Run pages through unrated reviews by ascending id until none are left.
// Per-review failures are counted and logged; only listing errors and
// cancellation stop the run.
func (s *BackfillService) Run(ctx context.Context) (BackfillStats, error) {
	var (
		stats   BackfillStats
		afterID int64
	)
	sem := semaphore.NewWeighted(int64(s.workers))

	for {
		reviews, err := s.repo.ListUnrated(ctx, afterID, s.batch)
		if err != nil {
			return stats, fmt.Errorf("list unrated after %d: %w", afterID, err)
		}
		if len(reviews) == 0 {
			return stats, nil
		}

		var wg sync.WaitGroup
		for _, rv := range reviews {
			// acquire before launching the goroutine; release inside it
			if err := sem.Acquire(ctx, 1); err != nil {
				wg.Wait()
				return stats, err
			}
			wg.Add(1)
			go func(rv domain.Review) {
				defer wg.Done()
				defer sem.Release(1)
				s.rateOne(ctx, rv, &stats)
			}(rv)
		}
		wg.Wait()

		afterID = reviews[len(reviews)-1].ID
		log.Info().Int64("after_id", afterID).Int("batch", len(reviews)).Msg("backfill batch done")
		if err := ctx.Err(); err != nil {
			return stats, err
		}
	}
}

func (s *BackfillService) rateOne(ctx context.Context, rv domain.Review, stats *BackfillStats) {
	ratings, err := s.rater.Rate(deref(rv.Text))
	if errors.Is(err, domain.ErrMissingInput) {
		atomic.AddInt64(&stats.Skipped, 1)
		observability.ObserveBackfill("skipped")
		return
	}
	if err == nil {
		var b []byte
		if b, err = encodeAspects(ratings); err == nil {
			if err = s.rl.Wait(ctx); err == nil {
				err = s.repo.UpdateAspects(ctx, rv.ID, b)
			}
		}
	}
	if err != nil {
		atomic.AddInt64(&stats.Failed, 1)
		observability.ObserveBackfill("failed")
		log.Warn().Int64("id", rv.ID).Err(err).Msg("rate review failed")
		return
	}
	atomic.AddInt64(&stats.Rated, 1)
	observability.ObserveBackfill("rated")
}
