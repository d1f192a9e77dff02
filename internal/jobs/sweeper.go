package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/table-reservations/internal/timezone"
	"github.com/BruksfildServices01/table-reservations/internal/usecase/reservation"
)

// Sweeper is the part of the daily sweep use case the job needs.
type Sweeper interface {
	Execute(ctx context.Context, asOf string) (*reservation.SweepResult, error)
}

type SweeperConfig struct {
	Sweep    Sweeper
	Interval time.Duration
	Location *time.Location
	Now      func() time.Time
}

// StartSweeper runs the sweep once right away and then on every tick, with
// asOf set to today in the restaurant timezone. It stops when ctx ends.
func StartSweeper(ctx context.Context, cfg SweeperConfig) <-chan struct{} {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	done := make(chan struct{})

	go func() {
		defer close(done)

		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("sweeper: started")
		runSweep(ctx, cfg)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("sweeper: shutting down")
				return
			case <-ticker.C:
				runSweep(ctx, cfg)
			}
		}
	}()

	return done
}

func runSweep(ctx context.Context, cfg SweeperConfig) {
	asOf := cfg.Now().In(cfg.Location).Format(timezone.DateLayout)

	res, err := cfg.Sweep.Execute(ctx, asOf)
	if err != nil {
		log.Error().Err(err).Str("as_of", asOf).Msg("sweeper: sweep failed")
		return
	}

	if res.Completed > 0 {
		log.Info().Str("as_of", asOf).Int64("completed", res.Completed).Msg("sweeper: reservations completed")
	}
}
