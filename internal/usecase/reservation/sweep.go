package reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/table-reservations/internal/audit"
	domain "github.com/BruksfildServices01/table-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/table-reservations/internal/httperr"
	"github.com/BruksfildServices01/table-reservations/internal/timezone"
)

// ReportArchiver keeps a copy of each sweep summary.
type ReportArchiver interface {
	Archive(ctx context.Context, key string, body []byte) error
}

type SweepResult struct {
	AsOf      string    `json:"as_of"`
	Completed int64     `json:"completed"`
	RanAt     time.Time `json:"ran_at"`
}

type RunDailySweep struct {
	repo     domain.Repository
	archiver ReportArchiver
	audit    *audit.Dispatcher
	now      func() time.Time
}

// NewRunDailySweep builds the sweep. archiver may be nil.
func NewRunDailySweep(
	repo domain.Repository,
	archiver ReportArchiver,
	audit *audit.Dispatcher,
) *RunDailySweep {
	return &RunDailySweep{
		repo:     repo,
		archiver: archiver,
		audit:    audit,
		now:      time.Now,
	}
}

// Execute completes every live reservation dated strictly before asOf in a
// single bulk update. Running it again for the same date changes nothing.
func (uc *RunDailySweep) Execute(
	ctx context.Context,
	asOf string,
) (*SweepResult, error) {

	if _, err := time.Parse(timezone.DateLayout, asOf); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	n, err := uc.repo.BulkUpdateStatus(ctx, domain.StatusFilter{
		From:       domain.LiveStatuses,
		DateBefore: asOf,
	}, domain.StatusCompleted)
	if err != nil {
		return nil, &domain.StoreError{Op: "sweep", Err: err}
	}

	result := &SweepResult{
		AsOf:      asOf,
		Completed: n,
		RanAt:     uc.now(),
	}

	log.Info().
		Str("as_of", asOf).
		Int64("completed", n).
		Msg("sweep: finished")

	uc.archive(ctx, result)

	uc.audit.Dispatch(audit.Event{
		Action:   "reservations_swept",
		Entity:   "reservation",
		Metadata: result,
	})

	return result, nil
}

func (uc *RunDailySweep) archive(ctx context.Context, result *SweepResult) {
	if uc.archiver == nil {
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		log.Error().Err(err).Msg("sweep: encode summary")
		return
	}

	key := fmt.Sprintf("sweeps/%s.json", result.AsOf)
	if err := uc.archiver.Archive(ctx, key, body); err != nil {
		log.Error().Err(err).Str("key", key).Msg("sweep: archive summary")
	}
}
