package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/table-reservations/internal/audit"
	domain "github.com/BruksfildServices01/table-reservations/internal/domain/reservation"
)

type DeleteReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewDeleteReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteReservation {
	return &DeleteReservation{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute hides the reservation from every query. The row is kept.
func (uc *DeleteReservation) Execute(
	ctx context.Context,
	reservationID uint,
	actorID uint,
	requestID string,
) error {

	if err := uc.repo.SoftDelete(ctx, reservationID, uc.now()); err != nil {
		return storeErr("soft_delete", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:    &actorID,
		RequestID: requestID,
		Action:    "reservation_deleted",
		Entity:    "reservation",
		EntityID:  &reservationID,
	})

	return nil
}
