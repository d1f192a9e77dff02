package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/table-reservations/internal/audit"
	"github.com/BruksfildServices01/table-reservations/internal/domain/access"
	domain "github.com/BruksfildServices01/table-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/table-reservations/internal/models"
)

type CancelReservationInput struct {
	ReservationID uint
	ActorID       uint
	ActorRole     access.Role
	RequestID     string
}

type CancelReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCancelReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelReservation {
	return &CancelReservation{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute cancels a live reservation. Callers without the cancel-any
// capability only see their own reservations; anything else is not found.
func (uc *CancelReservation) Execute(
	ctx context.Context,
	in CancelReservationInput,
) (*models.Reservation, error) {

	var res *models.Reservation

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		r, err := tx.GetReservation(ctx, in.ReservationID)
		if err != nil {
			return err
		}

		if !access.Authorize(in.ActorRole, access.CancelAny) && r.CustomerID != in.ActorID {
			return domain.ErrNotFound
		}

		if err := domain.Cancel(r, uc.now()); err != nil {
			return err
		}

		if err := tx.UpdateReservation(ctx, r); err != nil {
			return err
		}

		res = r
		return nil
	})
	if err != nil {
		return nil, storeErr("cancel", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:    &in.ActorID,
		RequestID: in.RequestID,
		Action:    "reservation_cancelled",
		Entity:    "reservation",
		EntityID:  &res.ID,
	})

	return res, nil
}
