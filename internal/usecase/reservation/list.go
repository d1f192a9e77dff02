package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/table-reservations/internal/domain/access"
	domain "github.com/BruksfildServices01/table-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/table-reservations/internal/httperr"
	"github.com/BruksfildServices01/table-reservations/internal/models"
	"github.com/BruksfildServices01/table-reservations/internal/timezone"
)

type ListReservationsInput struct {
	Date      string
	Status    string
	TableID   uint
	ActorID   uint
	ActorRole access.Role
}

type ListReservations struct {
	repo domain.Repository
}

func NewListReservations(repo domain.Repository) *ListReservations {
	return &ListReservations{repo: repo}
}

func (uc *ListReservations) Execute(
	ctx context.Context,
	in ListReservationsInput,
) ([]models.Reservation, error) {

	filter := domain.ListFilter{
		Date:    in.Date,
		TableID: in.TableID,
	}

	if in.Date != "" {
		if _, err := time.Parse(timezone.DateLayout, in.Date); err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
	}

	if in.Status != "" {
		st := domain.Status(in.Status)
		if !st.Valid() {
			return nil, httperr.ErrBusiness("invalid_status")
		}
		filter.Status = st
	}

	// clients only ever see their own bookings
	if !access.Authorize(in.ActorRole, access.ViewAllReservations) {
		filter.CustomerID = in.ActorID
	}

	rs, err := uc.repo.ListReservations(ctx, filter)
	if err != nil {
		return nil, storeErr("list", err)
	}
	return rs, nil
}
