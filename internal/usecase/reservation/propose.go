package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/table-reservations/internal/audit"
	domain "github.com/BruksfildServices01/table-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/table-reservations/internal/httperr"
	"github.com/BruksfildServices01/table-reservations/internal/infra/lock"
	"github.com/BruksfildServices01/table-reservations/internal/models"
	"github.com/BruksfildServices01/table-reservations/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ProposeReservationInput struct {
	TableID    uint
	CustomerID uint

	Date      string // YYYY-MM-DD
	Time      string // HH:MM
	PartySize int
	Note      string

	ActorID   uint
	RequestID string
}

// ======================================================
// USE CASE
// ======================================================

type ProposeReservation struct {
	repo   domain.Repository
	locker lock.Locker
	hours  domain.ServiceHours
	loc    *time.Location
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewProposeReservation(
	repo domain.Repository,
	locker lock.Locker,
	hours domain.ServiceHours,
	loc *time.Location,
	audit *audit.Dispatcher,
) *ProposeReservation {
	return &ProposeReservation{
		repo:   repo,
		locker: locker,
		hours:  hours,
		loc:    loc,
		audit:  audit,
		now:    time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ProposeReservation) Execute(
	ctx context.Context,
	in ProposeReservationInput,
) (*models.Reservation, error) {

	// --------------------------------------------------
	// 1) Table + party size
	// --------------------------------------------------
	table, err := uc.repo.GetTable(ctx, in.TableID)
	if err != nil {
		return nil, storeErr("get_table", err)
	}

	if err := domain.ValidatePartySize(in.PartySize, table.Capacity); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2) Time window in the restaurant timezone
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		uc.loc,
	)
	if err != nil {
		return nil, domain.ErrInvalidInterval
	}
	date := start.Format(timezone.DateLayout)

	now := uc.now().In(uc.loc)
	today := now.Format(timezone.DateLayout)
	if date < today || start.Before(now) {
		return nil, domain.ErrInvalidInterval
	}

	window, err := uc.hours.Window(start)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3) Customer
	// --------------------------------------------------
	if _, err := uc.repo.GetCustomer(ctx, in.CustomerID); err != nil {
		return nil, storeErr("get_customer", err)
	}

	// --------------------------------------------------
	// 4) Check + insert, serialized per table/day
	// --------------------------------------------------
	release, err := uc.locker.Acquire(ctx, lock.SlotKey(table.ID, date))
	if err != nil {
		return nil, storeErr("lock", err)
	}
	defer release()

	res := &models.Reservation{
		TableID:         table.ID,
		CustomerID:      in.CustomerID,
		ReservationDate: date,
		StartTime:       window.Start,
		EndTime:         window.End,
		PartySize:       in.PartySize,
		Status:          string(domain.InitialStatus(date, today)),
		Note:            in.Note,
	}

	err = uc.book(ctx, res)
	if errors.Is(err, domain.ErrTxConflict) {
		log.Warn().Uint("table_id", table.ID).Str("date", date).Msg("propose: retrying after transaction conflict")
		res.ID = 0
		err = uc.book(ctx, res)
	}

	if errors.Is(err, domain.ErrSlotTaken) {
		uc.audit.Dispatch(audit.Event{
			UserID:    &in.ActorID,
			RequestID: in.RequestID,
			Action:    "reservation_conflict",
			Entity:    "table",
			EntityID:  &table.ID,
			Metadata: map[string]any{
				"date":  date,
				"start": in.Time,
			},
		})
		return nil, err
	}
	if err != nil {
		return nil, storeErr("insert", err)
	}

	// --------------------------------------------------
	// 5) Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:    &in.ActorID,
		RequestID: in.RequestID,
		Action:    "reservation_created",
		Entity:    "reservation",
		EntityID:  &res.ID,
	})

	return res, nil
}

func (uc *ProposeReservation) book(ctx context.Context, res *models.Reservation) error {
	return uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		existing, err := tx.FindLiveReservations(ctx, res.TableID, res.ReservationDate)
		if err != nil {
			return err
		}

		overlap, err := domain.HasOverlap(
			domain.LiveIntervals(existing),
			res.StartTime,
			res.EndTime,
		)
		if err != nil {
			return err
		}
		if overlap {
			return domain.ErrSlotTaken
		}

		return tx.Insert(ctx, res)
	})
}

// storeErr keeps business failures as they are and wraps anything else.
func storeErr(op string, err error) error {
	if err == nil || httperr.CodeOf(err) != "" {
		return err
	}
	return &domain.StoreError{Op: op, Err: err}
}
