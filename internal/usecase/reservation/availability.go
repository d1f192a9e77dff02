package reservation

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/table-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/table-reservations/internal/httperr"
	"github.com/BruksfildServices01/table-reservations/internal/timezone"
)

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type GetAvailability struct {
	repo  domain.Repository
	hours domain.ServiceHours
	loc   *time.Location
	now   func() time.Time
}

func NewGetAvailability(
	repo domain.Repository,
	hours domain.ServiceHours,
	loc *time.Location,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		hours: hours,
		loc:   loc,
		now:   time.Now,
	}
}

// Execute lists the seatings still bookable on a table for a day.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	tableID uint,
	date string,
) ([]TimeSlot, error) {

	day, err := timezone.ParseDate(date, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	if _, err := uc.repo.GetTable(ctx, tableID); err != nil {
		return nil, storeErr("get_table", err)
	}

	existing, err := uc.repo.FindLiveReservations(ctx, tableID, date)
	if err != nil {
		return nil, storeErr("find_live", err)
	}
	taken := domain.LiveIntervals(existing)

	now := uc.now().In(uc.loc)
	slots := []TimeSlot{}

	for _, start := range uc.hours.Starts(day) {
		if start.Before(now) {
			continue
		}

		end := start.Add(uc.hours.Duration)
		overlap, err := domain.HasOverlap(taken, start, end)
		if err != nil || overlap {
			continue
		}

		slots = append(slots, TimeSlot{
			Start: start.Format("15:04"),
			End:   end.Format("15:04"),
		})
	}

	return slots, nil
}
