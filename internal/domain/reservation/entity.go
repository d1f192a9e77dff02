package reservation

import (
	"time"

	"github.com/BruksfildServices01/table-reservations/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(r *models.Reservation, now time.Time) error {
	if err := CanTransition(Status(r.Status), StatusCancelled); err != nil {
		return err
	}

	r.Status = string(StatusCancelled)
	r.CancelledAt = &now
	return nil
}

func Complete(r *models.Reservation, now time.Time) error {
	if err := CanTransition(Status(r.Status), StatusCompleted); err != nil {
		return err
	}

	r.Status = string(StatusCompleted)
	r.CompletedAt = &now
	return nil
}

func ValidatePartySize(size, capacity int) error {
	if size < 1 || size > capacity {
		return ErrInvalidPartySize
	}
	return nil
}

// IsVisible reports whether r has not been soft-deleted.
func IsVisible(r *models.Reservation) bool {
	return r.DeletedAt == nil
}

// LiveIntervals keeps the visible, non-terminal reservations of rs.
func LiveIntervals(rs []models.Reservation) []Interval {
	out := make([]Interval, 0, len(rs))
	for i := range rs {
		if !IsVisible(&rs[i]) || !Status(rs[i].Status).IsLive() {
			continue
		}
		out = append(out, Interval{Start: rs[i].StartTime, End: rs[i].EndTime})
	}
	return out
}
