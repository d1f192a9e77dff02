package reservation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/table-reservations/internal/domain/access"
	domain "github.com/BruksfildServices01/table-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/table-reservations/internal/models"
)

func TestCancel_OwnReservation(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}

	r := &models.Reservation{ID: 3, CustomerID: 9, Status: string(domain.StatusPending)}
	repo.On("Transaction", ctx).Return(nil)
	repo.On("GetReservation", ctx, uint(3)).Return(r, nil)
	repo.On("UpdateReservation", ctx, r).Return(nil)

	got, err := NewCancelReservation(repo, nil).Execute(ctx, CancelReservationInput{
		ReservationID: 3, ActorID: 9, ActorRole: access.RoleClient,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)
	assert.NotNil(t, got.CancelledAt)
}

func TestCancel_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}

	repo.On("Transaction", ctx).Return(nil)
	repo.On("GetReservation", ctx, uint(3)).Return(nil, domain.ErrNotFound)

	_, err := NewCancelReservation(repo, nil).Execute(ctx, CancelReservationInput{
		ReservationID: 3, ActorID: 1, ActorRole: access.RoleAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_OtherCustomersReservationIsHidden(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}

	r := &models.Reservation{ID: 3, CustomerID: 9, Status: string(domain.StatusPending)}
	repo.On("Transaction", ctx).Return(nil)
	repo.On("GetReservation", ctx, uint(3)).Return(r, nil)

	_, err := NewCancelReservation(repo, nil).Execute(ctx, CancelReservationInput{
		ReservationID: 3, ActorID: 10, ActorRole: access.RoleClient,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "UpdateReservation", mock.Anything, mock.Anything)

	// waiters may only cancel their own as well
	_, err = NewCancelReservation(repo, nil).Execute(ctx, CancelReservationInput{
		ReservationID: 3, ActorID: 10, ActorRole: access.RoleWaiter,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_StaffCancelsAny(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}

	r := &models.Reservation{ID: 3, CustomerID: 9, Status: string(domain.StatusActive)}
	repo.On("Transaction", ctx).Return(nil)
	repo.On("GetReservation", ctx, uint(3)).Return(r, nil)
	repo.On("UpdateReservation", ctx, r).Return(nil)

	_, err := NewCancelReservation(repo, nil).Execute(ctx, CancelReservationInput{
		ReservationID: 3, ActorID: 2, ActorRole: access.RoleCashier,
	})
	require.NoError(t, err)
}

func TestCancel_AlreadyTerminal(t *testing.T) {
	ctx := context.Background()

	for _, st := range []domain.Status{domain.StatusCompleted, domain.StatusCancelled} {
		repo := &mockRepo{}
		r := &models.Reservation{ID: 3, CustomerID: 9, Status: string(st)}
		repo.On("Transaction", ctx).Return(nil)
		repo.On("GetReservation", ctx, uint(3)).Return(r, nil)

		_, err := NewCancelReservation(repo, nil).Execute(ctx, CancelReservationInput{
			ReservationID: 3, ActorID: 9, ActorRole: access.RoleClient,
		})
		assert.ErrorIs(t, err, domain.ErrAlreadyTerminal, st)
		assert.Equal(t, string(st), r.Status)
	}
}

func TestCancel_LosesRaceWithSweep(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}

	r := &models.Reservation{ID: 3, CustomerID: 9, Status: string(domain.StatusPending)}
	repo.On("Transaction", ctx).Return(nil)
	repo.On("GetReservation", ctx, uint(3)).Return(r, nil)
	repo.On("UpdateReservation", ctx, r).Return(domain.ErrAlreadyTerminal)

	_, err := NewCancelReservation(repo, nil).Execute(ctx, CancelReservationInput{
		ReservationID: 3, ActorID: 9, ActorRole: access.RoleClient,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyTerminal)
}
