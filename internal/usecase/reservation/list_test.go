package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/table-reservations/internal/domain/access"
	domain "github.com/BruksfildServices01/table-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/table-reservations/internal/httperr"
	"github.com/BruksfildServices01/table-reservations/internal/models"
)

func TestList_ClientSeesOnlyOwn(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}

	repo.On("ListReservations", ctx, domain.ListFilter{
		Date: "2025-12-11", Status: domain.StatusPending, CustomerID: 9,
	}).Return([]models.Reservation{{ID: 1}}, nil)

	rs, err := NewListReservations(repo).Execute(ctx, ListReservationsInput{
		Date: "2025-12-11", Status: "pending", ActorID: 9, ActorRole: access.RoleClient,
	})
	require.NoError(t, err)
	assert.Len(t, rs, 1)
}

func TestList_StaffSeesAll(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}

	repo.On("ListReservations", ctx, domain.ListFilter{}).Return([]models.Reservation{{ID: 1}, {ID: 2}}, nil)

	rs, err := NewListReservations(repo).Execute(ctx, ListReservationsInput{
		ActorID: 2, ActorRole: access.RoleWaiter,
	})
	require.NoError(t, err)
	assert.Len(t, rs, 2)
}

func TestList_RejectsBadFilters(t *testing.T) {
	uc := NewListReservations(&mockRepo{})

	_, err := uc.Execute(context.Background(), ListReservationsInput{Status: "done"})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	_, err = uc.Execute(context.Background(), ListReservationsInput{Date: "tomorrow"})
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestDelete_SoftDeletes(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	fixed := clock

	repo.On("SoftDelete", ctx, uint(5), fixed).Return(nil).Once()
	repo.On("SoftDelete", ctx, uint(6), fixed).Return(domain.ErrNotFound).Once()

	uc := NewDeleteReservation(repo, nil)
	uc.now = func() time.Time { return fixed }

	require.NoError(t, uc.Execute(ctx, 5, 1, "req"))
	assert.ErrorIs(t, uc.Execute(ctx, 6, 1, "req"), domain.ErrNotFound)
}

func TestAvailability_SkipsTakenAndPastSeatings(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}

	repo.On("GetTable", ctx, uint(4)).Return(&models.Table{ID: 4, Capacity: 4}, nil)
	repo.On("FindLiveReservations", ctx, uint(4), "2025-12-10").
		Return([]models.Reservation{existingAt("2025-12-10", 19)}, nil)

	uc := NewGetAvailability(repo, hours(t), time.UTC)
	uc.now = func() time.Time { return time.Date(2025, 12, 10, 13, 15, 0, 0, time.UTC) }

	slots, err := uc.Execute(ctx, 4, "2025-12-10")
	require.NoError(t, err)

	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}

	assert.NotContains(t, starts, "13:00")
	assert.Contains(t, starts, "13:30")
	assert.Contains(t, starts, "17:00")
	assert.NotContains(t, starts, "17:30")
	assert.NotContains(t, starts, "20:30")
	assert.Contains(t, starts, "21:00")
	assert.Equal(t, "23:00", slots[len(slots)-2].End)
}

func TestAvailability_BadDate(t *testing.T) {
	_, err := NewGetAvailability(&mockRepo{}, hours(t), time.UTC).Execute(context.Background(), 1, "x")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}
