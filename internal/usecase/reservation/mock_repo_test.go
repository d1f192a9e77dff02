package reservation

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	domain "github.com/BruksfildServices01/table-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/table-reservations/internal/models"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetTable(ctx context.Context, id uint) (*models.Table, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*models.Table)
	return t, args.Error(1)
}

func (m *mockRepo) ListTables(ctx context.Context) ([]models.Table, error) {
	args := m.Called(ctx)
	ts, _ := args.Get(0).([]models.Table)
	return ts, args.Error(1)
}

func (m *mockRepo) CreateTable(ctx context.Context, t *models.Table) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockRepo) UpdateTableState(ctx context.Context, id uint, state models.TableState) (*models.Table, error) {
	args := m.Called(ctx, id, state)
	t, _ := args.Get(0).(*models.Table)
	return t, args.Error(1)
}

func (m *mockRepo) GetCustomer(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockRepo) FindLiveReservations(ctx context.Context, tableID uint, date string) ([]models.Reservation, error) {
	args := m.Called(ctx, tableID, date)
	rs, _ := args.Get(0).([]models.Reservation)
	return rs, args.Error(1)
}

func (m *mockRepo) FindLiveReservationsForDay(ctx context.Context, date string) ([]models.Reservation, error) {
	args := m.Called(ctx, date)
	rs, _ := args.Get(0).([]models.Reservation)
	return rs, args.Error(1)
}

func (m *mockRepo) Insert(ctx context.Context, r *models.Reservation) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRepo) BulkInsert(ctx context.Context, rs []models.Reservation) (int, error) {
	args := m.Called(ctx, rs)
	return args.Int(0), args.Error(1)
}

func (m *mockRepo) BulkUpdateStatus(ctx context.Context, f domain.StatusFilter, to domain.Status) (int64, error) {
	args := m.Called(ctx, f, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Reservation)
	return r, args.Error(1)
}

func (m *mockRepo) UpdateReservation(ctx context.Context, r *models.Reservation) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRepo) SoftDelete(ctx context.Context, id uint, now time.Time) error {
	return m.Called(ctx, id, now).Error(0)
}

func (m *mockRepo) ListReservations(ctx context.Context, f domain.ListFilter) ([]models.Reservation, error) {
	args := m.Called(ctx, f)
	rs, _ := args.Get(0).([]models.Reservation)
	return rs, args.Error(1)
}

// Transaction runs fn against the mock itself unless the expectation
// returns an error.
func (m *mockRepo) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	return fn(m)
}

var _ domain.Repository = (*mockRepo)(nil)
