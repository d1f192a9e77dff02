package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/table-reservations/internal/models"
)

// StatusFilter selects the rows a bulk status update touches. Soft-deleted
// rows are never matched.
type StatusFilter struct {
	From       []Status
	DateBefore string // exclusive, YYYY-MM-DD
}

type ListFilter struct {
	Date       string
	Status     Status
	TableID    uint
	CustomerID uint
}

type Repository interface {
	// -------- Table --------
	GetTable(ctx context.Context, id uint) (*models.Table, error)
	ListTables(ctx context.Context) ([]models.Table, error)
	CreateTable(ctx context.Context, t *models.Table) error
	UpdateTableState(ctx context.Context, id uint, state models.TableState) (*models.Table, error)

	// -------- Customer --------
	GetCustomer(ctx context.Context, id uint) (*models.User, error)

	// -------- Reservation (booking) --------
	FindLiveReservations(
		ctx context.Context,
		tableID uint,
		date string,
	) ([]models.Reservation, error)

	FindLiveReservationsForDay(
		ctx context.Context,
		date string,
	) ([]models.Reservation, error)

	Insert(ctx context.Context, r *models.Reservation) error

	// BulkInsert skips rows that conflict and returns how many were stored.
	BulkInsert(ctx context.Context, rs []models.Reservation) (int, error)

	BulkUpdateStatus(
		ctx context.Context,
		filter StatusFilter,
		to Status,
	) (int64, error)

	// -------- Reservation (state change) --------
	GetReservation(ctx context.Context, id uint) (*models.Reservation, error)
	UpdateReservation(ctx context.Context, r *models.Reservation) error
	SoftDelete(ctx context.Context, id uint, now time.Time) error

	ListReservations(ctx context.Context, filter ListFilter) ([]models.Reservation, error)

	// Transaction runs fn against a repository bound to one transaction.
	Transaction(ctx context.Context, fn func(tx Repository) error) error
}
