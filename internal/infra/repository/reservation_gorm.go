package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/table-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/table-reservations/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// visible is the soft-delete scope. Every reservation query goes through it.
func visible(db *gorm.DB) *gorm.DB {
	return db.Where("reservations.deleted_at IS NULL")
}

func live(db *gorm.DB) *gorm.DB {
	return db.Where("reservations.status IN ?", domain.LiveStatuses)
}

func (r *ReservationGormRepository) reservations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Reservation{}).Scopes(visible)
}

// forUpdate adds a row lock where the dialect supports one.
func (r *ReservationGormRepository) forUpdate(q *gorm.DB) *gorm.DB {
	if r.db.Dialector.Name() == "postgres" {
		return q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

// --------------------------------------------------
// Table
// --------------------------------------------------

func (r *ReservationGormRepository) GetTable(
	ctx context.Context,
	id uint,
) (*models.Table, error) {

	var t models.Table
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTableNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *ReservationGormRepository) ListTables(
	ctx context.Context,
) ([]models.Table, error) {

	var tables []models.Table
	if err := r.db.WithContext(ctx).
		Order("number ASC").
		Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *ReservationGormRepository) CreateTable(
	ctx context.Context,
	t *models.Table,
) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *ReservationGormRepository) UpdateTableState(
	ctx context.Context,
	id uint,
	state models.TableState,
) (*models.Table, error) {

	t, err := r.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(t).
		Update("state", state).Error; err != nil {
		return nil, err
	}
	t.State = state
	return t, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *ReservationGormRepository) GetCustomer(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --------------------------------------------------
// Reservation (booking)
// --------------------------------------------------

func (r *ReservationGormRepository) FindLiveReservations(
	ctx context.Context,
	tableID uint,
	date string,
) ([]models.Reservation, error) {

	var rs []models.Reservation
	q := r.reservations(ctx).
		Scopes(live).
		Where("table_id = ? AND reservation_date = ?", tableID, date).
		Order("start_time ASC")

	if err := r.forUpdate(q).Find(&rs).Error; err != nil {
		return nil, err
	}
	return rs, nil
}

func (r *ReservationGormRepository) FindLiveReservationsForDay(
	ctx context.Context,
	date string,
) ([]models.Reservation, error) {

	var rs []models.Reservation
	if err := r.reservations(ctx).
		Scopes(live).
		Where("reservation_date = ?", date).
		Order("table_id ASC, start_time ASC").
		Find(&rs).Error; err != nil {
		return nil, err
	}
	return rs, nil
}

func (r *ReservationGormRepository) Insert(
	ctx context.Context,
	res *models.Reservation,
) error {

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error; err != nil {
		if IsSlotConflict(err) {
			return domain.ErrSlotTaken
		}
		return err
	}
	return nil
}

// BulkInsert stores rs in one statement that skips conflicting rows. If the
// batch still fails, rows are inserted one by one and failures are dropped.
func (r *ReservationGormRepository) BulkInsert(
	ctx context.Context,
	rs []models.Reservation,
) (int, error) {

	if len(rs) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rs)
	if res.Error == nil {
		return int(res.RowsAffected), nil
	}
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}

	inserted := 0
	for i := range rs {
		rs[i].ID = 0
		if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&rs[i]).Error; err != nil {
			if ctx.Err() != nil {
				return inserted, ctx.Err()
			}
			continue
		}
		inserted++
	}
	return inserted, nil
}

func (r *ReservationGormRepository) BulkUpdateStatus(
	ctx context.Context,
	filter domain.StatusFilter,
	to domain.Status,
) (int64, error) {

	q := r.reservations(ctx)
	if len(filter.From) > 0 {
		q = q.Where("status IN ?", filter.From)
	}
	if filter.DateBefore != "" {
		q = q.Where("reservation_date < ?", filter.DateBefore)
	}

	updates := map[string]any{
		"status":     string(to),
		"updated_at": time.Now(),
	}
	switch to {
	case domain.StatusCompleted:
		updates["completed_at"] = time.Now()
	case domain.StatusCancelled:
		updates["cancelled_at"] = time.Now()
	}

	res := q.Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// --------------------------------------------------
// Reservation (state change)
// --------------------------------------------------

func (r *ReservationGormRepository) GetReservation(
	ctx context.Context,
	id uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.forUpdate(r.reservations(ctx)).
		Preload("Table").
		Where("reservations.id = ?", id).
		First(&res).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

// UpdateReservation writes the mutable columns of a reservation that is
// still live and visible. A row a concurrent sweep or delete got to first is
// left untouched.
func (r *ReservationGormRepository) UpdateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {

	res.UpdatedAt = time.Now()

	q := r.reservations(ctx).
		Scopes(live).
		Where("reservations.id = ?", res.ID).
		Updates(map[string]any{
			"status":       res.Status,
			"party_size":   res.PartySize,
			"note":         res.Note,
			"cancelled_at": res.CancelledAt,
			"completed_at": res.CompletedAt,
			"updated_at":   res.UpdatedAt,
		})
	if q.Error != nil {
		return q.Error
	}
	if q.RowsAffected > 0 {
		return nil
	}

	var cur models.Reservation
	if err := r.db.WithContext(ctx).
		Select("id", "status", "deleted_at").
		Where("id = ?", res.ID).
		Take(&cur).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if !domain.IsVisible(&cur) {
		return domain.ErrNotFound
	}
	return domain.ErrAlreadyTerminal
}

func (r *ReservationGormRepository) SoftDelete(
	ctx context.Context,
	id uint,
	now time.Time,
) error {

	res := r.reservations(ctx).
		Where("id = ?", id).
		Update("deleted_at", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReservationGormRepository) ListReservations(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Reservation, error) {

	q := r.reservations(ctx).
		Preload("Table").
		Preload("Customer")

	if filter.Date != "" {
		q = q.Where("reservation_date = ?", filter.Date)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.TableID != 0 {
		q = q.Where("table_id = ?", filter.TableID)
	}
	if filter.CustomerID != 0 {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}

	var rs []models.Reservation
	if err := q.
		Order("reservation_date ASC, start_time ASC").
		Find(&rs).Error; err != nil {
		return nil, err
	}
	return rs, nil
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *ReservationGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReservationGormRepository{db: tx})
	})
	if IsRetryable(err) {
		return fmt.Errorf("%w: %v", domain.ErrTxConflict, err)
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
