package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/table-reservations/internal/domain/access"
	domain "github.com/BruksfildServices01/table-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/table-reservations/internal/models"
	"github.com/BruksfildServices01/table-reservations/internal/timezone"
)

// DefaultPassword is set on every generated customer.
const DefaultPassword = "password123"

// DefaultLayout is the dining room: number -> capacity.
var DefaultLayout = []models.Table{
	{Number: 1, Capacity: 2}, {Number: 2, Capacity: 2}, {Number: 3, Capacity: 2}, {Number: 4, Capacity: 2},
	{Number: 5, Capacity: 4}, {Number: 6, Capacity: 4}, {Number: 7, Capacity: 4},
	{Number: 8, Capacity: 4}, {Number: 9, Capacity: 4}, {Number: 10, Capacity: 4},
	{Number: 11, Capacity: 6}, {Number: 12, Capacity: 6}, {Number: 13, Capacity: 6},
	{Number: 14, Capacity: 8}, {Number: 15, Capacity: 8},
}

// Seeder generates sample data. Its output is random and lossy: rows that
// collide with existing data are skipped.
type Seeder struct {
	db           *gorm.DB
	repo         domain.Repository
	hours        domain.ServiceHours
	loc          *time.Location
	rnd          *rand.Rand
	budgetFactor int
}

func New(
	db *gorm.DB,
	repo domain.Repository,
	hours domain.ServiceHours,
	loc *time.Location,
	rnd *rand.Rand,
) *Seeder {
	return &Seeder{
		db:           db,
		repo:         repo,
		hours:        hours,
		loc:          loc,
		rnd:          rnd,
		budgetFactor: 4,
	}
}

// --------------------------------------------------
// Tables
// --------------------------------------------------

// Tables creates the default layout. Existing numbers are left untouched.
func (s *Seeder) Tables(ctx context.Context) (int, error) {
	created := 0

	for _, t := range DefaultLayout {
		exists, err := s.exists(ctx, &models.Table{}, "number = ?", t.Number)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		row := models.Table{Number: t.Number, Capacity: t.Capacity, State: models.TableAvailable}
		if err := s.repo.CreateTable(ctx, &row); err != nil {
			return created, err
		}
		created++
	}

	log.Info().Int("created", created).Msg("seed: tables")
	return created, nil
}

// --------------------------------------------------
// Customers
// --------------------------------------------------

var accentFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "Á", "a",
)

func (s *Seeder) Customers(ctx context.Context, n int) (int, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := 0; i < n; i++ {
		first := firstNames[s.rnd.Intn(len(firstNames))]
		last := lastNames[s.rnd.Intn(len(lastNames))]
		username := accentFolder.Replace(strings.ToLower(fmt.Sprintf("%s.%s%d", first, last, i)))

		u := models.User{
			Username:     username,
			Name:         first + " " + last,
			Email:        username + "@email.com",
			Phone:        s.phone(),
			NationalID:   s.rut(),
			PasswordHash: string(hash),
			Role:         string(access.RoleClient),
		}

		exists, err := s.exists(ctx, &models.User{}, "username = ?", username)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
			return created, err
		}
		created++
	}

	log.Info().Int("created", created).Msg("seed: customers")
	return created, nil
}

func (s *Seeder) exists(ctx context.Context, model any, query string, arg any) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(model).
		Where(query, arg).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// rut formats an illustrative national ID. It is not a valid RUT.
func (s *Seeder) rut() string {
	n := 10_000_000 + s.rnd.Intn(15_000_000)
	return fmt.Sprintf("%d.%03d.%03d-%d", n/1_000_000, n/1_000%1_000, n%1_000, s.rnd.Intn(10))
}

func (s *Seeder) phone() string {
	return fmt.Sprintf("+56 9 %04d %04d", 1000+s.rnd.Intn(9000), 1000+s.rnd.Intn(9000))
}

// --------------------------------------------------
// Reservations
// --------------------------------------------------

type Report struct {
	Days      int
	Target    int
	Inserted  int
	Shortfall int
	Swept     int64
}

// Reservations fills every day in [from, to] relative to today. Past live
// reservations are completed first so the generated data starts consistent.
func (s *Seeder) Reservations(ctx context.Context, from, to, today time.Time) (*Report, error) {
	todayStr := today.In(s.loc).Format(timezone.DateLayout)
	rep := &Report{}

	swept, err := s.repo.BulkUpdateStatus(ctx, domain.StatusFilter{
		From:       domain.LiveStatuses,
		DateBefore: todayStr,
	}, domain.StatusCompleted)
	if err != nil {
		return nil, err
	}
	rep.Swept = swept

	tables, err := s.repo.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables; seed tables first")
	}

	var customers []models.User
	if err := s.db.WithContext(ctx).
		Where("role = ?", access.RoleClient).
		Find(&customers).Error; err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, fmt.Errorf("no customers; seed customers first")
	}

	for day := dayStart(from, s.loc); !day.After(dayStart(to, s.loc)); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		date := day.Format(timezone.DateLayout)
		target := s.dailyTarget(day, dayStart(today, s.loc))

		existing, err := s.repo.FindLiveReservationsForDay(ctx, date)
		if err != nil {
			return rep, err
		}

		planner := domain.NewDayPlanner(tables, s.hours.Starts(day), s.hours.Duration, existing, s.rnd)
		placements, shortfall := planner.Plan(target, s.budgetFactor)

		rows := make([]models.Reservation, 0, len(placements))
		for _, pl := range placements {
			status := s.status(date, todayStr)
			rows = append(rows, models.Reservation{
				TableID:         pl.Table.ID,
				CustomerID:      customers[s.rnd.Intn(len(customers))].ID,
				ReservationDate: date,
				StartTime:       pl.Interval.Start,
				EndTime:         pl.Interval.End,
				PartySize:       s.partySize(pl.Table.Capacity),
				Status:          string(status),
				Note:            "Sample " + string(status) + " reservation",
			})
		}

		inserted, err := s.repo.BulkInsert(ctx, rows)
		if err != nil {
			return rep, err
		}

		if shortfall > 0 {
			log.Warn().
				Str("date", date).
				Int("target", target).
				Int("missing", shortfall).
				Msg("seed: attempt budget exhausted")
		}

		rep.Days++
		rep.Target += target
		rep.Inserted += inserted
		rep.Shortfall += shortfall
	}

	log.Info().
		Int("days", rep.Days).
		Int("inserted", rep.Inserted).
		Int("shortfall", rep.Shortfall).
		Msg("seed: reservations")

	return rep, nil
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// calendarDays counts midnights between the dates of a and b, so a 23 or
// 25 hour DST day still counts as one.
func calendarDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// dailyTarget gets smaller the further the day is from today, with a bump
// on Friday to Sunday.
func (s *Seeder) dailyTarget(day, today time.Time) int {
	dist := calendarDays(today, day)
	if dist < 0 {
		dist = -dist
	}

	var n int
	switch {
	case dist <= 7:
		n = 15 + s.rnd.Intn(6)
	case dist <= 14:
		n = 10 + s.rnd.Intn(6)
	default:
		n = 5 + s.rnd.Intn(6)
	}

	switch day.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		n += 2
	}
	return n
}

func (s *Seeder) status(date, today string) domain.Status {
	st := domain.InitialStatus(date, today)

	switch st {
	case domain.StatusCompleted:
		if s.rnd.Float64() >= 0.92 {
			return domain.StatusCancelled
		}
	case domain.StatusPending:
		if s.rnd.Float64() >= 0.95 {
			return domain.StatusCancelled
		}
	}
	return st
}

func (s *Seeder) partySize(capacity int) int {
	hi := capacity
	if hi > 8 {
		hi = 8
	}
	lo := capacity - 2
	if lo < 1 {
		lo = 1
	}
	if lo > hi {
		lo = hi
	}
	return lo + s.rnd.Intn(hi-lo+1)
}
