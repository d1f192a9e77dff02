package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/table-reservations/internal/audit"
	"github.com/BruksfildServices01/table-reservations/internal/config"
	dbpkg "github.com/BruksfildServices01/table-reservations/internal/db"
	domain "github.com/BruksfildServices01/table-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/table-reservations/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/table-reservations/internal/infra/repository"
	"github.com/BruksfildServices01/table-reservations/internal/infra/storage"
	"github.com/BruksfildServices01/table-reservations/internal/routes"
	"github.com/BruksfildServices01/table-reservations/internal/timezone"
	ucReservation "github.com/BruksfildServices01/table-reservations/internal/usecase/reservation"
)

// App holds the process-wide singletons.
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Repo     domain.Repository
	Locker   lock.Locker
	Hours    domain.ServiceHours
	Location *time.Location
	Audit    *audit.Dispatcher
	Sweep    *ucReservation.RunDailySweep

	redis *redis.Client
}

// New opens the database and wires the infrastructure picked by cfg.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	return Wire(ctx, cfg, dbpkg.NewDB(cfg))
}

// Wire builds the singletons on an already open database.
func Wire(ctx context.Context, cfg *config.Config, db *gorm.DB) (*App, error) {
	hours, err := domain.NewServiceHours(
		cfg.OpeningTime,
		cfg.LastSeating,
		cfg.SlotStep,
		cfg.ServiceDuration,
	)
	if err != nil {
		return nil, fmt.Errorf("service hours: %w", err)
	}

	if !timezone.IsValid(cfg.Timezone) {
		log.Warn().Str("timezone", cfg.Timezone).Msg("unknown timezone, using default")
	}

	a := &App{
		Config:   cfg,
		DB:       db,
		Repo:     infraRepo.NewReservationGormRepository(db),
		Hours:    hours,
		Location: timezone.Location(cfg.Timezone),
		Audit:    audit.NewDispatcher(audit.New(db)),
	}

	if cfg.RedisURL != "" {
		rdb, err := lock.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			a.Audit.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.redis = rdb
		a.Locker = lock.NewRedisLocker(rdb, cfg.LockTTL)
		log.Info().Msg("booking lock: redis")
	} else {
		a.Locker = lock.NewLocalLocker()
		log.Info().Msg("booking lock: in-process")
	}

	var archiver ucReservation.ReportArchiver
	if cfg.ReportBucket != "" {
		archiver = storage.NewS3Archiver(storage.NewS3Client(cfg, cfg.S3Endpoint), cfg.ReportBucket)
		log.Info().Str("bucket", cfg.ReportBucket).Msg("sweep reports archived to s3")
	}
	a.Sweep = ucReservation.NewRunDailySweep(a.Repo, archiver, a.Audit)

	return a, nil
}

func (a *App) RouteDeps() routes.Deps {
	return routes.Deps{
		DB:       a.DB,
		Config:   a.Config,
		Repo:     a.Repo,
		Locker:   a.Locker,
		Hours:    a.Hours,
		Location: a.Location,
		Audit:    a.Audit,
		Sweep:    a.Sweep,
	}
}

// Close flushes pending audit events and releases connections.
func (a *App) Close() {
	a.Audit.Close()

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}

	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("database close")
		}
	}
}
