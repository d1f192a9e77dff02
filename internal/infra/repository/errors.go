package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation      = "23505"
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsSlotConflict reports whether err is a unique or exclusion constraint
// violation raised by the live-slot guards. Dialects opened with
// TranslateError surface unique violations as gorm.ErrDuplicatedKey.
func IsSlotConflict(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	switch pgCode(err) {
	case pgUniqueViolation, pgExclusionViolation:
		return true
	}
	return false
}

// IsRetryable reports whether a transaction failed on a serialization
// failure or deadlock and may be run again.
func IsRetryable(err error) bool {
	switch pgCode(err) {
	case pgSerializationFailure, pgDeadlockDetected:
		return true
	}
	return false
}
